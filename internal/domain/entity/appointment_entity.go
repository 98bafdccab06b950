package entity

import (
	"time"
)

// Appointment is a maintenance appointment. Appointments are strictly
// owner-scoped: there is no sharing or public visibility for them.
type Appointment struct {
	ID        string
	Data      time.Time // date component only
	Hora      string    // "HH:MM"
	Descricao string
	OwnerID   string
	CreatedAt time.Time
}
