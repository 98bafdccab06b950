package entity

import (
	"time"
)

// Vehicle is a registered vehicle. Ownership is exclusive; read access can be
// widened by sharing with individual users or by making the vehicle public.
//
// Invariants maintained by the write paths:
//   - Placa is globally unique (upper-cased before storage).
//   - SharedWith never contains OwnerID and holds no duplicates.
type Vehicle struct {
	ID               string
	Modelo           string
	Placa            string
	Ano              int
	Cor              string
	ImagemURL        string
	ValorFIPE        string
	RecallPendente   bool
	ProximaRevisaoKm *int
	OwnerID          string
	SharedWith       []string
	IsPublic         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsSharedWith reports whether the vehicle has been shared with the given user.
func (v *Vehicle) IsSharedWith(userID string) bool {
	for _, id := range v.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// OwnerRef is a read-only projection of the owning user for display purposes.
type OwnerRef struct {
	ID   string
	Nome string
}

// VehicleWithOwner pairs a vehicle with its owner projection, the result of
// joining against the users table on reads.
type VehicleWithOwner struct {
	Vehicle
	Owner OwnerRef
}
