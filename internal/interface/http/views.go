package handlers

import (
	"time"

	"github.com/garagemlabs/garagem-api/internal/domain/entity"
)

type userView struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Idade     *int      `json:"idade,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:        u.ID,
		Nome:      u.Nome,
		Email:     u.Email,
		Idade:     u.Idade,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type ownerView struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

type vehicleView struct {
	ID               string     `json:"id"`
	Modelo           string     `json:"modelo"`
	Placa            string     `json:"placa"`
	Ano              int        `json:"ano"`
	Cor              string     `json:"cor"`
	ImagemURL        string     `json:"imagem_url,omitempty"`
	ValorFIPE        string     `json:"valorFIPE,omitempty"`
	RecallPendente   bool       `json:"recallPendente"`
	ProximaRevisaoKm *int       `json:"proximaRevisaoKm,omitempty"`
	IsPublic         bool       `json:"isPublic"`
	SharedWith       []string   `json:"sharedWith,omitempty"`
	Proprietario     *ownerView `json:"proprietario,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// toVehicleView renders a vehicle. The shared list is owner-only; viewers
// and the public gallery never learn who else a vehicle was shared with.
func toVehicleView(v *entity.Vehicle, asOwner bool) vehicleView {
	view := vehicleView{
		ID:               v.ID,
		Modelo:           v.Modelo,
		Placa:            v.Placa,
		Ano:              v.Ano,
		Cor:              v.Cor,
		ImagemURL:        v.ImagemURL,
		ValorFIPE:        v.ValorFIPE,
		RecallPendente:   v.RecallPendente,
		ProximaRevisaoKm: v.ProximaRevisaoKm,
		IsPublic:         v.IsPublic,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
	if asOwner {
		view.SharedWith = v.SharedWith
		if view.SharedWith == nil {
			view.SharedWith = []string{}
		}
	}
	return view
}

func toVehicleWithOwnerView(vw *entity.VehicleWithOwner, asOwner bool) vehicleView {
	view := toVehicleView(&vw.Vehicle, asOwner)
	if vw.Owner.ID != "" {
		view.Proprietario = &ownerView{ID: vw.Owner.ID, Nome: vw.Owner.Nome}
	}
	return view
}

type appointmentView struct {
	ID        string    `json:"id"`
	Data      string    `json:"data"`
	Hora      string    `json:"hora"`
	Descricao string    `json:"descricao"`
	CreatedAt time.Time `json:"created_at"`
}

func toAppointmentView(a *entity.Appointment) appointmentView {
	return appointmentView{
		ID:        a.ID,
		Data:      a.Data.Format("2006-01-02"),
		Hora:      a.Hora,
		Descricao: a.Descricao,
		CreatedAt: a.CreatedAt,
	}
}
