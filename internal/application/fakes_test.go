package application

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/garagemlabs/garagem-api/internal/domain/entity"
	"github.com/garagemlabs/garagem-api/internal/errs"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return errs.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return errs.ErrNotFound
	}
	stored.Nome = u.Nome
	stored.Idade = u.Idade
	stored.UpdatedAt = time.Now()
	return nil
}

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[string]*entity.Vehicle
	owners   map[string]entity.OwnerRef
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{
		vehicles: make(map[string]*entity.Vehicle),
		owners:   make(map[string]entity.OwnerRef),
	}
}

func (r *fakeVehicleRepo) setOwner(id, nome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[id] = entity.OwnerRef{ID: id, Nome: nome}
}

func (r *fakeVehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.vehicles {
		if existing.Placa == v.Placa {
			return errs.ErrDuplicatePlate
		}
	}
	v.ID = uuid.NewString()
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, id string) (*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *v
	cp.SharedWith = append([]string(nil), v.SharedWith...)
	return &cp, nil
}

func (r *fakeVehicleRepo) GetWithOwner(ctx context.Context, id string) (*entity.VehicleWithOwner, error) {
	v, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	owner := r.owners[v.OwnerID]
	r.mu.Unlock()
	return &entity.VehicleWithOwner{Vehicle: *v, Owner: owner}, nil
}

func (r *fakeVehicleRepo) ListVisibleTo(_ context.Context, userID string) ([]entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Vehicle
	for _, v := range r.vehicles {
		if v.OwnerID == userID || v.IsSharedWith(userID) {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeVehicleRepo) ListPublic(_ context.Context) ([]entity.VehicleWithOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.VehicleWithOwner, 0)
	for _, v := range r.vehicles {
		if v.IsPublic {
			out = append(out, entity.VehicleWithOwner{Vehicle: *v, Owner: r.owners[v.OwnerID]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeVehicleRepo) UpdateDetails(_ context.Context, v *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.vehicles[v.ID]
	if !ok {
		return errs.ErrNotFound
	}
	cp := *v
	cp.SharedWith = stored.SharedWith
	cp.IsPublic = stored.IsPublic
	cp.OwnerID = stored.OwnerID
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) SetImageURL(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return errs.ErrNotFound
	}
	v.ImagemURL = url
	return nil
}

func (r *fakeVehicleRepo) AddShare(_ context.Context, vehicleID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[vehicleID]
	if !ok {
		return errs.ErrNotFound
	}
	if v.IsSharedWith(userID) {
		return errs.ErrAlreadyShared
	}
	v.SharedWith = append(v.SharedWith, userID)
	return nil
}

func (r *fakeVehicleRepo) TogglePrivacy(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return false, errs.ErrNotFound
	}
	v.IsPublic = !v.IsPublic
	return v.IsPublic, nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.vehicles, id)
	return nil
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[string]*entity.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) ListByOwner(_ context.Context, ownerID string) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Appointment, 0)
	for _, a := range r.appointments {
		if a.OwnerID == ownerID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Data.Equal(out[j].Data) {
			return out[i].Data.Before(out[j].Data)
		}
		return out[i].Hora < out[j].Hora
	})
	return out, nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok || a.OwnerID != ownerID {
		return errs.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}
