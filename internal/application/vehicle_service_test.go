package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/garagemlabs/garagem-api/internal/domain/entity"
	"github.com/garagemlabs/garagem-api/internal/domain/policy"
	"github.com/garagemlabs/garagem-api/internal/errs"
)

type vehicleFixture struct {
	svc      *VehicleService
	users    *fakeUserRepo
	vehicles *fakeVehicleRepo
	owner    *entity.User
	friend   *entity.User
	vehicle  *entity.Vehicle
}

func newVehicleFixture(t *testing.T) *vehicleFixture {
	t.Helper()
	users := newFakeUserRepo()
	vehicles := newFakeVehicleRepo()
	svc := NewVehicleService(vehicles, users, testLogger())

	owner := &entity.User{Nome: "Dona Ana", Email: "ana@example.com", SenhaHash: "x"}
	require.NoError(t, users.Create(context.Background(), owner))
	friend := &entity.User{Nome: "Beto", Email: "beto@example.com", SenhaHash: "x"}
	require.NoError(t, users.Create(context.Background(), friend))
	vehicles.setOwner(owner.ID, owner.Nome)
	vehicles.setOwner(friend.ID, friend.Nome)

	v, err := svc.Create(context.Background(), owner.ID, CreateVehicleInput{
		Modelo: "Fusca", Placa: "abc1234", Ano: 1978, Cor: "azul",
	})
	require.NoError(t, err)
	return &vehicleFixture{svc: svc, users: users, vehicles: vehicles, owner: owner, friend: friend, vehicle: v}
}

func TestCreateNormalizesPlate(t *testing.T) {
	f := newVehicleFixture(t)
	require.Equal(t, "ABC1234", f.vehicle.Placa)
	require.False(t, f.vehicle.IsPublic)
	require.Empty(t, f.vehicle.SharedWith)

	_, err := f.svc.Create(context.Background(), f.friend.ID, CreateVehicleInput{
		Modelo: "Gol", Placa: " abc1234 ", Ano: 2010, Cor: "preto",
	})
	require.ErrorIs(t, err, errs.ErrDuplicatePlate)
}

func TestGetMasksExistenceFromNonViewers(t *testing.T) {
	f := newVehicleFixture(t)
	ctx := context.Background()

	t.Run("owner sees it", func(t *testing.T) {
		vw, err := f.svc.Get(ctx, policy.Authenticated(f.owner.ID), f.vehicle.ID)
		require.NoError(t, err)
		require.Equal(t, "Dona Ana", vw.Owner.Nome)
	})

	t.Run("anonymous gets not found", func(t *testing.T) {
		_, err := f.svc.Get(ctx, policy.Anonymous(), f.vehicle.ID)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("other user gets not found", func(t *testing.T) {
		_, err := f.svc.Get(ctx, policy.Authenticated(f.friend.ID), f.vehicle.ID)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("shared user sees it", func(t *testing.T) {
		_, err := f.svc.Share(ctx, policy.Authenticated(f.owner.ID), f.vehicle.ID, f.friend.Email)
		require.NoError(t, err)
		vw, err := f.svc.Get(ctx, policy.Authenticated(f.friend.ID), f.vehicle.ID)
		require.NoError(t, err)
		require.Equal(t, f.vehicle.ID, vw.ID)
	})

	t.Run("public vehicle is visible to anonymous", func(t *testing.T) {
		_, err := f.svc.TogglePrivacy(ctx, policy.Authenticated(f.owner.ID), f.vehicle.ID)
		require.NoError(t, err)
		vw, err := f.svc.Get(ctx, policy.Anonymous(), f.vehicle.ID)
		require.NoError(t, err)
		require.True(t, vw.IsPublic)
	})
}

func TestUpdateDetails(t *testing.T) {
	f := newVehicleFixture(t)
	ctx := context.Background()
	owner := policy.Authenticated(f.owner.ID)

	valor := "R$ 25.000,50"
	recall := true
	km := 60000
	modelo := "Fusca 1300"
	v, err := f.svc.UpdateDetails(ctx, owner, f.vehicle.ID, UpdateDetailsInput{
		Modelo:           &modelo,
		ValorFIPE:        &valor,
		RecallPendente:   &recall,
		ProximaRevisaoKm: &km,
	})
	require.NoError(t, err)
	require.Equal(t, "Fusca 1300", v.Modelo)
	require.Equal(t, "R$ 25.000,50", v.ValorFIPE)
	require.True(t, v.RecallPendente)
	require.Equal(t, 60000, *v.ProximaRevisaoKm)
	require.Equal(t, 1978, v.Ano)

	t.Run("shared user may view but not edit", func(t *testing.T) {
		_, err := f.svc.Share(ctx, owner, f.vehicle.ID, f.friend.Email)
		require.NoError(t, err)
		cor := "vermelho"
		_, err = f.svc.UpdateDetails(ctx, policy.Authenticated(f.friend.ID), f.vehicle.ID, UpdateDetailsInput{Cor: &cor})
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		stranger := &entity.User{Nome: "C", Email: "c@example.com", SenhaHash: "x"}
		require.NoError(t, f.users.Create(ctx, stranger))
		cor := "verde"
		_, err := f.svc.UpdateDetails(ctx, policy.Authenticated(stranger.ID), f.vehicle.ID, UpdateDetailsInput{Cor: &cor})
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestShare(t *testing.T) {
	f := newVehicleFixture(t)
	ctx := context.Background()
	owner := policy.Authenticated(f.owner.ID)

	v, err := f.svc.Share(ctx, owner, f.vehicle.ID, "Beto@Example.com")
	require.NoError(t, err)
	require.Contains(t, v.SharedWith, f.friend.ID)

	t.Run("duplicate share", func(t *testing.T) {
		_, err := f.svc.Share(ctx, owner, f.vehicle.ID, f.friend.Email)
		require.ErrorIs(t, err, errs.ErrAlreadyShared)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Share(ctx, owner, f.vehicle.ID, "ghost@example.com")
		require.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("self share", func(t *testing.T) {
		_, err := f.svc.Share(ctx, owner, f.vehicle.ID, f.owner.Email)
		require.ErrorIs(t, err, errs.ErrSelfShare)
	})

	t.Run("shared user may not re-share", func(t *testing.T) {
		stranger := &entity.User{Nome: "C", Email: "c@example.com", SenhaHash: "x"}
		require.NoError(t, f.users.Create(ctx, stranger))
		_, err := f.svc.Share(ctx, policy.Authenticated(f.friend.ID), f.vehicle.ID, stranger.Email)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestTogglePrivacy(t *testing.T) {
	f := newVehicleFixture(t)
	ctx := context.Background()
	owner := policy.Authenticated(f.owner.ID)

	isPublic, err := f.svc.TogglePrivacy(ctx, owner, f.vehicle.ID)
	require.NoError(t, err)
	require.True(t, isPublic)

	isPublic, err = f.svc.TogglePrivacy(ctx, owner, f.vehicle.ID)
	require.NoError(t, err)
	require.False(t, isPublic)

	t.Run("shared user may not toggle", func(t *testing.T) {
		_, err := f.svc.Share(ctx, owner, f.vehicle.ID, f.friend.Email)
		require.NoError(t, err)
		_, err = f.svc.TogglePrivacy(ctx, policy.Authenticated(f.friend.ID), f.vehicle.ID)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestDelete(t *testing.T) {
	f := newVehicleFixture(t)
	ctx := context.Background()
	owner := policy.Authenticated(f.owner.ID)

	t.Run("shared user may not delete", func(t *testing.T) {
		_, err := f.svc.Share(ctx, owner, f.vehicle.ID, f.friend.Email)
		require.NoError(t, err)
		err = f.svc.Delete(ctx, policy.Authenticated(f.friend.ID), f.vehicle.ID)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	require.NoError(t, f.svc.Delete(ctx, owner, f.vehicle.ID))
	_, err := f.svc.Get(ctx, owner, f.vehicle.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListMineAndListPublic(t *testing.T) {
	f := newVehicleFixture(t)
	ctx := context.Background()
	owner := policy.Authenticated(f.owner.ID)

	other, err := f.svc.Create(ctx, f.friend.ID, CreateVehicleInput{Modelo: "Gol", Placa: "XYZ9876", Ano: 2012, Cor: "preto"})
	require.NoError(t, err)

	mine, err := f.svc.ListMine(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, f.vehicle.ID, mine[0].ID)

	_, err = f.svc.Share(ctx, policy.Authenticated(f.friend.ID), other.ID, f.owner.Email)
	require.NoError(t, err)
	mine, err = f.svc.ListMine(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	pub, err := f.svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Empty(t, pub)

	_, err = f.svc.TogglePrivacy(ctx, owner, f.vehicle.ID)
	require.NoError(t, err)
	pub, err = f.svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, pub, 1)
	require.Equal(t, "Dona Ana", pub[0].Owner.Nome)
}
