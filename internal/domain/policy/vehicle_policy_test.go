package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/garagemlabs/garagem-api/internal/domain/entity"
)

const (
	ownerID  = "11111111-1111-1111-1111-111111111111"
	sharedID = "22222222-2222-2222-2222-222222222222"
	otherID  = "33333333-3333-3333-3333-333333333333"
)

func vehicle(isPublic bool) *entity.Vehicle {
	return &entity.Vehicle{
		ID:         "aaaaaaaa-0000-0000-0000-000000000000",
		Modelo:     "Civic",
		Placa:      "ABC1234",
		Ano:        2020,
		OwnerID:    ownerID,
		SharedWith: []string{sharedID},
		IsPublic:   isPublic,
	}
}

func TestCanView(t *testing.T) {
	tests := []struct {
		name     string
		subject  Subject
		isPublic bool
		want     bool
	}{
		{"owner private", Authenticated(ownerID), false, true},
		{"shared user private", Authenticated(sharedID), false, true},
		{"other user private", Authenticated(otherID), false, false},
		{"anonymous private", Anonymous(), false, false},
		{"owner public", Authenticated(ownerID), true, true},
		{"other user public", Authenticated(otherID), true, true},
		{"anonymous public", Anonymous(), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(tt.subject, vehicle(tt.isPublic)))
		})
	}
}

func TestOwnerOnlyOperations(t *testing.T) {
	type check func(Subject, *entity.Vehicle) bool
	ops := map[string]check{
		"edit":           CanEdit,
		"share":          CanShare,
		"toggle privacy": CanTogglePrivacy,
		"delete":         CanDelete,
	}
	subjects := []struct {
		name    string
		subject Subject
		want    bool
	}{
		{"owner", Authenticated(ownerID), true},
		{"shared user", Authenticated(sharedID), false},
		{"other user", Authenticated(otherID), false},
		{"anonymous", Anonymous(), false},
	}
	for opName, op := range ops {
		for _, s := range subjects {
			t.Run(opName+"/"+s.name, func(t *testing.T) {
				// Public visibility must not widen write access.
				assert.Equal(t, s.want, op(s.subject, vehicle(false)))
				assert.Equal(t, s.want, op(s.subject, vehicle(true)))
			})
		}
	}
}

func TestSubjectIdentity(t *testing.T) {
	assert.True(t, Anonymous().IsAnonymous())
	assert.Empty(t, Anonymous().UserID())

	s := Authenticated(ownerID)
	assert.False(t, s.IsAnonymous())
	assert.Equal(t, ownerID, s.UserID())
}
