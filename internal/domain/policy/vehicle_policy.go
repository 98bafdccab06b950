// Package policy decides which vehicle operations a subject may perform.
// It is pure domain logic with no transport or storage dependencies so that
// every handler and service applies the exact same rules.
package policy

import (
	"github.com/garagemlabs/garagem-api/internal/domain/entity"
)

// Subject is the caller identity: either anonymous or an authenticated user.
type Subject struct {
	userID string
}

// Anonymous returns the unauthenticated subject.
func Anonymous() Subject { return Subject{} }

// Authenticated returns a subject for the given user id.
func Authenticated(userID string) Subject { return Subject{userID: userID} }

// IsAnonymous reports whether the subject carries no identity.
func (s Subject) IsAnonymous() bool { return s.userID == "" }

// UserID returns the authenticated user id, or "" for anonymous subjects.
func (s Subject) UserID() string { return s.userID }

// IsOwner reports whether the subject owns the vehicle.
func IsOwner(s Subject, v *entity.Vehicle) bool {
	return !s.IsAnonymous() && s.UserID() == v.OwnerID
}

// CanView allows the owner, every user the vehicle was shared with, and
// anyone at all when the vehicle is public.
func CanView(s Subject, v *entity.Vehicle) bool {
	if v.IsPublic {
		return true
	}
	if s.IsAnonymous() {
		return false
	}
	return IsOwner(s, v) || v.IsSharedWith(s.UserID())
}

// CanEdit gates core field and additional-detail updates. Owner only;
// shared users have read-only access.
func CanEdit(s Subject, v *entity.Vehicle) bool { return IsOwner(s, v) }

// CanShare gates adding users to the shared list. Owner only.
func CanShare(s Subject, v *entity.Vehicle) bool { return IsOwner(s, v) }

// CanTogglePrivacy gates flipping the public flag. Owner only.
func CanTogglePrivacy(s Subject, v *entity.Vehicle) bool { return IsOwner(s, v) }

// CanDelete gates removal. Owner only.
func CanDelete(s Subject, v *entity.Vehicle) bool { return IsOwner(s, v) }
