// Package errs contains sentinel errors shared across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist, or that the
	// caller is not allowed to know it exists (existence-hiding reads).
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the caller may view the entity but is not
	// permitted to perform the requested operation on it.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateEmail indicates the registration email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicatePlate indicates a vehicle with the same plate already exists.
	ErrDuplicatePlate = errors.New("plate already registered")

	// ErrAlreadyShared indicates the vehicle is already shared with the target user.
	ErrAlreadyShared = errors.New("vehicle already shared with user")

	// ErrSelfShare indicates an attempt to share a vehicle with its owner.
	ErrSelfShare = errors.New("cannot share vehicle with its owner")

	// ErrUserNotFound indicates a share target email that matches no account.
	ErrUserNotFound = errors.New("user not found")
)
