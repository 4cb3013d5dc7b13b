package service

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrForbidden is returned when the caller does not own the record.
	ErrForbidden = errors.New("not authorized")
	// ErrEmailTaken is returned when registering with an existing email.
	ErrEmailTaken = errors.New("user already exists with this email")
	// ErrInvalidCredentials is returned on any login mismatch; it never
	// reveals whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAlreadyExists is returned on duplicate likes, saves or follows.
	ErrAlreadyExists = errors.New("already exists")
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
)
