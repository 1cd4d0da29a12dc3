package application

import "errors"

var (
	ErrEmailConflict     = errors.New("email is already in use")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmptyUpdate       = errors.New("no fields to update")
	ErrIncompleteReplace = errors.New("replace requires firstName, lastName, email and password")
	ErrEmptyPassword     = errors.New("password must not be empty")
	ErrPasswordTooLong   = errors.New("password must be at most 72 bytes")
	ErrHashFailure       = errors.New("password hashing failed")
)
