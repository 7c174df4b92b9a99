package model

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrValidation    = errors.New("validation error")
	ErrAlreadyMember = errors.New("already a member")
	ErrNotMember     = errors.New("not a member")
)
