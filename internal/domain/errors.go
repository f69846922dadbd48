package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrEmailTaken     = errors.New("email already exists")
	ErrUsernameTaken  = errors.New("username already exists")
	ErrAlreadyClaimed = errors.New("donation already claimed")
)
