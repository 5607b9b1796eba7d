package customerr

import "errors"

var (
	ErrInvalidAmount      = errors.New("amount is missing or not a number")
	ErrMissingCategory    = errors.New("no category chosen")
	ErrDuplicateUser      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("expense not found")
)
