package errors

import "errors"

var (
	ErrNotFound      = errors.New("screening not found")
	ErrAlreadyExists = errors.New("screening already exists")
)
