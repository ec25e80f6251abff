package errors

import "errors"

var (
	ErrNotFound      = errors.New("movie not found")
	ErrAlreadyExists = errors.New("movie already exists")
)
