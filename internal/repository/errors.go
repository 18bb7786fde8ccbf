package repository

import "github.com/pkg/errors"

var (
	ErrBatchNotFound = errors.New("batch not found")
	ErrInvalidInput  = errors.New("invalid input parameters")
)
