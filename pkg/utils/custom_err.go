package utils

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidPage       = errors.New("invalid page parameter")
	ErrInvalidPageSize   = errors.New("invalid page size parameter")
	ErrPlanNotFound      = errors.New("travel plan not found")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrDatabaseError     = errors.New("database error")
	ErrEmptyCompletion   = errors.New("empty completion")
	ErrGeneratorDisabled = errors.New("text generator disabled")
)
