package service

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidDateRange = errors.New("checkout date must be after checkin date")
	ErrDeliveryFailed   = errors.New("failed to deliver email")
	ErrPersistence      = errors.New("failed to store data")
	ErrNotFound         = errors.New("not found")
)

// ValidationError lists the request fields that are missing or malformed.
// errors.Is(err, ErrInvalidInput) holds for it.
type ValidationError struct {
	Missing []string
	Invalid map[string]string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "Missing required fields: "+strings.Join(e.Missing, ", "))
	}
	for _, field := range slices.Sorted(maps.Keys(e.Invalid)) {
		parts = append(parts, field+": "+e.Invalid[field])
	}
	if len(parts) == 0 {
		return ErrInvalidInput.Error()
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
