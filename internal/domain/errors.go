package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Entity-specific validation errors wrap this sentinel so callers can
	// classify failures with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an entity carries a nil UUID.
	ErrInvalidID = fmt.Errorf("%w: invalid ID", ErrValidation)

	// ErrInvalidMoodLevel is returned when a mood level is outside [1,5].
	ErrInvalidMoodLevel = fmt.Errorf("%w: mood level must be between 1 and 5", ErrValidation)

	// ErrDuplicateActivity is returned when an entry references the same
	// activity more than once.
	ErrDuplicateActivity = fmt.Errorf("%w: duplicate activity reference", ErrValidation)

	// ErrEmptyMediaRef is returned when a media reference is present but
	// empty. An absent attachment must be nil, never an empty string.
	ErrEmptyMediaRef = fmt.Errorf("%w: media reference cannot be empty", ErrValidation)

	// ErrInvalidActivityName is returned when an activity name is empty,
	// longer than the display limit, or not displayable.
	ErrInvalidActivityName = fmt.Errorf("%w: invalid activity name", ErrValidation)

	// ErrInvalidActivityCategory is returned when an activity category is not
	// part of the closed category enumeration.
	ErrInvalidActivityCategory = fmt.Errorf("%w: invalid activity category", ErrValidation)
)

// IsValidationError checks whether err is any kind of domain validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
