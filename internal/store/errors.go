package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is a generic version of the entity-specific not found
	// errors (e.g., ErrEntryNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrKeyNotFound is returned by a Provider when no document exists under
	// the requested key.
	ErrKeyNotFound = errors.New("document key not found")

	// ErrPersistence is returned when the Provider rejected a read or write.
	// Mutations that hit this error roll back their in-memory change first.
	ErrPersistence = errors.New("persistence failed")

	// ErrNotUnlocked is returned when a catalog entry is applied before it
	// has been unlocked.
	ErrNotUnlocked = errors.New("catalog entry not unlocked")

	// ErrInvalidCatalogKind is returned when a catalog kind is neither
	// theme nor skinPack.
	ErrInvalidCatalogKind = errors.New("invalid catalog kind")

	// Entity-specific "not found" errors

	// ErrEntryNotFound indicates that the requested mood entry does not exist.
	ErrEntryNotFound = fmt.Errorf("%w: mood entry", ErrNotFound)

	// ErrActivityNotFound indicates that the requested custom activity does
	// not exist.
	ErrActivityNotFound = fmt.Errorf("%w: custom activity", ErrNotFound)

	// ErrCatalogEntryNotFound indicates that a theme or skin-pack ID is not
	// part of its catalog.
	ErrCatalogEntryNotFound = fmt.Errorf("%w: catalog entry", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrKeyNotFound)
}

// IsPersistenceError checks if the error came from the Provider.
func IsPersistenceError(err error) bool {
	return errors.Is(err, ErrPersistence)
}
