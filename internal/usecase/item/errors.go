// Package item provides use cases for managing item entities.
// It implements business logic for creating, updating, deleting, and querying
// items, including validation and interaction with the item repository.
package item

import "errors"

// Sentinel errors for item use case operations.
var (
	// ErrItemNotFound indicates that the requested item was not found.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItemID indicates that the provided item ID is invalid.
	// Item IDs must be positive integers.
	ErrInvalidItemID = errors.New("invalid item ID")
)
