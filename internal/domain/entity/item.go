// Package entity defines the core domain types for the item monitoring service.
package entity

import "time"

// MaxItemNameLength is the maximum allowed length of an item name.
// It matches the VARCHAR(255) column in the items table.
const MaxItemNameLength = 255

// Item represents a single record in the items table.
type Item struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Validate checks the item fields against domain constraints.
// Returns a *ValidationError describing the first violated constraint.
func (i *Item) Validate() error {
	if i.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if len(i.Name) > MaxItemNameLength {
		return &ValidationError{Field: "name", Message: "is too long (max 255 characters)"}
	}
	return nil
}
