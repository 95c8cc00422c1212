// Package item provides HTTP handlers for item-related endpoints.
// It includes handlers for creating, listing, updating, and deleting items.
package item

import (
	"time"

	"item-monitor/internal/domain/entity"
)

// DTO represents the JSON structure for item data transfer.
type DTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(it *entity.Item) DTO {
	return DTO{
		ID:        it.ID,
		Name:      it.Name,
		CreatedAt: it.CreatedAt,
	}
}
