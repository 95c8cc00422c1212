// Package repository defines persistence interfaces for the domain layer.
package repository

import (
	"context"

	"item-monitor/internal/domain/entity"
)

// ItemRepository abstracts persistence for items.
// Get returns (nil, nil) when the item does not exist.
type ItemRepository interface {
	Get(ctx context.Context, id int64) (*entity.Item, error)
	List(ctx context.Context) ([]*entity.Item, error)
	Create(ctx context.Context, item *entity.Item) error
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
