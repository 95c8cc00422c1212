package item

import (
	"context"
	"fmt"
	"time"

	"item-monitor/internal/domain/entity"
	"item-monitor/internal/observability/metrics"
	"item-monitor/internal/repository"
)

// CreateInput represents the input parameters for creating a new item.
type CreateInput struct {
	Name string
}

// UpdateInput represents the input parameters for updating an existing item.
type UpdateInput struct {
	ID   int64
	Name string
}

// Service provides item management use cases.
// It handles business logic for item operations and delegates persistence to
// the repository. Metrics may be nil, in which case operations run unmetered.
type Service struct {
	Repo    repository.ItemRepository
	Metrics *metrics.AppMetrics
}

// Create validates the input and stores a new item.
// On success the created-items counter is incremented and the item count
// gauge resynchronized. Returns a ValidationError if the name is invalid.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Item, error) {
	it := &entity.Item{
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.Metrics.RecordItemCreated()
	s.syncCount(ctx)

	return it, nil
}

// List retrieves all items and refreshes the item count gauge.
func (s *Service) List(ctx context.Context) ([]*entity.Item, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	s.Metrics.SetItemsInDatabase(int64(len(items)))

	return items, nil
}

// Get retrieves a single item by its ID.
// Returns ErrInvalidItemID if the ID is not positive.
// Returns ErrItemNotFound if the item does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Item, error) {
	if id <= 0 {
		return nil, ErrInvalidItemID
	}

	it, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if it == nil {
		return nil, ErrItemNotFound
	}
	return it, nil
}

// Update renames an existing item.
// Returns ErrInvalidItemID if the ID is not positive.
// Returns ErrItemNotFound if the item does not exist.
// Returns a ValidationError if the new name is invalid.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Item, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidItemID
	}

	it, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if it == nil {
		return nil, ErrItemNotFound
	}

	it.Name = in.Name
	if err := it.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, it); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return it, nil
}

// Delete removes an item by its ID and resynchronizes the item count gauge.
// Returns ErrInvalidItemID if the ID is not positive.
// Returns ErrItemNotFound if the item does not exist.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidItemID
	}

	it, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	if it == nil {
		return ErrItemNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.syncCount(ctx)

	return nil
}

// SyncItemCount refreshes the item count gauge from the database.
// Called at startup so the gauge is populated before the first scrape.
func (s *Service) SyncItemCount(ctx context.Context) error {
	count, err := s.Repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	s.Metrics.SetItemsInDatabase(count)
	return nil
}

// syncCount updates the gauge after a write. A failed count never fails the
// write that triggered it; the gauge catches up on the next list or sync.
func (s *Service) syncCount(ctx context.Context) {
	count, err := s.Repo.Count(ctx)
	if err != nil {
		return
	}
	s.Metrics.SetItemsInDatabase(count)
}
