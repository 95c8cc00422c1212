// Package postgres implements the repository interfaces against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"item-monitor/internal/domain/entity"
	"item-monitor/internal/observability/metrics"
	"item-monitor/internal/repository"
)

// querier is the subset of *sql.DB the repository needs. It is also
// satisfied by the database circuit breaker, so the repository can run
// with or without breaker protection.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type ItemRepo struct {
	db      querier
	metrics *metrics.AppMetrics
}

// NewItemRepo creates an item repository. Metrics may be nil, in which case
// query durations are not recorded.
func NewItemRepo(db querier, m *metrics.AppMetrics) repository.ItemRepository {
	return &ItemRepo{db: db, metrics: m}
}

func (repo *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	const query = `
SELECT id, name, created_at
FROM items
ORDER BY id`
	defer repo.timeQuery("list_items")()

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*entity.Item, 0, 100)
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (repo *ItemRepo) Get(ctx context.Context, id int64) (*entity.Item, error) {
	const query = `
SELECT id, name, created_at
FROM items
WHERE id = $1
LIMIT 1`
	defer repo.timeQuery("get_item")()

	var it entity.Item
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&it.ID, &it.Name, &it.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &it, nil
}

func (repo *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	const query = `
INSERT INTO items (name, created_at)
VALUES ($1, $2)
RETURNING id`
	defer repo.timeQuery("insert_item")()

	err := repo.db.QueryRowContext(ctx, query, item.Name, item.CreatedAt).
		Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	const query = `
UPDATE items SET name = $1
WHERE id = $2`
	defer repo.timeQuery("update_item")()

	res, err := repo.db.ExecContext(ctx, query, item.Name, item.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}

func (repo *ItemRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM items WHERE id = $1`
	defer repo.timeQuery("delete_item")()

	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}

func (repo *ItemRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM items`
	defer repo.timeQuery("count_items")()

	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// timeQuery returns a func that records the elapsed duration for the
// operation when invoked, intended for use with defer.
func (repo *ItemRepo) timeQuery(operation string) func() {
	start := time.Now()
	return func() {
		repo.metrics.ObserveDBQuery(operation, time.Since(start))
	}
}
