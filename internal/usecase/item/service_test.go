package item_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"item-monitor/internal/domain/entity"
	"item-monitor/internal/observability/metrics"
	itemUC "item-monitor/internal/usecase/item"
)

// stubRepo is a minimal in-memory ItemRepository.
type stubRepo struct {
	data   map[int64]*entity.Item
	nextID int64
	err    error // set to force repository errors
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Item{}, nextID: 1}
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Item, error) {
	return s.data[id], s.err
}

func (s *stubRepo) List(_ context.Context) ([]*entity.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Item
	for _, v := range s.data {
		out = append(out, v)
	}
	return out, nil
}

func (s *stubRepo) Create(_ context.Context, it *entity.Item) error {
	if s.err != nil {
		return s.err
	}
	it.ID = s.nextID
	s.nextID++
	s.data[it.ID] = it
	return nil
}

func (s *stubRepo) Update(_ context.Context, it *entity.Item) error {
	if s.err != nil {
		return s.err
	}
	s.data[it.ID] = it
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	delete(s.data, id)
	return nil
}

func (s *stubRepo) Count(_ context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.data)), nil
}

func TestCreate(t *testing.T) {
	repo := newStub()
	svc := &itemUC.Service{Repo: repo}

	it, err := svc.Create(context.Background(), itemUC.CreateInput{Name: "widget"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if it.ID != 1 {
		t.Errorf("ID = %d, want 1", it.ID)
	}
	if it.Name != "widget" {
		t.Errorf("Name = %q, want widget", it.Name)
	}
	if it.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty name", input: ""},
		{name: "name too long", input: strings.Repeat("x", entity.MaxItemNameLength+1)},
	}

	svc := &itemUC.Service{Repo: newStub()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), itemUC.CreateInput{Name: tt.input})
			var verr *entity.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Create() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestCreate_RepositoryError(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("db down")
	svc := &itemUC.Service{Repo: repo}

	if _, err := svc.Create(context.Background(), itemUC.CreateInput{Name: "widget"}); err == nil {
		t.Error("Create() expected error")
	}
}

func TestList(t *testing.T) {
	repo := newStub()
	svc := &itemUC.Service{Repo: repo}

	for _, name := range []string{"a", "b", "c"} {
		if _, err := svc.Create(context.Background(), itemUC.CreateInput{Name: name}); err != nil {
			t.Fatalf("Create(%q) error: %v", name, err)
		}
	}

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("len(items) = %d, want 3", len(items))
	}
}

func TestGet(t *testing.T) {
	repo := newStub()
	svc := &itemUC.Service{Repo: repo}

	created, err := svc.Create(context.Background(), itemUC.CreateInput{Name: "widget"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Name != "widget" {
		t.Errorf("Name = %q, want widget", got.Name)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := &itemUC.Service{Repo: newStub()}

	_, err := svc.Get(context.Background(), 999)
	if !errors.Is(err, itemUC.ErrItemNotFound) {
		t.Errorf("Get() error = %v, want ErrItemNotFound", err)
	}
}

func TestGet_InvalidID(t *testing.T) {
	svc := &itemUC.Service{Repo: newStub()}

	for _, id := range []int64{0, -1} {
		if _, err := svc.Get(context.Background(), id); !errors.Is(err, itemUC.ErrInvalidItemID) {
			t.Errorf("Get(%d) error = %v, want ErrInvalidItemID", id, err)
		}
	}
}

func TestUpdate(t *testing.T) {
	repo := newStub()
	svc := &itemUC.Service{Repo: repo}

	created, err := svc.Create(context.Background(), itemUC.CreateInput{Name: "old"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	updated, err := svc.Update(context.Background(), itemUC.UpdateInput{ID: created.ID, Name: "new"})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Name != "new" {
		t.Errorf("Name = %q, want new", updated.Name)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := &itemUC.Service{Repo: newStub()}

	_, err := svc.Update(context.Background(), itemUC.UpdateInput{ID: 999, Name: "new"})
	if !errors.Is(err, itemUC.ErrItemNotFound) {
		t.Errorf("Update() error = %v, want ErrItemNotFound", err)
	}
}

func TestUpdate_Validation(t *testing.T) {
	repo := newStub()
	svc := &itemUC.Service{Repo: repo}

	created, err := svc.Create(context.Background(), itemUC.CreateInput{Name: "widget"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	_, err = svc.Update(context.Background(), itemUC.UpdateInput{ID: created.ID, Name: ""})
	var verr *entity.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Update() error = %v, want ValidationError", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newStub()
	svc := &itemUC.Service{Repo: repo}

	created, err := svc.Create(context.Background(), itemUC.CreateInput{Name: "widget"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, itemUC.ErrItemNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrItemNotFound", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := &itemUC.Service{Repo: newStub()}

	if err := svc.Delete(context.Background(), 999); !errors.Is(err, itemUC.ErrItemNotFound) {
		t.Errorf("Delete() error = %v, want ErrItemNotFound", err)
	}
}

func TestCreate_RecordsMetrics(t *testing.T) {
	registry := metrics.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appMetrics, err := metrics.NewAppMetrics(registry, logger)
	if err != nil {
		t.Fatalf("NewAppMetrics() error: %v", err)
	}

	svc := &itemUC.Service{Repo: newStub(), Metrics: appMetrics}

	for range 2 {
		if _, err := svc.Create(context.Background(), itemUC.CreateInput{Name: "widget"}); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	rendered, err := registry.Render()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(rendered, "items_created_total 2") {
		t.Errorf("render missing counter:\n%s", rendered)
	}
	if !strings.Contains(rendered, "items_in_database 2") {
		t.Errorf("render missing gauge:\n%s", rendered)
	}
}

func TestSyncItemCount(t *testing.T) {
	repo := newStub()
	svc := &itemUC.Service{Repo: repo}

	if _, err := svc.Create(context.Background(), itemUC.CreateInput{Name: "widget"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if err := svc.SyncItemCount(context.Background()); err != nil {
		t.Errorf("SyncItemCount() error: %v", err)
	}

	repo.err = errors.New("db down")
	if err := svc.SyncItemCount(context.Background()); err == nil {
		t.Error("SyncItemCount() expected error")
	}
}
