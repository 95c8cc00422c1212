package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"item-monitor/internal/domain/entity"
	pg "item-monitor/internal/infra/adapter/persistence/postgres"
)

func itemRow(it *entity.Item) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "created_at"}).
		AddRow(it.ID, it.Name, it.CreatedAt)
}

func TestItemRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	want := &entity.Item{ID: 1, Name: "widget", CreatedAt: now}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(int64(1)).
		WillReturnRows(itemRow(want))

	repo := pg.NewItemRepo(db, nil)
	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestItemRepo_Get_Missing(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}))

	repo := pg.NewItemRepo(db, nil)
	got, err := repo.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got != nil {
		t.Fatalf("Get = %+v, want nil for missing row", got)
	}
}

func TestItemRepo_List(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery("FROM items").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(int64(1), "a", now).
			AddRow(int64(2), "b", now))

	repo := pg.NewItemRepo(db, nil)
	got, err := repo.List(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
}

func TestItemRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO items")).
		WithArgs("widget", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	repo := pg.NewItemRepo(db, nil)
	it := &entity.Item{Name: "widget", CreatedAt: now}
	if err := repo.Create(context.Background(), it); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if it.ID != 7 {
		t.Errorf("ID = %d, want 7", it.ID)
	}
}

func TestItemRepo_Update(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE items")).
		WithArgs("renamed", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewItemRepo(db, nil)
	if err := repo.Update(context.Background(), &entity.Item{ID: 1, Name: "renamed"}); err != nil {
		t.Fatalf("Update err=%v", err)
	}
}

func TestItemRepo_Update_NoRows(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE items")).
		WithArgs("renamed", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewItemRepo(db, nil)
	if err := repo.Update(context.Background(), &entity.Item{ID: 99, Name: "renamed"}); err == nil {
		t.Fatal("Update expected error for missing row")
	}
}

func TestItemRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM items")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewItemRepo(db, nil)
	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
}

func TestItemRepo_Delete_NoRows(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM items")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewItemRepo(db, nil)
	if err := repo.Delete(context.Background(), 99); err == nil {
		t.Fatal("Delete expected error for missing row")
	}
}

func TestItemRepo_Count(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM items")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

	repo := pg.NewItemRepo(db, nil)
	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count err=%v", err)
	}
	if count != 5 {
		t.Errorf("Count = %d, want 5", count)
	}
}
