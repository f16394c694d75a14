package migrations

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
)

func TestRun_CallsGooseWithEmbeddedFS(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, d *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	if err := Run(context.Background(), db); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if gotDir != "." {
		t.Fatalf("unexpected migrations dir: %q", gotDir)
	}
}

func TestRun_PropagatesGooseError(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	gooseUpContext = func(ctx context.Context, d *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	if err := Run(context.Background(), db); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestEmbeddedMigrations_Present(t *testing.T) {
	entries, err := Migrations.ReadDir(".")
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("no embedded migrations")
	}
}
