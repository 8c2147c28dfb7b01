package db

import (
	"context"
	"strings"
	"testing"
)

func TestMigrateIdempotent(t *testing.T) {
	database := NewTestDB(t)

	if err := Migrate(context.Background(), database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		t.Fatalf("querying items: %v", err)
	}
	if n != 0 {
		t.Errorf("expected empty items table, got %d rows", n)
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	database := NewTestDB(t)

	var on int
	if err := database.QueryRow(`PRAGMA foreign_keys`).Scan(&on); err != nil {
		t.Fatalf("reading pragma: %v", err)
	}
	if on != 1 {
		t.Errorf("expected foreign_keys=1, got %d", on)
	}
}

func TestReportedConsistencyCheck(t *testing.T) {
	database := NewTestDB(t)

	_, err := database.Exec(
		`INSERT INTO items (id, title, name, email, phone, reported, created_at)
		 VALUES ('abc12', 't', 'n', 'e@x.com', '+12025550172', 1, CURRENT_TIMESTAMP)`)
	if err == nil {
		t.Error("expected reported item without reported_since to be rejected")
	}
}

func TestDSN(t *testing.T) {
	if got := dsn("file.db"); !strings.HasPrefix(got, "file.db?_pragma=") {
		t.Errorf("unexpected dsn %q", got)
	}
	if got := dsn("file:x.db?mode=ro"); !strings.HasPrefix(got, "file:x.db?mode=ro&_pragma=") {
		t.Errorf("unexpected dsn %q", got)
	}
}
