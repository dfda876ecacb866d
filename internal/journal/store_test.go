package journal_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/bloyl/fsl-mrs/internal/journal"
	_ "modernc.org/sqlite"
)

func openStore(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func TestAppendAndList(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	entry, err := store.Append(ctx, "merge", "dim=DIM_DYN, inputs=2, length=8",
		[]string{"a.nmrs", "b.nmrs"}, []string{"merged.nmrs"})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("entry ID must be assigned")
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}
	got := entries[0]
	if got.ID != entry.ID || got.Operation != "merge" || got.Detail != entry.Detail {
		t.Fatalf("listed entry = %+v, want %+v", got, entry)
	}
	if !reflect.DeepEqual(got.Inputs, []string{"a.nmrs", "b.nmrs"}) {
		t.Fatalf("inputs = %v", got.Inputs)
	}
	if !reflect.DeepEqual(got.Outputs, []string{"merged.nmrs"}) {
		t.Fatalf("outputs = %v", got.Outputs)
	}
	if !got.CreatedAt.Equal(entry.CreatedAt) {
		t.Fatalf("created at = %v, want %v", got.CreatedAt, entry.CreatedAt)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	ops := []string{"conjugate", "average", "split"}
	for _, op := range ops {
		if _, err := store.Append(ctx, op, "", []string{"in.nmrs"}, []string{"out.nmrs"}); err != nil {
			t.Fatalf("Append %s: %v", op, err)
		}
		// created_at ordering needs distinct timestamps
		time.Sleep(2 * time.Millisecond)
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entry count = %d, want 2", len(entries))
	}
	if entries[0].Operation != "split" || entries[1].Operation != "average" {
		t.Fatalf("order = %s, %s; want split, average", entries[0].Operation, entries[1].Operation)
	}
}

func TestListEmptyStore(t *testing.T) {
	store := openStore(t)
	entries, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entry count = %d, want 0", len(entries))
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if store.Path() != path {
		t.Fatalf("Path() = %q, want %q", store.Path(), path)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Append(context.Background(), "reorder", "dim_order=DIM_DYN,DIM_COIL",
		[]string{"in.nmrs"}, []string{"out.nmrs"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := journal.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Operation != "reorder" {
		t.Fatalf("entries after reopen = %+v", entries)
	}
}

func TestOpenRejectsFutureSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw db: %v", err)
	}

	if _, err := journal.Open(path); !errors.Is(err, journal.ErrSchemaMismatch) {
		t.Fatalf("reopen error = %v, want ErrSchemaMismatch", err)
	}
}
