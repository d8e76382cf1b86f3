package statestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"storefront/internal/domain"
)

func testRepository(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()

	if _, err := repo.Load(ctx, KeyCart); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := repo.Save(ctx, KeyCart, []byte(`[{"product_id":"p1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx, KeyCart)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `[{"product_id":"p1"}]` {
		t.Fatalf("unexpected value: %s", got)
	}

	if err := repo.Save(ctx, KeyCart, []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = repo.Load(ctx, KeyCart)
	if err != nil {
		t.Fatalf("load after overwrite: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("unexpected value after overwrite: %s", got)
	}

	if err := repo.Delete(ctx, KeyCart); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Load(ctx, KeyCart); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent key is a no-op.
	if err := repo.Delete(ctx, "never-saved"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestMemoryRepository(t *testing.T) {
	testRepository(t, NewMemory())
}

func TestFileRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	testRepository(t, NewFile(path))
}

func TestFileRepositorySurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	repo := NewFile(path)
	if err := repo.Save(ctx, KeyToken, []byte(`"abc"`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	reopened := NewFile(path)
	got, err := reopened.Load(ctx, KeyToken)
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if string(got) != `"abc"` {
		t.Fatalf("unexpected value: %s", got)
	}
}

func TestBoltRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	repo, closeFn, err := NewBolt(path)
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	defer closeFn()
	testRepository(t, repo)
}
