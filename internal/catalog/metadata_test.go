package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dongju93/cocktail-maker/internal/infrastructure/database"
	_ "github.com/dongju93/cocktail-maker/migrations" // register embedded migrations
)

// openMetadataStore creates a migrated temporary database.
func openMetadataStore(t *testing.T) *MetadataStore {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return NewMetadataStore(db)
}

func TestMetadataStore_CreateAndList(t *testing.T) {
	store := openMetadataStore(t)
	ctx := context.Background()

	err := store.Create(ctx, KindSpirits, CategoryAroma, []string{"smoke", "peat", "honey"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	entries, err := store.List(ctx, KindSpirits, CategoryAroma)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// Name-ascending order.
	wantOrder := []string{"honey", "peat", "smoke"}
	for i, want := range wantOrder {
		if entries[i].Name != want {
			t.Errorf("entries[%d].Name = %q, want %q", i, entries[i].Name, want)
		}
		if entries[i].Index == 0 {
			t.Errorf("entries[%d].Index is zero", i)
		}
	}
}

func TestMetadataStore_CreateSkipsDuplicates(t *testing.T) {
	store := openMetadataStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, KindSpirits, CategoryTaste, []string{"sweet"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Create(ctx, KindSpirits, CategoryTaste, []string{"sweet", "dry"}); err != nil {
		t.Fatalf("Create() with duplicate error = %v", err)
	}

	entries, err := store.List(ctx, KindSpirits, CategoryTaste)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2 (duplicate skipped)", len(entries))
	}
}

func TestMetadataStore_ScopedByKindAndCategory(t *testing.T) {
	store := openMetadataStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, KindSpirits, CategoryAroma, []string{"peat"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Create(ctx, KindLiqueur, CategoryAroma, []string{"citrus"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	entries, err := store.List(ctx, KindSpirits, CategoryAroma)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "peat" {
		t.Errorf("spirits aroma = %v, want only peat", entries)
	}

	entries, err = store.List(ctx, KindSpirits, CategoryTaste)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no taste entries for spirits, got %v", entries)
	}
}

func TestMetadataStore_Delete(t *testing.T) {
	store := openMetadataStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, KindSpirits, CategoryFinish, []string{"long"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	entries, err := store.List(ctx, KindSpirits, CategoryFinish)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if err := store.Delete(ctx, entries[0].Index); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	if err := store.Delete(ctx, entries[0].Index); !errors.Is(err, ErrMetadataNotFound) {
		t.Errorf("second Delete() error = %v, want ErrMetadataNotFound", err)
	}
}

func TestMetadataStore_Validate(t *testing.T) {
	store := openMetadataStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, KindSpirits, CategoryAroma, []string{"peat"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Create(ctx, KindSpirits, CategoryTaste, []string{"sweet"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Create(ctx, KindSpirits, CategoryFinish, []string{"long"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("all registered", func(t *testing.T) {
		err := store.Validate(ctx, KindSpirits, []string{"peat"}, []string{"sweet"}, []string{"long"})
		if err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("empty lists are valid", func(t *testing.T) {
		if err := store.Validate(ctx, KindSpirits, nil, nil, nil); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("unregistered value", func(t *testing.T) {
		err := store.Validate(ctx, KindSpirits, []string{"vanilla"}, nil, nil)
		if !errors.Is(err, ErrInvalidMetadata) {
			t.Errorf("Validate() error = %v, want ErrInvalidMetadata", err)
		}
	})

	t.Run("value registered under wrong kind", func(t *testing.T) {
		err := store.Validate(ctx, KindLiqueur, []string{"peat"}, nil, nil)
		if !errors.Is(err, ErrInvalidMetadata) {
			t.Errorf("Validate() error = %v, want ErrInvalidMetadata", err)
		}
	})
}
