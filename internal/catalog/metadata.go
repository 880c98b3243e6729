package catalog

import (
	"context"
	"fmt"

	"github.com/dongju93/cocktail-maker/internal/infrastructure/database"
)

// MetadataCategory names a tasting-note field whose values are drawn from
// the registered vocabulary.
type MetadataCategory string

const (
	CategoryAroma  MetadataCategory = "aroma"
	CategoryTaste  MetadataCategory = "taste"
	CategoryFinish MetadataCategory = "finish"
)

// ParseMetadataCategory validates a category string from a URL path.
func ParseMetadataCategory(s string) (MetadataCategory, error) {
	switch MetadataCategory(s) {
	case CategoryAroma, CategoryTaste, CategoryFinish:
		return MetadataCategory(s), nil
	default:
		return "", fmt.Errorf("unknown metadata category: %q", s)
	}
}

// MetadataEntry is one registered vocabulary value.
type MetadataEntry struct {
	Index int64  `json:"index"`
	Name  string `json:"name"`
}

// MetadataStore manages the tasting-note vocabulary in SQLite.
type MetadataStore struct {
	db *database.DB
}

// NewMetadataStore creates a store over the metadata table.
func NewMetadataStore(db *database.DB) *MetadataStore {
	return &MetadataStore{db: db}
}

// Create registers vocabulary values under a kind and category.
// Already-registered values are skipped rather than rejected.
func (s *MetadataStore) Create(ctx context.Context, kind Kind, category MetadataCategory, names []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	for _, name := range names {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO metadata (category, name, kind) VALUES (?, ?, ?)",
			string(category), name, string(kind),
		); err != nil {
			return fmt.Errorf("inserting metadata %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing metadata insert: %w", err)
	}
	return nil
}

// List returns the registered values for a kind and category, ordered by name.
func (s *MetadataStore) List(ctx context.Context, kind Kind, category MetadataCategory) ([]MetadataEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM metadata WHERE category = ? AND kind = ? ORDER BY name",
		string(category), string(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("querying metadata: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only cursor

	entries := []MetadataEntry{}
	for rows.Next() {
		var e MetadataEntry
		if err := rows.Scan(&e.Index, &e.Name); err != nil {
			return nil, fmt.Errorf("scanning metadata row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metadata: %w", err)
	}
	return entries, nil
}

// Delete removes a vocabulary value by id.
// Returns ErrMetadataNotFound when no row matches.
func (s *MetadataStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM metadata WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting metadata: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking metadata delete: %w", err)
	}
	if affected == 0 {
		return ErrMetadataNotFound
	}
	return nil
}

// Validate checks that every aroma, taste, and finish value of a document
// is registered for its kind. Returns ErrInvalidMetadata on the first
// unregistered value.
func (s *MetadataStore) Validate(ctx context.Context, kind Kind, aroma, taste, finish []string) error {
	checks := []struct {
		category MetadataCategory
		values   []string
	}{
		{CategoryAroma, aroma},
		{CategoryTaste, taste},
		{CategoryFinish, finish},
	}

	for _, check := range checks {
		for _, value := range check.values {
			var count int
			err := s.db.QueryRowContext(ctx,
				"SELECT COUNT(*) FROM metadata WHERE category = ? AND kind = ? AND name = ?",
				string(check.category), string(kind), value,
			).Scan(&count)
			if err != nil {
				return fmt.Errorf("checking metadata value: %w", err)
			}
			if count == 0 {
				return fmt.Errorf("%w: %s %q not registered for %s",
					ErrInvalidMetadata, check.category, value, kind)
			}
		}
	}
	return nil
}
