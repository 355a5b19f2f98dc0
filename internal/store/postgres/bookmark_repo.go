package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/domain"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/store"
)

// BookmarkRepository persists bookmarks with owner scoping baked into
// every statement. A caller can only ever see or touch rows whose
// owner_id matches the identity it presents.
type BookmarkRepository struct {
	pool *pgxpool.Pool
}

// NewBookmarkRepository creates a bookmark repository on the given pool.
func NewBookmarkRepository(pool *pgxpool.Pool) *BookmarkRepository {
	return &BookmarkRepository{pool: pool}
}

// ListByOwner is the bootstrap query: the owner's full collection,
// newest first.
func (r *BookmarkRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Bookmark, error) {
	query := `SELECT id, owner_id, title, location, created_at, updated_at
	          FROM bookmarks
	          WHERE owner_id = $1
	          ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := make([]domain.Bookmark, 0)
	for rows.Next() {
		var b domain.Bookmark
		err := rows.Scan(
			&b.ID,
			&b.OwnerID,
			&b.Title,
			&b.Location,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookmarks: %w", err)
	}

	return bookmarks, nil
}

// GetByID fetches a single bookmark scoped to its owner.
func (r *BookmarkRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Bookmark, error) {
	query := `SELECT id, owner_id, title, location, created_at, updated_at
	          FROM bookmarks
	          WHERE id = $1 AND owner_id = $2`

	var b domain.Bookmark
	err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&b.ID,
		&b.OwnerID,
		&b.Title,
		&b.Location,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}
	return &b, nil
}

// Create inserts a bookmark and populates the server-assigned fields.
func (r *BookmarkRepository) Create(ctx context.Context, b *domain.Bookmark) error {
	query := `INSERT INTO bookmarks (owner_id, title, location)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		b.OwnerID,
		b.Title,
		b.Location,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create bookmark: %w", err)
	}
	return nil
}

// Update rewrites the user-editable fields of an owned bookmark and
// refreshes the record with the stored timestamps.
func (r *BookmarkRepository) Update(ctx context.Context, b *domain.Bookmark) error {
	query := `UPDATE bookmarks
	          SET title = $1,
	              location = $2,
	              updated_at = NOW()
	          WHERE id = $3 AND owner_id = $4
	          RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		b.Title,
		b.Location,
		b.ID,
		b.OwnerID,
	).Scan(&b.CreatedAt, &b.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update bookmark: %w", err)
	}
	return nil
}

// Delete removes an owned bookmark.
func (r *BookmarkRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	query := `DELETE FROM bookmarks WHERE id = $1 AND owner_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
