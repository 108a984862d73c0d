package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ourystd/kaherecode/internal/domain"
)

// PostgresTagRepository implements TagRepository using PostgreSQL.
type PostgresTagRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTagRepository creates a new PostgresTagRepository.
func NewPostgresTagRepository(pool *pgxpool.Pool) *PostgresTagRepository {
	return &PostgresTagRepository{pool: pool}
}

// GetByLabel returns the tag with the given label, or nil when unknown.
func (r *PostgresTagRepository) GetByLabel(ctx context.Context, label string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.pool.QueryRow(ctx, `
		SELECT id, label FROM tags WHERE label = $1
	`, label).Scan(&tag.ID, &tag.Label)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tag by label: %w", err)
	}
	return &tag, nil
}

// ListAll returns every tag ordered by label.
func (r *PostgresTagRepository) ListAll(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, label FROM tags ORDER BY label`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Label); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}

	return tags, nil
}
