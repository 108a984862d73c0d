package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ourystd/kaherecode/internal/domain"
	"github.com/ourystd/kaherecode/internal/metrics"
)

const tutorialColumns = `t.id, t.slug, t.title, t.description, t.content, t.video_link,
	t.picture_url, t.picture_public_id, t.thumbnail_url, t.author_id,
	t.is_published, t.published_at, t.created_at, t.updated_at`

// PostgresTutorialRepository implements TutorialRepository using PostgreSQL.
type PostgresTutorialRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTutorialRepository creates a new PostgresTutorialRepository.
func NewPostgresTutorialRepository(pool *pgxpool.Pool) *PostgresTutorialRepository {
	return &PostgresTutorialRepository{pool: pool}
}

// Create inserts the tutorial and attaches its tags in one transaction.
func (r *PostgresTutorialRepository) Create(ctx context.Context, t *domain.Tutorial, tagLabels []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO tutorials (id, slug, title, description, content, video_link,
			picture_url, picture_public_id, thumbnail_url, author_id,
			is_published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, t.ID, t.Slug, t.Title, t.Description, t.Content, t.VideoLink,
		t.PictureURL, t.PicturePublicID, t.ThumbnailURL, t.AuthorID,
		t.IsPublished, t.PublishedAt, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert tutorial: %w", err)
	}

	tags, err := r.replaceTags(ctx, tx, t.ID, tagLabels)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	t.Tags = tags
	return nil
}

// Update persists field changes and replaces the tag set in one transaction.
// All previously attached tags are detached before the recomputed set is
// attached, so edits always converge on the submitted labels.
func (r *PostgresTutorialRepository) Update(ctx context.Context, t *domain.Tutorial, tagLabels []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cmd, err := tx.Exec(ctx, `
		UPDATE tutorials
		SET slug = $2, title = $3, description = $4, content = $5, video_link = $6,
			picture_url = $7, picture_public_id = $8, thumbnail_url = $9,
			updated_at = $10
		WHERE id = $1
	`, t.ID, t.Slug, t.Title, t.Description, t.Content, t.VideoLink,
		t.PictureURL, t.PicturePublicID, t.ThumbnailURL, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update tutorial: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	tags, err := r.replaceTags(ctx, tx, t.ID, tagLabels)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	t.Tags = tags
	return nil
}

// replaceTags detaches every tag from the tutorial, then upserts and
// attaches the given labels. The upsert on the unique label index keeps
// concurrent edits from creating duplicate tags.
func (r *PostgresTutorialRepository) replaceTags(ctx context.Context, tx pgx.Tx, tutorialID string, labels []string) ([]domain.Tag, error) {
	if _, err := tx.Exec(ctx, `DELETE FROM tutorial_tags WHERE tutorial_id = $1`, tutorialID); err != nil {
		return nil, fmt.Errorf("detach tags: %w", err)
	}

	tags := make([]domain.Tag, 0, len(labels))
	for _, label := range labels {
		var tag domain.Tag
		var inserted bool
		err := tx.QueryRow(ctx, `
			INSERT INTO tags (id, label)
			VALUES ($1, $2)
			ON CONFLICT (label) DO UPDATE SET label = EXCLUDED.label
			RETURNING id, label, (xmax = 0) AS inserted
		`, uuid.New().String(), label).Scan(&tag.ID, &tag.Label, &inserted)
		if err != nil {
			return nil, fmt.Errorf("upsert tag %q: %w", label, err)
		}
		if inserted {
			metrics.TagsCreatedTotal.Inc()
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO tutorial_tags (tutorial_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, tutorialID, tag.ID); err != nil {
			return nil, fmt.Errorf("attach tag %q: %w", label, err)
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// Delete removes a tutorial; tag associations go with it via cascade.
func (r *PostgresTutorialRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tutorials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tutorial: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkPublished flips the tutorial to published and stamps publishedAt.
func (r *PostgresTutorialRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE tutorials
		SET is_published = TRUE, published_at = $2, updated_at = $2
		WHERE id = $1
	`, id, publishedAt)
	if err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID retrieves a tutorial with its tags, or nil when unknown.
func (r *PostgresTutorialRepository) GetByID(ctx context.Context, id string) (*domain.Tutorial, error) {
	return r.getOne(ctx, fmt.Sprintf(`SELECT %s FROM tutorials t WHERE t.id = $1`, tutorialColumns), id)
}

// GetBySlug retrieves a tutorial with its tags, or nil when unknown.
func (r *PostgresTutorialRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tutorial, error) {
	return r.getOne(ctx, fmt.Sprintf(`SELECT %s FROM tutorials t WHERE t.slug = $1`, tutorialColumns), slug)
}

// ListPublished returns published tutorials ordered by publication date,
// newest first.
func (r *PostgresTutorialRepository) ListPublished(ctx context.Context, limit, offset int) ([]domain.Tutorial, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tutorials t
		WHERE t.is_published = TRUE
		ORDER BY t.published_at DESC
		LIMIT $1 OFFSET $2
	`, tutorialColumns)
	return r.queryMany(ctx, query, limit, offset)
}

// FindAllPublishedByTag returns published tutorials carrying the exact tag
// label, newest first, unbounded.
func (r *PostgresTutorialRepository) FindAllPublishedByTag(ctx context.Context, label string) ([]domain.Tutorial, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tutorials t
		INNER JOIN tutorial_tags tt ON tt.tutorial_id = t.id
		INNER JOIN tags tg ON tg.id = tt.tag_id
		WHERE t.is_published = TRUE AND tg.label = $1
		ORDER BY t.published_at DESC
	`, tutorialColumns)
	return r.queryMany(ctx, query, label)
}

// FindRelated returns other published tutorials sharing at least one tag
// with t. Ties are broken by id ascending so the result is deterministic.
func (r *PostgresTutorialRepository) FindRelated(ctx context.Context, t *domain.Tutorial, limit int) ([]domain.Tutorial, error) {
	if len(t.Tags) == 0 {
		return []domain.Tutorial{}, nil
	}

	tagIDs := make([]string, len(t.Tags))
	for i, tag := range t.Tags {
		tagIDs[i] = tag.ID
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM tutorials t
		INNER JOIN tutorial_tags tt ON tt.tutorial_id = t.id
		WHERE tt.tag_id = ANY($1) AND t.id != $2 AND t.is_published = TRUE
		ORDER BY t.published_at DESC, t.id ASC
	`, tutorialColumns)
	args := []interface{}{tagIDs, t.ID}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	return r.queryMany(ctx, query, args...)
}

// GetAuthorLastPublished returns the author's most recently published other
// tutorial, or nil when there is none.
func (r *PostgresTutorialRepository) GetAuthorLastPublished(ctx context.Context, t *domain.Tutorial) (*domain.Tutorial, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tutorials t
		WHERE t.author_id = $1 AND t.id != $2 AND t.is_published = TRUE
		ORDER BY t.published_at DESC
		LIMIT 1
	`, tutorialColumns)
	return r.getOne(ctx, query, t.AuthorID, t.ID)
}

// FindVideoTutorials returns published tutorials carrying a video link,
// newest first.
func (r *PostgresTutorialRepository) FindVideoTutorials(ctx context.Context) ([]domain.Tutorial, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tutorials t
		WHERE t.video_link IS NOT NULL AND t.is_published = TRUE
		ORDER BY t.published_at DESC
	`, tutorialColumns)
	return r.queryMany(ctx, query)
}

// FindByAuthor returns all of an author's tutorials, drafts included,
// newest first.
func (r *PostgresTutorialRepository) FindByAuthor(ctx context.Context, authorID string) ([]domain.Tutorial, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tutorials t
		WHERE t.author_id = $1
		ORDER BY t.created_at DESC
	`, tutorialColumns)
	return r.queryMany(ctx, query, authorID)
}

func (r *PostgresTutorialRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Tutorial, error) {
	var t domain.Tutorial
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.Slug, &t.Title, &t.Description, &t.Content, &t.VideoLink,
		&t.PictureURL, &t.PicturePublicID, &t.ThumbnailURL, &t.AuthorID,
		&t.IsPublished, &t.PublishedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tutorial: %w", err)
	}

	tagsByTutorial, err := r.loadTags(ctx, []string{t.ID})
	if err != nil {
		return nil, err
	}
	t.Tags = tagsByTutorial[t.ID]

	return &t, nil
}

func (r *PostgresTutorialRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]domain.Tutorial, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tutorials: %w", err)
	}
	defer rows.Close()

	tutorials := []domain.Tutorial{}
	for rows.Next() {
		var t domain.Tutorial
		if err := rows.Scan(
			&t.ID, &t.Slug, &t.Title, &t.Description, &t.Content, &t.VideoLink,
			&t.PictureURL, &t.PicturePublicID, &t.ThumbnailURL, &t.AuthorID,
			&t.IsPublished, &t.PublishedAt, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan tutorial: %w", err)
		}
		tutorials = append(tutorials, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tutorials: %w", err)
	}

	if len(tutorials) == 0 {
		return tutorials, nil
	}

	ids := make([]string, len(tutorials))
	for i := range tutorials {
		ids[i] = tutorials[i].ID
	}
	tagsByTutorial, err := r.loadTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range tutorials {
		tutorials[i].Tags = tagsByTutorial[tutorials[i].ID]
	}

	return tutorials, nil
}

// loadTags fetches the tag sets for the given tutorials in a single query.
func (r *PostgresTutorialRepository) loadTags(ctx context.Context, tutorialIDs []string) (map[string][]domain.Tag, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT tt.tutorial_id, tg.id, tg.label
		FROM tutorial_tags tt
		INNER JOIN tags tg ON tg.id = tt.tag_id
		WHERE tt.tutorial_id = ANY($1)
		ORDER BY tg.label
	`, tutorialIDs)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	tagsByTutorial := make(map[string][]domain.Tag, len(tutorialIDs))
	for rows.Next() {
		var tutorialID string
		var tag domain.Tag
		if err := rows.Scan(&tutorialID, &tag.ID, &tag.Label); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tagsByTutorial[tutorialID] = append(tagsByTutorial[tutorialID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}

	return tagsByTutorial, nil
}
