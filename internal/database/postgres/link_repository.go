package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ivanmalyar/url-alias/internal/database"
	"github.com/ivanmalyar/url-alias/internal/models"
)

type linkRecord struct {
	ID          int64     `db:"id"`
	ShortCode   string    `db:"short_code"`
	OriginalURL string    `db:"original_url"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	ExpiresAt   time.Time `db:"expires_at"`
	ClickCount  int64     `db:"click_count"`
	CreatedBy   *string   `db:"created_by"`
}

func (r *linkRecord) ToLink() *models.Link {
	return &models.Link{
		ID:          r.ID,
		ShortCode:   r.ShortCode,
		OriginalURL: r.OriginalURL,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		ExpiresAt:   r.ExpiresAt,
		ClickCount:  r.ClickCount,
		CreatedBy:   r.CreatedBy,
	}
}

func toLinks(recs []linkRecord) []*models.Link {
	links := make([]*models.Link, 0, len(recs))
	for i := range recs {
		links = append(links, recs[i].ToLink())
	}
	return links
}

type LinkRepository struct {
	db *sqlx.DB
}

func NewLinkRepository(db *sqlx.DB) *LinkRepository {
	return &LinkRepository{
		db: db,
	}
}

func (r *LinkRepository) Create(ctx context.Context, shortCode, originalURL string, expiresAt time.Time, createdBy string) (*models.Link, error) {
	const op = "database.postgres.LinkRepository.Create"

	rec := new(linkRecord)
	query := `INSERT INTO links(short_code, original_url, expires_at, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, shortCode, originalURL, expiresAt, createdBy)
	if err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrShortCodeExists)
		}

		return nil, fmt.Errorf("%s: failed to create link record: %w", op, err)
	}

	return rec.ToLink(), nil
}

func (r *LinkRepository) GetByShortCode(ctx context.Context, shortCode string) (*models.Link, error) {
	const op = "database.postgres.LinkRepository.GetByShortCode"

	rec := new(linkRecord)
	query := `SELECT * FROM links WHERE short_code = $1`

	err := r.db.GetContext(ctx, rec, query, shortCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrLinkNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get link record: %w", op, err)
	}

	return rec.ToLink(), nil
}

// GetAccessible retrieves a link only if it is active and unexpired. Missing,
// expired and deactivated links are indistinguishable to the caller.
func (r *LinkRepository) GetAccessible(ctx context.Context, shortCode string, now time.Time) (*models.Link, error) {
	const op = "database.postgres.LinkRepository.GetAccessible"

	rec := new(linkRecord)
	query := `SELECT * FROM links
		WHERE short_code = $1 AND is_active = TRUE AND expires_at > $2`

	err := r.db.GetContext(ctx, rec, query, shortCode, now)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrLinkNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get link record: %w", op, err)
	}

	return rec.ToLink(), nil
}

// Update applies a partial update: nil fields keep their stored values.
func (r *LinkRepository) Update(ctx context.Context, shortCode string, isActive *bool, expiresAt *time.Time) (*models.Link, error) {
	const op = "database.postgres.LinkRepository.Update"

	rec := new(linkRecord)
	query := `UPDATE links
		SET is_active = COALESCE($1, is_active),
			expires_at = COALESCE($2, expires_at)
		WHERE short_code = $3
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, isActive, expiresAt, shortCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrLinkNotFound)
		}

		return nil, fmt.Errorf("%s: failed to update link record: %w", op, err)
	}

	return rec.ToLink(), nil
}

func (r *LinkRepository) Delete(ctx context.Context, shortCode string) error {
	const op = "database.postgres.LinkRepository.Delete"

	query := `DELETE FROM links WHERE short_code = $1`

	res, err := r.db.ExecContext(ctx, query, shortCode)
	if err != nil {
		return fmt.Errorf("%s: failed to delete link record: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, database.ErrLinkNotFound)
	}

	return nil
}

// List returns one page of a user's links ordered by creation time descending,
// optionally filtered by the active flag, along with the total matching count.
func (r *LinkRepository) List(ctx context.Context, createdBy string, page, pageSize int, active *bool) ([]*models.Link, int64, error) {
	const op = "database.postgres.LinkRepository.List"

	where := `WHERE created_by = $1`
	args := []any{createdBy}

	if active != nil {
		where += ` AND is_active = $2`
		args = append(args, *active)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM links ` + where

	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count link records: %w", op, err)
	}

	query := fmt.Sprintf(`SELECT * FROM links %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	var recs []linkRecord
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to list link records: %w", op, err)
	}

	return toLinks(recs), total, nil
}

// ListByClicks returns all links ordered by popularity. Ties are broken by id
// ascending so the ordering stays deterministic.
func (r *LinkRepository) ListByClicks(ctx context.Context) ([]*models.Link, error) {
	const op = "database.postgres.LinkRepository.ListByClicks"

	query := `SELECT * FROM links ORDER BY click_count DESC, id ASC`

	var recs []linkRecord
	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("%s: failed to list link records: %w", op, err)
	}

	return toLinks(recs), nil
}

// RegisterClick increments the link's click counter and appends a click
// record in a single transaction. The increment happens in SQL so concurrent
// redirects never lose updates.
func (r *LinkRepository) RegisterClick(ctx context.Context, linkID int64, clickedAt time.Time, ipAddress, userAgent *string) error {
	const op = "database.postgres.LinkRepository.RegisterClick"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback() //nolint:errcheck

	incrementQuery := `UPDATE links
		SET click_count = click_count + 1
		WHERE id = $1`

	res, err := tx.ExecContext(ctx, incrementQuery, linkID)
	if err != nil {
		return fmt.Errorf("%s: failed to increment click count: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, database.ErrLinkNotFound)
	}

	insertQuery := `INSERT INTO clicks(link_id, clicked_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4)`

	if _, err := tx.ExecContext(ctx, insertQuery, linkID, clickedAt, ipAddress, userAgent); err != nil {
		return fmt.Errorf("%s: failed to create click record: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}
