package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ivanmalyar/url-alias/internal/models"
)

type clickWindowsRecord struct {
	LastHour    int64      `db:"last_hour"`
	LastDay     int64      `db:"last_day"`
	LastWeek    int64      `db:"last_week"`
	LastMonth   int64      `db:"last_month"`
	LastClicked *time.Time `db:"last_clicked"`
}

func (r *clickWindowsRecord) ToClickWindows() models.ClickWindows {
	return models.ClickWindows{
		LastHour:    r.LastHour,
		LastDay:     r.LastDay,
		LastWeek:    r.LastWeek,
		LastMonth:   r.LastMonth,
		LastClicked: r.LastClicked,
	}
}

type ClickRepository struct {
	db *sqlx.DB
}

func NewClickRepository(db *sqlx.DB) *ClickRepository {
	return &ClickRepository{
		db: db,
	}
}

// WindowStats computes the trailing hour/day/week/30-day click counts and the
// most recent click timestamp for a link. The windows are independent range
// counts anchored at now, evaluated in one aggregate query.
func (r *ClickRepository) WindowStats(ctx context.Context, linkID int64, now time.Time) (models.ClickWindows, error) {
	const op = "database.postgres.ClickRepository.WindowStats"

	rec := new(clickWindowsRecord)
	query := `SELECT
			COUNT(*) FILTER (WHERE clicked_at >= $2) AS last_hour,
			COUNT(*) FILTER (WHERE clicked_at >= $3) AS last_day,
			COUNT(*) FILTER (WHERE clicked_at >= $4) AS last_week,
			COUNT(*) FILTER (WHERE clicked_at >= $5) AS last_month,
			MAX(clicked_at) AS last_clicked
		FROM clicks
		WHERE link_id = $1`

	err := r.db.GetContext(ctx, rec, query, linkID,
		now.Add(-time.Hour),
		now.Add(-24*time.Hour),
		now.Add(-7*24*time.Hour),
		now.Add(-30*24*time.Hour),
	)
	if err != nil {
		return models.ClickWindows{}, fmt.Errorf("%s: failed to get click window stats: %w", op, err)
	}

	return rec.ToClickWindows(), nil
}
