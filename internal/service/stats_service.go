package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ivanmalyar/url-alias/internal/models"
)

// StatsLinkRepository defines the link store reads used by StatsService.
type StatsLinkRepository interface {
	GetByShortCode(ctx context.Context, shortCode string) (*models.Link, error)
	ListByClicks(ctx context.Context) ([]*models.Link, error)
}

// ClickRepository defines the click log reads used by StatsService.
type ClickRepository interface {
	WindowStats(ctx context.Context, linkID int64, now time.Time) (models.ClickWindows, error)
}

// StatsService computes per-link and global click summaries. The windowed
// counts are fresh range queries anchored at call time, not cached values.
type StatsService struct {
	links  StatsLinkRepository
	clicks ClickRepository
	now    func() time.Time
}

func NewStatsService(links StatsLinkRepository, clicks ClickRepository) *StatsService {
	return &StatsService{
		links:  links,
		clicks: clicks,
		now:    time.Now,
	}
}

func (s *StatsService) linkStats(ctx context.Context, link *models.Link, now time.Time) (*models.LinkStats, error) {
	windows, err := s.clicks.WindowStats(ctx, link.ID, now)
	if err != nil {
		return nil, err
	}

	return &models.LinkStats{
		ShortCode:    link.ShortCode,
		OriginalURL:  link.OriginalURL,
		ClickCount:   link.ClickCount,
		CreatedAt:    link.CreatedAt,
		IsActive:     link.IsActive,
		ClickWindows: windows,
	}, nil
}

// Stats returns the statistics summary for one link.
func (s *StatsService) Stats(ctx context.Context, shortCode string) (*models.LinkStats, error) {
	const op = "service.StatsService.Stats"

	link, err := s.links.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get link: %w", op, err)
	}

	stats, err := s.linkStats(ctx, link, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get click stats: %w", op, err)
	}

	return stats, nil
}

// StatsAll returns summaries for every link, most popular first.
func (s *StatsService) StatsAll(ctx context.Context) ([]*models.LinkStats, error) {
	const op = "service.StatsService.StatsAll"

	links, err := s.links.ListByClicks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list links: %w", op, err)
	}

	now := s.now()
	stats := make([]*models.LinkStats, 0, len(links))

	for _, link := range links {
		st, err := s.linkStats(ctx, link, now)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to get click stats: %w", op, err)
		}
		stats = append(stats, st)
	}

	return stats, nil
}
