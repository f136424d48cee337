package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/ivanmalyar/url-alias/internal/database"
	"github.com/ivanmalyar/url-alias/internal/models"
)

// shortCodeAlphabet is the 62-symbol alphanumeric alphabet short codes are
// drawn from, uniformly at random per character.
const shortCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	maxCreateRetries = 5
	defaultPage      = 1
	defaultPageSize  = 10
	maxPageSize      = 100
)

var (
	// ErrMaxRetriesExceeded is returned when short code generation keeps
	// colliding with existing codes.
	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")
	// ErrInvalidURL is returned when the destination URL fails validation.
	ErrInvalidURL = errors.New("invalid original url")
	// ErrNotOwner is returned when an authenticated user operates on a link
	// owned by someone else.
	ErrNotOwner = errors.New("not the link owner")
)

// LinkRepository defines the link store operations used by LinkService.
type LinkRepository interface {
	// Create inserts a new link. Returns database.ErrShortCodeExists when
	// the short code collides; the unique constraint in the store is the
	// correctness guarantee, the caller only retries on it.
	Create(ctx context.Context, shortCode, originalURL string, expiresAt time.Time, createdBy string) (*models.Link, error)

	// GetByShortCode retrieves a link regardless of accessibility.
	GetByShortCode(ctx context.Context, shortCode string) (*models.Link, error)

	// GetAccessible retrieves a link only if it is active and unexpired.
	GetAccessible(ctx context.Context, shortCode string, now time.Time) (*models.Link, error)

	// Update applies a partial update; nil fields are left unchanged.
	Update(ctx context.Context, shortCode string, isActive *bool, expiresAt *time.Time) (*models.Link, error)

	// Delete removes a link. Returns database.ErrLinkNotFound if absent.
	Delete(ctx context.Context, shortCode string) error

	// List returns one page of a user's links plus the total matching count.
	List(ctx context.Context, createdBy string, page, pageSize int, active *bool) ([]*models.Link, int64, error)

	// RegisterClick atomically increments the click counter and appends a
	// click record.
	RegisterClick(ctx context.Context, linkID int64, clickedAt time.Time, ipAddress, userAgent *string) error
}

// LinkUpdate describes a partial link update. Only non-nil fields are applied.
type LinkUpdate struct {
	IsActive *bool
	TTLDays  *int
}

// LinkService implements short code allocation, redirect resolution and
// owner-facing link lifecycle management.
type LinkService struct {
	repo           LinkRepository
	logger         *slog.Logger
	codeLength     int
	defaultTTLDays int
	now            func() time.Time
}

func NewLinkService(repo LinkRepository, logger *slog.Logger, codeLength, defaultTTLDays int) *LinkService {
	return &LinkService{
		repo:           repo,
		logger:         logger,
		codeLength:     codeLength,
		defaultTTLDays: defaultTTLDays,
		now:            time.Now,
	}
}

// validateOriginalURL enforces the strict policy: the destination must carry
// an explicit http or https scheme and a dotted host. Malformed input is an
// error, never coerced into something URL-shaped.
func validateOriginalURL(raw string) error {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || !strings.Contains(u.Host, ".") {
		return ErrInvalidURL
	}

	return nil
}

// Shorten validates the destination, allocates a unique short code and
// persists the link. ttlDays falls back to the configured default when nil.
func (s *LinkService) Shorten(ctx context.Context, originalURL string, ttlDays *int, createdBy string) (*models.Link, error) {
	const op = "service.LinkService.Shorten"

	if err := validateOriginalURL(originalURL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	days := s.defaultTTLDays
	if ttlDays != nil {
		days = *ttlDays
	}
	expiresAt := s.now().Add(time.Duration(days) * 24 * time.Hour)

	for i := 0; i < maxCreateRetries; i++ {
		shortCode, err := gonanoid.Generate(shortCodeAlphabet, s.codeLength)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		link, err := s.repo.Create(ctx, shortCode, originalURL, expiresAt, createdBy)
		if err != nil {
			if errors.Is(err, database.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to create link: %w", op, err)
		}

		return link, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

// Get retrieves one link for its owner. Absence is reported before ownership,
// so a missing link never reveals whether it ever existed.
func (s *LinkService) Get(ctx context.Context, shortCode, username string) (*models.Link, error) {
	const op = "service.LinkService.Get"

	link, err := s.repo.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get link: %w", op, err)
	}

	if link.CreatedBy == nil || *link.CreatedBy != username {
		return nil, fmt.Errorf("%s: %w", op, ErrNotOwner)
	}

	return link, nil
}

// Update applies a partial update to an owned link. A new TTL re-anchors the
// expiration at the time of the update, replacing the previous expiration.
func (s *LinkService) Update(ctx context.Context, shortCode, username string, upd LinkUpdate) (*models.Link, error) {
	const op = "service.LinkService.Update"

	if _, err := s.Get(ctx, shortCode, username); err != nil {
		return nil, err
	}

	var expiresAt *time.Time
	if upd.TTLDays != nil {
		t := s.now().Add(time.Duration(*upd.TTLDays) * 24 * time.Hour)
		expiresAt = &t
	}

	link, err := s.repo.Update(ctx, shortCode, upd.IsActive, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update link: %w", op, err)
	}

	return link, nil
}

// Delete removes an owned link permanently.
func (s *LinkService) Delete(ctx context.Context, shortCode, username string) error {
	const op = "service.LinkService.Delete"

	if _, err := s.Get(ctx, shortCode, username); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shortCode); err != nil {
		return fmt.Errorf("%s: failed to delete link: %w", op, err)
	}

	return nil
}

// List returns one page of the user's links. Page and page size are clamped
// to sane bounds; page is 1-indexed.
func (s *LinkService) List(ctx context.Context, username string, page, pageSize int, active *bool) ([]*models.Link, int64, error) {
	const op = "service.LinkService.List"

	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	links, total, err := s.repo.List(ctx, username, page, pageSize, active)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to list links: %w", op, err)
	}

	return links, total, nil
}

// Resolve looks up an accessible link and records the click. Click recording
// is best-effort: a storage failure there is logged and the redirect still
// succeeds, since availability of the redirect outranks analytics.
func (s *LinkService) Resolve(ctx context.Context, shortCode string, ipAddress, userAgent *string) (*models.Link, error) {
	const op = "service.LinkService.Resolve"

	link, err := s.repo.GetAccessible(ctx, shortCode, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	if err := s.repo.RegisterClick(ctx, link.ID, s.now(), ipAddress, userAgent); err != nil {
		s.logger.Warn("failed to record click",
			slog.String("op", op),
			slog.String("short_code", shortCode),
			slog.Any("err", err),
		)
	} else {
		link.ClickCount++
	}

	return link, nil
}
