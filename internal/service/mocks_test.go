package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ivanmalyar/url-alias/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (r *MockUserRepository) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	args := r.Called(ctx, username, passwordHash)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (r *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := r.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type MockLinkRepository struct {
	mock.Mock
}

func (r *MockLinkRepository) Create(ctx context.Context, shortCode, originalURL string, expiresAt time.Time, createdBy string) (*models.Link, error) {
	args := r.Called(ctx, shortCode, originalURL, expiresAt, createdBy)
	link, _ := args.Get(0).(*models.Link)
	return link, args.Error(1)
}

func (r *MockLinkRepository) GetByShortCode(ctx context.Context, shortCode string) (*models.Link, error) {
	args := r.Called(ctx, shortCode)
	link, _ := args.Get(0).(*models.Link)
	return link, args.Error(1)
}

func (r *MockLinkRepository) GetAccessible(ctx context.Context, shortCode string, now time.Time) (*models.Link, error) {
	args := r.Called(ctx, shortCode, now)
	link, _ := args.Get(0).(*models.Link)
	return link, args.Error(1)
}

func (r *MockLinkRepository) Update(ctx context.Context, shortCode string, isActive *bool, expiresAt *time.Time) (*models.Link, error) {
	args := r.Called(ctx, shortCode, isActive, expiresAt)
	link, _ := args.Get(0).(*models.Link)
	return link, args.Error(1)
}

func (r *MockLinkRepository) Delete(ctx context.Context, shortCode string) error {
	args := r.Called(ctx, shortCode)
	return args.Error(0)
}

func (r *MockLinkRepository) List(ctx context.Context, createdBy string, page, pageSize int, active *bool) ([]*models.Link, int64, error) {
	args := r.Called(ctx, createdBy, page, pageSize, active)
	links, _ := args.Get(0).([]*models.Link)
	total, _ := args.Get(1).(int64)
	return links, total, args.Error(2)
}

func (r *MockLinkRepository) RegisterClick(ctx context.Context, linkID int64, clickedAt time.Time, ipAddress, userAgent *string) error {
	args := r.Called(ctx, linkID, clickedAt, ipAddress, userAgent)
	return args.Error(0)
}

func (r *MockLinkRepository) ListByClicks(ctx context.Context) ([]*models.Link, error) {
	args := r.Called(ctx)
	links, _ := args.Get(0).([]*models.Link)
	return links, args.Error(1)
}

type MockClickRepository struct {
	mock.Mock
}

func (r *MockClickRepository) WindowStats(ctx context.Context, linkID int64, now time.Time) (models.ClickWindows, error) {
	args := r.Called(ctx, linkID, now)
	windows, _ := args.Get(0).(models.ClickWindows)
	return windows, args.Error(1)
}
