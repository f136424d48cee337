package http

import (
	"time"

	"github.com/ivanmalyar/url-alias/internal/models"
)

// userRequest represents the request payload for registering a user.
type userRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// userResponse represents the response payload for a user account.
type userResponse struct {
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		Username: user.Username,
		IsActive: user.IsActive,
	}
}

// linkCreateRequest represents the request payload for shortening a URL.
// Destination format is checked by the service, not by validator tags, so
// that the strict scheme and host policy lives in one place.
type linkCreateRequest struct {
	OriginalURL   string `json:"original_url" validate:"required,max=2000"`
	ExpiresInDays *int   `json:"expires_in_days" validate:"omitempty,min=1,max=365"`
}

// linkUpdateRequest represents the request payload for a partial link update.
// Absent fields are left unchanged; a new TTL restarts the expiration clock
// from the moment of the update.
type linkUpdateRequest struct {
	IsActive      *bool `json:"is_active"`
	ExpiresInDays *int  `json:"expires_in_days" validate:"omitempty,min=1,max=365"`
}

// linkResponse represents the response payload for a link operation.
type linkResponse struct {
	ShortURL    string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	ClickCount  int64     `json:"click_count"`
	CreatedBy   *string   `json:"created_by"`
}

func toLinkResponse(link *models.Link) linkResponse {
	return linkResponse{
		ShortURL:    link.ShortCode,
		OriginalURL: link.OriginalURL,
		IsActive:    link.IsActive,
		CreatedAt:   link.CreatedAt,
		ExpiresAt:   link.ExpiresAt,
		ClickCount:  link.ClickCount,
		CreatedBy:   link.CreatedBy,
	}
}

// linkPageResponse represents one page of a user's links.
type linkPageResponse struct {
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Items    []linkResponse `json:"items"`
}

func toLinkPageResponse(links []*models.Link, total int64, page, pageSize int) linkPageResponse {
	items := make([]linkResponse, 0, len(links))
	for _, link := range links {
		items = append(items, toLinkResponse(link))
	}

	return linkPageResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	}
}

// statsResponse represents the response payload for link statistics.
type statsResponse struct {
	ShortURL        string     `json:"short_url"`
	OriginalURL     string     `json:"original_url"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	ClickCount      int64      `json:"click_count"`
	LastClicked     *time.Time `json:"last_clicked"`
	LastHourClicks  int64      `json:"last_hour_clicks"`
	LastDayClicks   int64      `json:"last_day_clicks"`
	LastWeekClicks  int64      `json:"last_week_clicks"`
	LastMonthClicks int64      `json:"last_month_clicks"`
}

func toStatsResponse(stats *models.LinkStats) statsResponse {
	return statsResponse{
		ShortURL:        stats.ShortCode,
		OriginalURL:     stats.OriginalURL,
		IsActive:        stats.IsActive,
		CreatedAt:       stats.CreatedAt,
		ClickCount:      stats.ClickCount,
		LastClicked:     stats.LastClicked,
		LastHourClicks:  stats.LastHour,
		LastDayClicks:   stats.LastDay,
		LastWeekClicks:  stats.LastWeek,
		LastMonthClicks: stats.LastMonth,
	}
}

func toStatsResponses(stats []*models.LinkStats) []statsResponse {
	resp := make([]statsResponse, 0, len(stats))
	for _, st := range stats {
		resp = append(resp, toStatsResponse(st))
	}
	return resp
}
