// Package http exposes the service over a JSON REST API plus the public
// redirect endpoint.
package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"

	"github.com/ivanmalyar/url-alias/internal/models"
	"github.com/ivanmalyar/url-alias/internal/service"
)

// UserService defines the account operations used by the API layer.
type UserService interface {
	// Register creates a new account with a hashed password.
	// It returns database.ErrUserExists if the username is taken.
	Register(ctx context.Context, username, password string) (*models.User, error)

	// Authenticate verifies a username and password pair. It returns
	// service.ErrInvalidCredentials on mismatch and service.ErrInactiveUser
	// for deactivated accounts.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// LinkService defines the link lifecycle operations used by the API layer.
type LinkService interface {
	// Shorten allocates a short code for the destination URL.
	Shorten(ctx context.Context, originalURL string, ttlDays *int, createdBy string) (*models.Link, error)

	// Get fetches one of the caller's links. It returns service.ErrNotOwner
	// when the link belongs to someone else.
	Get(ctx context.Context, shortCode, username string) (*models.Link, error)

	// Update applies a partial update to one of the caller's links.
	Update(ctx context.Context, shortCode, username string, upd service.LinkUpdate) (*models.Link, error)

	// Delete permanently removes one of the caller's links.
	Delete(ctx context.Context, shortCode, username string) error

	// List returns one page of the caller's links plus the total count.
	List(ctx context.Context, username string, page, pageSize int, active *bool) ([]*models.Link, int64, error)

	// Resolve looks up an active, unexpired link and records the click.
	Resolve(ctx context.Context, shortCode string, ipAddress, userAgent *string) (*models.Link, error)
}

// StatsService defines the click statistics reads used by the API layer.
type StatsService interface {
	Stats(ctx context.Context, shortCode string) (*models.LinkStats, error)
	StatsAll(ctx context.Context) ([]*models.LinkStats, error)
}

// getValidate initializes a validator that reports field names from JSON tags.
func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// NewRouter initializes the HTTP router with all routes and middleware
// configured. Link management lives behind basic auth; registration, stats
// and the redirect are public.
func NewRouter(logger *httplog.Logger, userSvc UserService, linkSvc LinkService, statsSvc StatsService) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", handleServiceInfo)
	r.Get("/health", handleHealth)
	r.Get("/{shortCode}", handleRedirect(linkSvc))

	r.Route("/api", func(r chi.Router) {
		validate := getValidate()

		r.Post("/users/", handleRegisterUser(userSvc, validate))

		r.Route("/links", func(r chi.Router) {
			r.Use(basicAuth(userSvc))

			r.Post("/", handleCreateLink(linkSvc, validate))
			r.Get("/", handleListLinks(linkSvc))

			r.Route("/{shortCode}", func(r chi.Router) {
				r.Get("/", handleGetLink(linkSvc))
				r.Put("/", handleUpdateLink(linkSvc, validate))
				r.Delete("/", handleDeleteLink(linkSvc))
			})
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", handleAllStats(statsSvc))
			r.Get("/{shortCode}", handleLinkStats(statsSvc))
		})
	})

	return r
}
