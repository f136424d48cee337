package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ivanmalyar/url-alias/internal/database"
	"github.com/ivanmalyar/url-alias/internal/models"
)

var (
	// ErrInvalidCredentials is returned when the presented username or
	// password does not match a stored account.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInactiveUser is returned when the account exists but has been
	// deactivated.
	ErrInactiveUser = errors.New("inactive user")
)

// UserRepository defines the credential store operations used by UserService.
type UserRepository interface {
	// Create inserts a new user. Returns database.ErrUserExists if the
	// username is taken.
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)

	// GetByUsername retrieves a user by username. Returns
	// database.ErrUserNotFound if absent.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// UserService handles registration and stateless credential checking.
// Every request re-authenticates; no sessions or tokens are issued.
type UserService struct {
	repo     UserRepository
	hashCost int
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo:     repo,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register hashes the password and creates the user record.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	const op = "service.UserService.Register"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := s.repo.Create(ctx, username, string(hash))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to register user: %w", op, err)
	}

	return user, nil
}

// Authenticate verifies the presented credentials against the stored hash.
// An unknown username and a wrong password both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	const op = "service.UserService.Authenticate"

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%s: %w", op, ErrInactiveUser)
	}

	return user, nil
}
