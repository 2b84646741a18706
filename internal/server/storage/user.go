package storage

import (
	"context"
	"time"

	"github.com/iudanet/marketdash/internal/models"
)

// ListUsersOptions задает выборку пользователей
type ListUsersOptions struct {
	Role   *models.Role
	Search string // подстрока email или username
	Offset int
	Limit  int
}

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if email or username is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByLogin retrieves user by email or username (case-insensitive)
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByLogin(ctx context.Context, emailOrUsername string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// ListUsers returns a page of users and the total number matching opts
	ListUsers(ctx context.Context, opts ListUsersOptions) ([]*models.User, int, error)

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error
}
