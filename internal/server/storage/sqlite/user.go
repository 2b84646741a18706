package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/marketdash/internal/models"
	"github.com/iudanet/marketdash/internal/server/storage"
)

const userColumns = `id, email, username, password_hash, role, first_name, last_name, avatar, bio,
	wallet_address, is_active, is_suspended, is_verified, two_factor_enabled,
	created_at, updated_at, last_login_at`

// rowScanner - общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var lastLogin any
	if user.LastLoginAt != nil {
		lastLogin = utc(*user.LastLoginAt)
	}

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		string(user.Role),
		user.FirstName,
		user.LastName,
		user.Avatar,
		user.Bio,
		user.WalletAddress,
		user.IsActive,
		user.IsSuspended,
		user.IsVerified,
		user.TwoFactorEnabled,
		utc(user.CreatedAt),
		utc(user.UpdatedAt),
		lastLogin,
	)

	if err != nil {
		// Проверяем на duplicate email/username
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByLogin retrieves user by email or username
func (s *Storage) GetUserByLogin(ctx context.Context, emailOrUsername string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? OR username = ? LIMIT 1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, emailOrUsername, emailOrUsername))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// ListUsers returns a page of users ordered by creation time
func (s *Storage) ListUsers(ctx context.Context, opts storage.ListUsersOptions) ([]*models.User, int, error) {
	var (
		where []string
		args  []any
	)
	if opts.Search != "" {
		where = append(where, "(email LIKE ? OR username LIKE ?)")
		pattern := "%" + opts.Search + "%"
		args = append(args, pattern, pattern)
	}
	if opts.Role != nil {
		where = append(where, "role = ?")
		args = append(args, string(*opts.Role))
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = -1 // без ограничения
	}
	query := `SELECT ` + userColumns + ` FROM users` + cond + ` ORDER BY created_at, id LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, append(args, limit, max(opts.Offset, 0))...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, total, nil
}

// UpdateLastLogin updates the last login timestamp
func (s *Storage) UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error {
	query := `UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, utc(lastLogin), utc(s.now()), userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var (
		role      string
		lastLogin sql.NullTime
	)

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&role,
		&user.FirstName,
		&user.LastName,
		&user.Avatar,
		&user.Bio,
		&user.WalletAddress,
		&user.IsActive,
		&user.IsSuspended,
		&user.IsVerified,
		&user.TwoFactorEnabled,
		&user.CreatedAt,
		&user.UpdatedAt,
		&lastLogin,
	)
	if err != nil {
		return nil, err
	}

	user.Role = models.Role(role)
	user.IsAdmin = user.Role == models.RoleAdmin
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLoginAt = &t
	}

	return user, nil
}
