package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/eventboard/backend/internal/models"
	"go.uber.org/zap"
)

// ErrUserNotFound is returned when a lookup matches no user row
var ErrUserNotFound = errors.New("user not found")

// UserUpdates holds the optional fields of a profile update.
// Empty fields are not written.
type UserUpdates struct {
	Username     string
	Email        string
	PasswordHash string
}

// userRepository implements user table data access
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user into the database. Uniqueness violations are
// returned as the raw driver error so the service layer can map the code.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password, role)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByCredentials retrieves a user by the exact (username, password digest)
// pair. No match yields ErrUserNotFound, never a hint about which field was
// wrong.
func (r *userRepository) GetByCredentials(ctx context.Context, username, passwordHash string) (*models.User, error) {
	query := `
		SELECT id, username, email, password, role, created_at
		FROM users
		WHERE BINARY username = ? AND password = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user by credentials", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get user by credentials: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	query := `
		SELECT id, username, email, password, role, created_at
		FROM users
		WHERE id = ?
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user by id", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// ExistsByEmail checks if a user exists with the given email (exact match)
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE BINARY email = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check email existence", zap.Error(err), zap.String("email", email))
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// ExistsByUsername checks if a user exists with the given username (exact match)
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE BINARY username = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, username).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check username existence", zap.Error(err), zap.String("username", username))
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// Update writes the provided fields of a user by id. Empty update fields
// are skipped; an update with nothing to write is a no-op.
func (r *userRepository) Update(ctx context.Context, userID int, updates UserUpdates) error {
	setClauses := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if updates.Username != "" {
		setClauses = append(setClauses, "username = ?")
		args = append(args, updates.Username)
	}
	if updates.Email != "" {
		setClauses = append(setClauses, "email = ?")
		args = append(args, updates.Email)
	}
	if updates.PasswordHash != "" {
		setClauses = append(setClauses, "password = ?")
		args = append(args, updates.PasswordHash)
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = ?", strings.Join(setClauses, ", "))
	args = append(args, userID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to update user", zap.Error(err), zap.Int("user_id", userID))
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("failed to get affected rows", zap.Error(err))
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		// Either the user does not exist or nothing changed; verify
		if _, err := r.GetByID(ctx, userID); err != nil {
			return err
		}
	}

	return nil
}
