package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventboard/backend/internal/auth"
	"github.com/eventboard/backend/internal/models"
	"github.com/eventboard/backend/internal/repositories"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQL error codes mapped to user-facing auth errors
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrDBAccessDenied  = 1044
	mysqlErrTableAccessDeny = 1142
)

// UserRepository is the interface that wraps methods for user table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is set on success.
	//
	// Uniqueness violations surface as the raw driver error for code mapping.
	Create(ctx context.Context, user *models.User) error
	// Method GetByCredentials retrieves a user by the exact username and password digest pair.
	//
	// If no user matches, repositories.ErrUserNotFound is returned together with "nil" value.
	GetByCredentials(ctx context.Context, username, passwordHash string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists (exact, case-sensitive match).
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method ExistsByUsername checks if a user with such username exists (exact, case-sensitive match).
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Method Update writes the non-empty fields of "updates" for the user.
	//
	// If some error occurs during user update, the error will be returned.
	Update(ctx context.Context, userID int, updates repositories.UserUpdates) error
}

// SessionStore is the interface that wraps the session cache methods used by the auth service
type SessionStore interface {
	// Create stores the user record under a fresh session id and returns the id.
	Create(ctx context.Context, user *models.User) (string, error)
	// Refresh overwrites the cached user record of an existing session.
	Refresh(ctx context.Context, sessionID string, user *models.User) error
	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error
}

// authService implements signup, login, logout and profile updates
type authService struct {
	users          UserRepository
	sessions       SessionStore
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users UserRepository, sessions SessionStore, tokenGenerator *auth.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		users:          users,
		sessions:       sessions,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// Signup creates a new user account with role=pending. The existence
// pre-checks are advisory; the unique constraints on the users table are
// the final authority and surface as ErrDuplicateUser.
func (s *authService) Signup(ctx context.Context, email, password, username string) (*models.User, error) {
	if email == "" || password == "" || username == "" {
		return nil, ErrMissingFields
	}

	usernameExists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if usernameExists {
		return nil, ErrUsernameTaken
	}

	emailExists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailExists {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: auth.HashPassword(password),
		Role:         models.RolePending,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if mapped := mapStoreError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	s.logger.Info("user registered", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login authenticates a user and opens a session. The credential error is
// identical for an unknown username and a wrong password. Pending users are
// rejected even with correct credentials.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.GetByCredentials(ctx, username, auth.HashPassword(password))
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if user.Role == models.RolePending {
		return nil, "", ErrPendingApproval
	}

	sessionID, err := s.sessions.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokenGenerator.GenerateSessionToken(sessionID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout deletes the session; the user must log in again afterwards
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// UpdateProfile updates the user's profile fields and refreshes the cached
// session record. A new password is digested before the write.
func (s *authService) UpdateProfile(ctx context.Context, userID int, sessionID string, req *models.UpdateProfileRequest) (*models.User, error) {
	updates := repositories.UserUpdates{
		Username: req.Username,
		Email:    req.Email,
	}
	if req.Password != "" {
		updates.PasswordHash = auth.HashPassword(req.Password)
	}

	if err := s.users.Update(ctx, userID, updates); err != nil {
		if mapped := mapStoreError(err); mapped != nil {
			return nil, mapped
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Session refresh keeps the role-gated UI in sync; a stale cache only
	// lasts until the next login, so failure is not fatal
	if err := s.sessions.Refresh(ctx, sessionID, user); err != nil {
		s.logger.Warn("failed to refresh session after profile update",
			zap.Int("user_id", userID), zap.Error(err))
	}

	return user, nil
}

// GetUser retrieves a user's profile by id
func (s *authService) GetUser(ctx context.Context, userID int) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// mapStoreError translates known MySQL error codes into user-facing errors.
// Unknown errors yield nil so callers fall back to their own wrapping.
func mapStoreError(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDuplicateEntry:
			return ErrDuplicateUser
		case mysqlErrDBAccessDenied, mysqlErrTableAccessDeny:
			return ErrStorePermission
		}
	}
	return nil
}
