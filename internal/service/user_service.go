package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/billsyncorg/billsync/internal/auth"
	"github.com/billsyncorg/billsync/internal/metrics"
	"github.com/billsyncorg/billsync/internal/models"
	"github.com/billsyncorg/billsync/internal/storage"
)

// UserService handles signup, login, logout, and the user directory.
type UserService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewUserService creates a new user service.
func NewUserService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *UserService {
	return &UserService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

// SignupRequest carries a new account's identity and credential.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phoneNumber"`
	Password string `json:"password"`
}

// SignInRequest identifies an account by email or phone plus its password.
type SignInRequest struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phoneNumber,omitempty"`
	Password string `json:"password"`
}

// SignInResponse returns the session token and its owner.
type SignInResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Register creates a new user account.
func (s *UserService) Register(ctx context.Context, req SignupRequest) (*models.User, error) {
	if req.Email == "" || req.Phone == "" || req.Password == "" {
		return nil, &ValidationError{Reason: "email, phone number, and password are required"}
	}

	user, err := s.authenticator.Register(ctx, req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		slog.Warn("Registration failed", "email", req.Email, "error", err)
		return nil, err
	}

	metrics.UsersRegistered.Inc()
	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// SignIn authenticates by email or phone and returns a session token.
func (s *UserService) SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error) {
	if req.Password == "" || (req.Email == "" && req.Phone == "") {
		return nil, auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, req.Email, req.Phone, req.Password)
	if err != nil {
		slog.Warn("Login failed", "email", req.Email, "error", err)
		return nil, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("User logged in", "user_id", user.ID)
	return &SignInResponse{Token: token, UserID: user.ID}, nil
}

// Logout blacklists the session token so it can no longer authenticate.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrMissingToken
	}
	if err := s.store.BlacklistToken(ctx, token); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	slog.Info("User logged out")
	return nil
}

// ListUsers returns every registered user's id and name.
func (s *UserService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	return s.store.ListUsers(ctx)
}

// FindUser looks up a user by email or phone number.
func (s *UserService) FindUser(ctx context.Context, searchValue string) (*models.UserSummary, error) {
	if searchValue == "" {
		return nil, &ValidationError{Reason: "please provide a search value"}
	}

	var (
		user *models.User
		err  error
	)
	if strings.Contains(searchValue, "@") {
		user, err = s.store.GetUserByEmail(ctx, searchValue)
	} else {
		user, err = s.store.GetUserByPhone(ctx, searchValue)
	}
	if err != nil {
		return nil, err
	}

	return &models.UserSummary{ID: user.ID, Name: user.Name}, nil
}

// CheckAllUsersExist verifies that every given user ID is registered.
// Returns a ValidationError naming the first missing ID.
func (s *UserService) CheckAllUsersExist(ctx context.Context, userIDs []string) error {
	found, err := s.store.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("failed to look up users: %w", err)
	}
	for _, id := range userIDs {
		if _, ok := found[id]; !ok {
			return &ValidationError{Reason: "user not found: " + id}
		}
	}
	return nil
}
