package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/billsyncorg/billsync/internal/models"
	"github.com/billsyncorg/billsync/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid email/phone or password")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrEmailExists        = errors.New("email already in use")
	ErrPhoneExists        = errors.New("phone number already in use")
	ErrInvalidPhone       = errors.New("phone number must be 10 digits")
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 6 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new user account with a hashed password.
// Email and phone number must both be unused.
func (a *PasswordAuthenticator) Register(ctx context.Context, name, email, phone, credential string) (*models.User, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}
	if !phonePattern.MatchString(phone) {
		return nil, ErrInvalidPhone
	}

	if existing, err := a.storage.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailExists
	}
	if existing, err := a.storage.GetUserByPhone(ctx, phone); err == nil && existing != nil {
		return nil, ErrPhoneExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(name, email, phone, string(hashedPassword))

	if err := a.storage.CreateUser(ctx, user); err != nil {
		// The uniqueness checks above race with concurrent signups;
		// the unique index is the authority.
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the password against the account identified by email
// or phone number, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, phone, credential string) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	if email != "" {
		user, err = a.storage.GetUserByEmail(ctx, email)
	} else {
		user, err = a.storage.GetUserByPhone(ctx, phone)
	}
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
