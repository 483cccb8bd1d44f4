package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billsyncorg/billsync/internal/models"
	"github.com/billsyncorg/billsync/internal/storage"
)

// memoryUserStorage is an in-memory UserStorage for authenticator tests.
type memoryUserStorage struct {
	byEmail map[string]*models.User
	byPhone map[string]*models.User
}

func newMemoryUserStorage() *memoryUserStorage {
	return &memoryUserStorage{
		byEmail: make(map[string]*models.User),
		byPhone: make(map[string]*models.User),
	}
}

func (m *memoryUserStorage) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return storage.ErrConflict
	}
	if _, ok := m.byPhone[user.Phone]; ok {
		return storage.ErrConflict
	}
	m.byEmail[user.Email] = user
	m.byPhone[user.Phone] = user
	return nil
}

func (m *memoryUserStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := m.byEmail[email]; ok {
		return user, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memoryUserStorage) GetUserByPhone(_ context.Context, phone string) (*models.User, error) {
	if user, ok := m.byPhone[phone]; ok {
		return user, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memoryUserStorage) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	authenticator := NewPasswordAuthenticator(newMemoryUserStorage())

	user, err := authenticator.Register(ctx, "Alice", "alice@example.com", "5551234567", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "secret1", user.PasswordHash, "password must be stored hashed")

	tests := []struct {
		name    string
		email   string
		phone   string
		pass    string
		wantErr error
	}{
		{"weak password", "bob@example.com", "5550000001", "short", ErrWeakPassword},
		{"malformed phone", "bob@example.com", "555-123", "secret1", ErrInvalidPhone},
		{"duplicate email", "alice@example.com", "5550000002", "secret1", ErrEmailExists},
		{"duplicate phone", "bob@example.com", "5551234567", "secret1", ErrPhoneExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authenticator.Register(ctx, "Bob", tt.email, tt.phone, tt.pass)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	authenticator := NewPasswordAuthenticator(newMemoryUserStorage())

	registered, err := authenticator.Register(ctx, "Alice", "alice@example.com", "5551234567", "secret1")
	require.NoError(t, err)

	t.Run("by email", func(t *testing.T) {
		user, err := authenticator.Authenticate(ctx, "alice@example.com", "", "secret1")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("by phone", func(t *testing.T) {
		user, err := authenticator.Authenticate(ctx, "", "5551234567", "secret1")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := authenticator.Authenticate(ctx, "alice@example.com", "", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := authenticator.Authenticate(ctx, "nobody@example.com", "", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "u1", Email: "alice@example.com"}

	token, err := manager.Generate(user)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		claims, err := manager.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, "u1", claims.Subject)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTManager("other-secret", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := NewJWTManager("test-secret", -time.Minute).Generate(user)
		require.NoError(t, err)
		_, err = manager.Validate(expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := manager.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
