package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"tabsplit/internal/models"
)

// memoryUsers is an in-memory UserStorage for tests.
type memoryUsers struct {
	byEmail map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: make(map[string]*models.User)}
}

func (m *memoryUsers) CreateUser(_ context.Context, user *models.User) error {
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.byEmail[email], nil
}

func (m *memoryUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	authenticator := NewPasswordAuthenticator(newMemoryUsers())

	t.Run("register and authenticate", func(t *testing.T) {
		user, err := authenticator.Register(ctx, "Alice@Example.com ", "Alice", "correcthorse")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.Email != "alice@example.com" {
			t.Errorf("email = %s, want normalized alice@example.com", user.Email)
		}

		got, err := authenticator.Authenticate(ctx, "alice@example.com", "correcthorse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("authenticated user %s, want %s", got.ID, user.ID)
		}

		if _, err := authenticator.Authenticate(ctx, "alice@example.com", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("weak password rejected", func(t *testing.T) {
		if _, err := authenticator.Register(ctx, "bob@example.com", "Bob", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Register error = %v, want ErrWeakPassword", err)
		}
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		if _, err := authenticator.Register(ctx, "not-an-email", "X", "longenough"); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("Register error = %v, want ErrInvalidEmail", err)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		if _, err := authenticator.Register(ctx, "alice@example.com", "Alice II", "anotherpass"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("Register error = %v, want ErrEmailExists", err)
		}
	})

	t.Run("empty display name defaults to mailbox", func(t *testing.T) {
		user, err := authenticator.Register(ctx, "carol@example.com", "", "longenough")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.DisplayName != "carol" {
			t.Errorf("display name = %s, want carol", user.DisplayName)
		}
	})
}

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)
	user := models.NewUser("dave@example.com", "Dave", "hash")

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Errorf("claims = %+v, want user %s", claims, user.ID)
	}

	if _, err := manager.Validate(token + "tampered"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token error = %v, want ErrInvalidToken", err)
	}

	other := NewJWTManager("a-different-secret-entirely!!!!!", time.Hour)
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong key error = %v, want ErrInvalidToken", err)
	}
}
