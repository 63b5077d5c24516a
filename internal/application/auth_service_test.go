package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/internal/domain/repository"
	"github.com/eventtix/ticket-booking/pkg/helpers"
)

func newAuthFixture() (*memStore, *AuthService) {
	store := newMemStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := NewAuthService(&memUserRepo{store: store}, jwt, testLogger())
	return store, svc
}

func TestRegisterDefaultsToUserRole(t *testing.T) {
	_, svc := newAuthFixture()

	u, err := svc.Register(context.Background(), "alice", "s3cretpass", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected user to be assigned an id")
	}
	if u.Role != entity.RoleUser {
		t.Errorf("role = %q, want %q", u.Role, entity.RoleUser)
	}
	if !u.Enabled {
		t.Error("expected account to be enabled")
	}
	if u.Password == "s3cretpass" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	_, svc := newAuthFixture()

	if _, err := svc.Register(context.Background(), "alice", "s3cretpass", ""); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(context.Background(), "alice", "otherpass1", "")
	if !errors.Is(err, repository.ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	_, svc := newAuthFixture()

	if _, err := svc.Register(context.Background(), "admin", "s3cretpass", entity.RoleAdmin); err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, token, exp, err := svc.Login(context.Background(), "admin", "s3cretpass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
	if !exp.After(time.Now()) {
		t.Errorf("expiry %v is not in the future", exp)
	}

	claims, err := svc.JWT.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if id != u.ID {
		t.Errorf("token user id = %d, want %d", id, u.ID)
	}
	if claims.Username != "admin" || claims.Role != entity.RoleAdmin {
		t.Errorf("claims = %q/%q, want admin/%q", claims.Username, claims.Role, entity.RoleAdmin)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	_, svc := newAuthFixture()

	if _, err := svc.Register(context.Background(), "alice", "s3cretpass", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, _, _, err := svc.Login(context.Background(), "alice", "wrongpass1")
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("err = %v, want ErrWrongPassword", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	_, svc := newAuthFixture()
	_, _, _, err := svc.Login(context.Background(), "ghost", "whatever1")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	store, svc := newAuthFixture()

	u, err := svc.Register(context.Background(), "alice", "s3cretpass", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	store.mu.Lock()
	store.users[u.ID].Enabled = false
	store.mu.Unlock()

	_, _, _, err = svc.Login(context.Background(), "alice", "s3cretpass")
	if !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("err = %v, want ErrAccountDisabled", err)
	}
}
