package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/courseloop/learning-service/internal/config"
	"github.com/courseloop/learning-service/internal/validator"
)

func newAuthTestService(repo *fakeRepo, cfg config.AuthConfig) AuthService {
	return NewAuthService(repo, testLogger(), validator.New(), cfg)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newAuthTestService(repo, testAuthConfig())

		user, err := svc.Register(ctx, &SignupRequest{
			Email:       "alice@example.com",
			Password:    "s3cret-pass",
			DisplayName: "Alice",
		})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.ID == 0 {
			t.Error("expected user ID to be assigned")
		}
		if user.PasswordHash == "s3cret-pass" {
			t.Error("password stored in plaintext")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")); err != nil {
			t.Errorf("stored hash does not match password: %v", err)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newAuthTestService(repo, testAuthConfig())

		req := &SignupRequest{Email: "bob@example.com", Password: "password1", DisplayName: "Bob"}
		if _, err := svc.Register(ctx, req); err != nil {
			t.Fatalf("first Register failed: %v", err)
		}

		_, err := svc.Register(ctx, req)
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newAuthTestService(repo, testAuthConfig())

		cases := []*SignupRequest{
			{Email: "not-an-email", Password: "password1", DisplayName: "X"},
			{Email: "x@example.com", Password: "short", DisplayName: "X"},
			{Email: "x@example.com", Password: "password1", DisplayName: ""},
		}
		for _, req := range cases {
			if _, err := svc.Register(ctx, req); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Register(%+v): expected ErrInvalidInput, got %v", req, err)
			}
		}
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newAuthTestService(repo, testAuthConfig())

	if _, err := svc.Register(ctx, &SignupRequest{
		Email:       "carol@example.com",
		Password:    "correct-horse",
		DisplayName: "Carol",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("valid credentials issue a verifiable token", func(t *testing.T) {
		resp, err := svc.Authenticate(ctx, &LoginRequest{Email: "carol@example.com", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if resp.Token == "" {
			t.Fatal("expected non-empty token")
		}
		if resp.User.Email != "carol@example.com" {
			t.Errorf("unexpected user email %q", resp.User.Email)
		}

		userID, err := svc.Verify(resp.Token)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if userID != resp.User.ID {
			t.Errorf("Verify returned user %d, want %d", userID, resp.User.ID)
		}
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, wrongPass := svc.Authenticate(ctx, &LoginRequest{Email: "carol@example.com", Password: "wrong"})
		_, unknown := svc.Authenticate(ctx, &LoginRequest{Email: "nobody@example.com", Password: "whatever"})

		if !errors.Is(wrongPass, ErrInvalidCredentials) {
			t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
		}
		if !errors.Is(unknown, ErrInvalidCredentials) {
			t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
		}
		if wrongPass.Error() != unknown.Error() {
			t.Error("credential failures must not be distinguishable")
		}
	})
}

func TestAuthService_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects garbage tokens", func(t *testing.T) {
		svc := newAuthTestService(newFakeRepo(), testAuthConfig())
		for _, token := range []string{"", "garbage", "a.b.c"} {
			if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", token, err)
			}
		}
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		repo := newFakeRepo()
		expired := config.AuthConfig{JWTSecret: "test-secret", TokenTTL: -time.Minute}
		svc := newAuthTestService(repo, expired)

		if _, err := svc.Register(ctx, &SignupRequest{
			Email: "dave@example.com", Password: "password1", DisplayName: "Dave",
		}); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		resp, err := svc.Authenticate(ctx, &LoginRequest{Email: "dave@example.com", Password: "password1"})
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}

		if _, err := svc.Verify(resp.Token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
		}
	})

	t.Run("rejects tokens signed with a different secret", func(t *testing.T) {
		repo := newFakeRepo()
		issuer := newAuthTestService(repo, config.AuthConfig{JWTSecret: "issuer-secret", TokenTTL: time.Hour})
		verifier := newAuthTestService(repo, config.AuthConfig{JWTSecret: "other-secret", TokenTTL: time.Hour})

		if _, err := issuer.Register(ctx, &SignupRequest{
			Email: "erin@example.com", Password: "password1", DisplayName: "Erin",
		}); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		resp, err := issuer.Authenticate(ctx, &LoginRequest{Email: "erin@example.com", Password: "password1"})
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}

		if _, err := verifier.Verify(resp.Token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for foreign-signed token, got %v", err)
		}
	})
}
