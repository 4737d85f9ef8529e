package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/connectrandom/internal/domain"
	"github.com/msomdec/connectrandom/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

// registerUser runs the full signup flow so login tests exercise the real
// stored credential.
func registerUser(t *testing.T, signup *service.SignupService, mailer *fakeMailer, form service.SignupForm) *domain.User {
	t.Helper()
	ctx := context.Background()
	if err := signup.Begin(ctx, form); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	user, err := signup.Complete(ctx, form.Email, mailer.lastCode(t))
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	signup, mailer, db := newTestSignup(t)
	auth := service.NewAuthService(db.Users(), testJWTSecret)
	ctx := context.Background()

	registerUser(t, signup, mailer, validForm())

	token, err := auth.Login(ctx, "ann", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	user, err := auth.GetUserByID(ctx, userID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if user.Username != "ann" {
		t.Fatalf("expected username ann, got %s", user.Username)
	}
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	db := newTestDB(t)
	auth := service.NewAuthService(db.Users(), testJWTSecret)

	_, err := auth.Login(context.Background(), "nobody", "password123")
	if !errors.Is(err, domain.ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	signup, mailer, db := newTestSignup(t)
	auth := service.NewAuthService(db.Users(), testJWTSecret)

	registerUser(t, signup, mailer, validForm())

	_, err := auth.Login(context.Background(), "ann", "not-the-password")
	if !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	db := newTestDB(t)
	auth := service.NewAuthService(db.Users(), testJWTSecret)

	if _, err := auth.ValidateToken("not.a.token"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	signup, mailer, db := newTestSignup(t)
	auth := service.NewAuthService(db.Users(), testJWTSecret)
	other := service.NewAuthService(db.Users(), "a-completely-different-secret-key")

	registerUser(t, signup, mailer, validForm())

	token, err := auth.Login(context.Background(), "ann", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := other.ValidateToken(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for wrong secret, got %v", err)
	}
}
