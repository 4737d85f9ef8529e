package handler_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msomdec/connectrandom/internal/repository/sqlite"
	"github.com/msomdec/connectrandom/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests"

// fakeMailer records every send and can be told to fail.
type fakeMailer struct {
	sends []fakeSend
	fail  bool
}

type fakeSend struct {
	to      string
	subject string
	body    string
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	m.sends = append(m.sends, fakeSend{to: to, subject: subject, body: body})
	if m.fail {
		return errors.New("smtp: connection refused")
	}
	return nil
}

func (m *fakeMailer) lastCode(t *testing.T) string {
	t.Helper()
	if len(m.sends) == 0 {
		t.Fatal("no mail was sent")
	}
	subject := m.sends[len(m.sends)-1].subject
	idx := strings.LastIndex(subject, ": ")
	if idx < 0 {
		t.Fatalf("unexpected subject %q", subject)
	}
	return subject[idx+2:]
}

type testServices struct {
	auth      *service.AuthService
	signup    *service.SignupService
	messaging *service.MessagingService
	directory *service.DirectoryService
	mailer    *fakeMailer
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mailer := &fakeMailer{}
	ledger := service.NewOtpLedger(service.DefaultOtpTTL)

	return testServices{
		auth: service.NewAuthService(db.Users(), testJWTSecret),
		// Use bcrypt cost 4 for fast tests; no resend throttle.
		signup:    service.NewSignupService(ledger, db.Users(), mailer, nil, 4),
		messaging: service.NewMessagingService(db.Messages()),
		directory: service.NewDirectoryService(db.Users()),
		mailer:    mailer,
	}
}

// registerUser runs the signup flow directly through the services.
func registerUser(t *testing.T, s testServices, username, email, city string) {
	t.Helper()
	ctx := context.Background()
	err := s.signup.Begin(ctx, service.SignupForm{
		Username: username,
		FullName: "Test User",
		Password: "password123",
		Age:      "25",
		Gender:   "other",
		City:     city,
		Email:    email,
	})
	if err != nil {
		t.Fatalf("Begin signup for %s: %v", username, err)
	}
	if _, err := s.signup.Complete(ctx, email, s.mailer.lastCode(t)); err != nil {
		t.Fatalf("Complete signup for %s: %v", username, err)
	}
}
