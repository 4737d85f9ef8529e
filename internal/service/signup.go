package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/msomdec/connectrandom/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// EmailSender delivers a plain-text email. Implementations report transport
// and auth failures as errors; they never panic into the workflow.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SignupForm carries the raw fields submitted on the signup form. Age is
// kept as submitted so validation owns the parse.
type SignupForm struct {
	Username string
	FullName string
	Password string
	Age      string
	Gender   string
	City     string
	Email    string
}

// SignupService orchestrates OTP issuance, delivery, and promotion of a
// verified signup into a durable account.
type SignupService struct {
	ledger     *OtpLedger
	users      domain.UserRepository
	mailer     EmailSender
	limiter    *TokenBucket // optional resend throttle, keyed by email
	bcryptCost int
}

// NewSignupService creates a new SignupService. limiter may be nil to
// disable OTP resend throttling.
func NewSignupService(ledger *OtpLedger, users domain.UserRepository, mailer EmailSender, limiter *TokenBucket, bcryptCost int) *SignupService {
	return &SignupService{
		ledger:     ledger,
		users:      users,
		mailer:     mailer,
		limiter:    limiter,
		bcryptCost: bcryptCost,
	}
}

// Begin validates the form, issues a one-time passcode for the email, and
// delivers it. On success the caller advances the client to the
// verification step carrying the email.
func (s *SignupService) Begin(ctx context.Context, form SignupForm) error {
	if form.Username == "" || form.FullName == "" || form.Password == "" || form.Email == "" {
		return fmt.Errorf("%w: username, full name, password, and email are required", domain.ErrMissingField)
	}

	age, err := strconv.Atoi(form.Age)
	if err != nil {
		return fmt.Errorf("%w: age must be a number", domain.ErrInvalidAge)
	}
	if age < domain.MinimumAge {
		return fmt.Errorf("%w: age must be %d or older", domain.ErrInvalidAge, domain.MinimumAge)
	}

	if s.limiter != nil && !s.limiter.Allow(form.Email) {
		return domain.ErrTooManyRequests
	}

	// Hash before anything is stored so the pending ledger never holds
	// the plaintext password.
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	code, err := s.ledger.Issue(form.Email, domain.PendingSignup{
		Username:     form.Username,
		FullName:     form.FullName,
		PasswordHash: string(hash),
		Age:          age,
		Gender:       form.Gender,
		City:         form.City,
	})
	if err != nil {
		return fmt.Errorf("issue otp: %w", err)
	}

	subject := fmt.Sprintf("Your ConnectRandom OTP: %s", code)
	body := fmt.Sprintf("Your ConnectRandom OTP is: %s\nThis code will expire in %d minutes.",
		code, int(s.ledger.TTL().Minutes()))
	if err := s.mailer.Send(ctx, form.Email, subject, body); err != nil {
		// The issued entry is left in place: the code the user never
		// received stays valid until it expires or a resend overwrites it.
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}

	return nil
}

// Complete verifies the submitted code and, on success, creates the
// account. Duplicate username/email checks run only after the code is
// verified; checking earlier would reveal whether an address is registered
// before the submitter has proven control of it.
func (s *SignupService) Complete(ctx context.Context, email, code string) (*domain.User, error) {
	pending, err := s.ledger.Verify(email, code)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, pending.Username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	user, err := domain.NewUser(pending.Username, pending.FullName, pending.PasswordHash,
		pending.Gender, pending.City, email, pending.Age)
	if err != nil {
		return nil, fmt.Errorf("build user: %w", err)
	}

	// The UNIQUE constraints backstop the window between the checks above
	// and this insert; a losing racer gets the same duplicate errors.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}
