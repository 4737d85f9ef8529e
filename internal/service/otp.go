package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/msomdec/connectrandom/internal/domain"
)

// OtpLength is the number of digits in a one-time passcode.
const OtpLength = 6

// DefaultOtpTTL is how long an issued code stays valid.
const DefaultOtpTTL = 5 * time.Minute

// OtpLedger holds at most one pending signup per email address and
// adjudicates verification attempts against it. It is safe for concurrent
// use. Entries are not durable: a restart discards all pending signups.
type OtpLedger struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]otpEntry
}

type otpEntry struct {
	code    string
	expiry  time.Time
	purpose string
	pending domain.PendingSignup
}

// NewOtpLedger creates a ledger whose codes expire after ttl.
func NewOtpLedger(ttl time.Duration) *OtpLedger {
	return &OtpLedger{
		ttl:     ttl,
		entries: make(map[string]otpEntry),
	}
}

// TTL reports how long issued codes stay valid.
func (l *OtpLedger) TTL() time.Duration {
	return l.ttl
}

// Issue generates a fresh code for the email, stores the pending signup
// under it, and returns the code for delivery. Re-issuing for the same
// email overwrites the previous entry, silently invalidating its code.
func (l *OtpLedger) Issue(email string, pending domain.PendingSignup) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[email] = otpEntry{
		code:    code,
		expiry:  time.Now().Add(l.ttl),
		purpose: "signup",
		pending: pending,
	}
	return code, nil
}

// Verify checks a submitted code against the entry for the email.
// Expired entries and successfully verified entries are evicted; a
// mismatched code leaves the entry in place so the submitter can retry
// until it expires. On success the stored signup payload is returned and
// it is the caller's job to persist the account.
func (l *OtpLedger) Verify(email, submitted string) (domain.PendingSignup, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[email]
	if !ok {
		return domain.PendingSignup{}, domain.ErrOtpNotFound
	}
	if time.Now().After(entry.expiry) {
		delete(l.entries, email)
		return domain.PendingSignup{}, domain.ErrOtpExpired
	}
	if submitted != entry.code {
		return domain.PendingSignup{}, domain.ErrOtpMismatch
	}

	delete(l.entries, email)
	return entry.pending, nil
}

// generateCode draws each digit independently and uniformly from a
// cryptographically secure source.
func generateCode() (string, error) {
	digits := make([]byte, OtpLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = '0' + byte(n.Int64())
	}
	return string(digits), nil
}
