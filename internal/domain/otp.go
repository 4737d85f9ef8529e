package domain

// PendingSignup holds the submitted account details while the applicant
// proves control of the email address. It never leaves process memory;
// a restart discards any in-flight signups.
type PendingSignup struct {
	Username     string
	FullName     string
	PasswordHash string
	Age          int
	Gender       string
	City         string
}
