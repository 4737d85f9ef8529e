package domain

import (
	"context"
	"fmt"
)

// MinimumAge is the youngest a person can be to register.
const MinimumAge = 18

// User represents a registered user of the application.
type User struct {
	ID           int64
	Username     string
	FullName     string
	PasswordHash string
	Age          int
	Gender       string
	City         string
	Email        string
}

// NewUser builds a User after checking that every required field is present
// and the age floor is met. The ID is assigned by the store on insert.
func NewUser(username, fullName, passwordHash, gender, city, email string, age int) (*User, error) {
	if username == "" || fullName == "" || passwordHash == "" || email == "" {
		return nil, fmt.Errorf("%w: username, full name, password, and email are required", ErrMissingField)
	}
	if age < MinimumAge {
		return nil, fmt.Errorf("%w: age must be %d or older", ErrInvalidAge, MinimumAge)
	}
	return &User{
		Username:     username,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Age:          age,
		Gender:       gender,
		City:         city,
		Email:        email,
	}, nil
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// ListByCity returns every user in the given city except excludeID,
	// ordered by username.
	ListByCity(ctx context.Context, city string, excludeID int64) ([]User, error)
}
