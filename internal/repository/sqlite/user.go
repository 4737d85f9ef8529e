package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/connectrandom/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, fullname, password_hash, age, gender, city, email)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.FullName, user.PasswordHash, user.Age, user.Gender, user.City, user.Email,
	)
	if err != nil {
		if uniqueViolation(err, "users.username") {
			return domain.ErrDuplicateUsername
		}
		if uniqueViolation(err, "users.email") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.get(ctx, "id = ?", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.get(ctx, "username = ?", username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, "email = ?", email)
}

func (r *UserRepository) get(ctx context.Context, where string, arg any) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, fullname, password_hash, age, gender, city, email
		 FROM users WHERE `+where, arg,
	).Scan(&user.ID, &user.Username, &user.FullName, &user.PasswordHash,
		&user.Age, &user.Gender, &user.City, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) ListByCity(ctx context.Context, city string, excludeID int64) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, fullname, password_hash, age, gender, city, email
		 FROM users WHERE city = ? AND id != ? ORDER BY username`,
		city, excludeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query users by city: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.PasswordHash,
			&u.Age, &u.Gender, &u.City, &u.Email); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// uniqueViolation checks whether err is a SQLite unique constraint failure
// on the given column (reported as "table.column" in the driver message).
func uniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}
