package service

import (
	"context"
	"fmt"

	"github.com/msomdec/connectrandom/internal/domain"
)

// DirectoryService finds other users to talk to.
type DirectoryService struct {
	users domain.UserRepository
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(users domain.UserRepository) *DirectoryService {
	return &DirectoryService{users: users}
}

// NearbyUsers lists every registered user in the caller's city, excluding
// the caller.
func (s *DirectoryService) NearbyUsers(ctx context.Context, current *domain.User) ([]domain.User, error) {
	if current == nil {
		return nil, domain.ErrUnauthenticated
	}

	users, err := s.users.ListByCity(ctx, current.City, current.ID)
	if err != nil {
		return nil, fmt.Errorf("list users by city: %w", err)
	}
	return users, nil
}
