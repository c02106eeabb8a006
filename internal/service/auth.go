package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/freshshop/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the cost used when none is configured.
const DefaultBcryptCost = 10

// AuthService handles customer registration and credential checks.
type AuthService struct {
	users      domain.UserRepository
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = DefaultBcryptCost
	}
	return &AuthService{users: users, bcryptCost: bcryptCost}
}

// Register hashes the password and creates the user. Email uniqueness is
// enforced by the store, which reports domain.ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login looks the user up by email and verifies the password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// SessionIdentity returns the part of the user that is kept in the session.
func SessionIdentity(u *domain.User) *domain.SessionUser {
	return &domain.SessionUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
