package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"investor-portal/internal/domain"
	"investor-portal/internal/repository"
	"investor-portal/internal/token"
)

// DefaultBcryptCost is the work factor applied to new password hashes.
const DefaultBcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Company   string
	Phone     string
}

// AuthResult pairs the public profile with a freshly minted bearer token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService describes account lifecycle operations.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type authService struct {
	users  repository.UserRepository
	issuer *token.Issuer
	cost   int
}

func NewAuthService(users repository.UserRepository, issuer *token.Issuer, bcryptCost int) AuthService {
	if bcryptCost <= 0 {
		bcryptCost = DefaultBcryptCost
	}
	return &authService{
		users:  users,
		issuer: issuer,
		cost:   bcryptCost,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Company = strings.TrimSpace(input.Company)
	input.Phone = strings.TrimSpace(input.Phone)

	if !emailPattern.MatchString(input.Email) {
		return nil, invalidField("email", "a valid email address is required")
	}
	if len(input.Password) < 8 {
		return nil, invalidField("password", "password must be at least 8 characters")
	}
	// bcrypt rejects inputs beyond 72 bytes instead of truncating.
	if len(input.Password) > 72 {
		return nil, invalidField("password", "password must be at most 72 characters")
	}
	if input.FirstName == "" {
		return nil, invalidField("firstName", "first name is required")
	}
	if input.LastName == "" {
		return nil, invalidField("lastName", "last name is required")
	}

	// Optimistic duplicate check; the store's unique constraint closes the race.
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrDuplicateAccount
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Company:      input.Company,
		Phone:        input.Phone,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}

	return s.issueFor(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueFor(user)
}

func (s *authService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// issueFor mints a fresh token on every successful registration or login.
func (s *authService) issueFor(user *domain.User) (*AuthResult, error) {
	signed, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: sanitizeUser(user), Token: signed}, nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.Company,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
