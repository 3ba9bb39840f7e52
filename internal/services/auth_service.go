package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mkobayashi/relationship-tracker-api/internal/models"
	"github.com/mkobayashi/relationship-tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMissingField         = errors.New("all fields are required")
	ErrUserExists           = errors.New("username or email already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles account registration, authentication and profile
// updates.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SignupInput represents the required information to create a new account.
type SignupInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// Signup registers a new account. The password is digested with bcrypt before
// storage; the plaintext is never persisted. Duplicate usernames or emails
// are rejected, whether detected by the pre-check or by the database's unique
// constraints under a racing insert.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if name == "" || username == "" || email == "" || input.Password == "" {
		return nil, ErrMissingField
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user. An unknown
// username and a wrong password fail identically so callers cannot enumerate
// accounts.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// Rename overwrites the user's display name. Names carry no uniqueness
// constraint.
func (s *AuthService) Rename(id uint64, newName string) (*models.User, error) {
	name := strings.TrimSpace(newName)
	if name == "" {
		return nil, ErrMissingField
	}

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateName(user.ID, name); err != nil {
		return nil, fmt.Errorf("failed to rename user: %w", err)
	}

	user.Name = name
	return user, nil
}
