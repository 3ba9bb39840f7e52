package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mkobayashi/relationship-tracker-api/internal/models"
	"github.com/mkobayashi/relationship-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPersonNameRequired = errors.New("person name is required")
	ErrPersonEmailTaken   = errors.New("a person with this email already exists")
	ErrPersonNotFound     = errors.New("person not found")
)

// PersonService handles person record business logic.
type PersonService struct {
	personRepo repository.PersonRepository
}

// NewPersonService creates a new PersonService.
func NewPersonService(personRepo repository.PersonRepository) *PersonService {
	return &PersonService{
		personRepo: personRepo,
	}
}

// CreatePersonInput holds the fields for a new person. Everything but Name is
// optional; ProfilePicture is raw bytes, already decoded from base64 at the
// API boundary.
type CreatePersonInput struct {
	Name           string
	DateOfBirth    *time.Time
	TimeOfBirth    *string
	ProfilePicture []byte
	Address        *string
	Email          *string
	PhoneNumber    *string
	DateOfDeath    *time.Time
	OwnerID        *uint64
}

// Create validates and stores a new person record.
func (s *PersonService) Create(input CreatePersonInput) (*models.Person, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPersonNameRequired
	}

	if input.Email != nil && *input.Email != "" {
		if _, err := s.personRepo.FindByEmail(*input.Email); err == nil {
			return nil, ErrPersonEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check person email: %w", err)
		}
	}

	person := &models.Person{
		Name:           name,
		DateOfBirth:    input.DateOfBirth,
		TimeOfBirth:    input.TimeOfBirth,
		ProfilePicture: input.ProfilePicture,
		Address:        input.Address,
		Email:          normalizeEmail(input.Email),
		PhoneNumber:    input.PhoneNumber,
		DateOfDeath:    input.DateOfDeath,
		OwnerID:        input.OwnerID,
	}

	if err := s.personRepo.Create(person); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPersonEmailTaken
		}
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	return person, nil
}

// Get retrieves a person by ID.
func (s *PersonService) Get(id uint64) (*models.Person, error) {
	person, err := s.personRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to find person: %w", err)
	}
	return person, nil
}

// List retrieves persons ordered by name ascending, optionally restricted to
// a single owner.
func (s *PersonService) List(ownerID *uint64) ([]models.Person, error) {
	persons, err := s.personRepo.List(repository.PersonFilter{OwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	return persons, nil
}

// UpdatePersonInput holds a partial update: nil fields are left unchanged.
type UpdatePersonInput struct {
	Name           *string
	DateOfBirth    *time.Time
	TimeOfBirth    *string
	ProfilePicture []byte
	Address        *string
	Email          *string
	PhoneNumber    *string
	DateOfDeath    *time.Time
	OwnerID        *uint64
}

// Update applies a partial update to an existing person.
func (s *PersonService) Update(id uint64, input UpdatePersonInput) (*models.Person, error) {
	person, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrPersonNameRequired
		}
		person.Name = name
	}
	if input.DateOfBirth != nil {
		person.DateOfBirth = input.DateOfBirth
	}
	if input.TimeOfBirth != nil {
		person.TimeOfBirth = input.TimeOfBirth
	}
	if input.ProfilePicture != nil {
		person.ProfilePicture = input.ProfilePicture
	}
	if input.Address != nil {
		person.Address = input.Address
	}
	if input.Email != nil && *input.Email != "" {
		if existing, err := s.personRepo.FindByEmail(*input.Email); err == nil {
			if existing.ID != person.ID {
				return nil, ErrPersonEmailTaken
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check person email: %w", err)
		}
		person.Email = input.Email
	}
	if input.PhoneNumber != nil {
		person.PhoneNumber = input.PhoneNumber
	}
	if input.DateOfDeath != nil {
		person.DateOfDeath = input.DateOfDeath
	}
	if input.OwnerID != nil {
		person.OwnerID = input.OwnerID
	}

	if err := s.personRepo.Update(person); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPersonEmailTaken
		}
		return nil, fmt.Errorf("failed to update person: %w", err)
	}

	return person, nil
}

// Delete removes a person and every edge referencing it.
func (s *PersonService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.personRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}

// normalizeEmail maps an empty email to absent so the unique index only
// applies to real addresses.
func normalizeEmail(email *string) *string {
	if email == nil || *email == "" {
		return nil
	}
	return email
}
