package repository

import (
	"github.com/mkobayashi/relationship-tracker-api/internal/models"
)

// UserRepository defines the interface for user account data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// UpdateName overwrites the user's display name
	UpdateName(id uint64, name string) error
}

// PersonFilter holds filtering options for listing persons
type PersonFilter struct {
	// OwnerID, when set, restricts the result to persons owned by that user
	OwnerID *uint64
}

// PersonRepository defines the interface for person data access
type PersonRepository interface {
	// Create creates a new person
	Create(person *models.Person) error

	// FindByID finds a person by ID
	FindByID(id uint64) (*models.Person, error)

	// FindByEmail finds a person by email
	FindByEmail(email string) (*models.Person, error)

	// List retrieves persons ordered by name ascending
	List(filter PersonFilter) ([]models.Person, error)

	// Update persists all fields of the person
	Update(person *models.Person) error

	// Delete removes a person together with every edge referencing it
	Delete(id uint64) error
}

// RelationshipTypeRepository defines the interface for vocabulary access
type RelationshipTypeRepository interface {
	// List retrieves all relationship types ordered by name ascending
	List() ([]models.RelationshipType, error)

	// FindByID finds a relationship type by ID
	FindByID(id uint64) (*models.RelationshipType, error)
}

// RelationshipEdgeRepository defines the interface for edge data access
type RelationshipEdgeRepository interface {
	// Create creates a new edge
	Create(edge *models.RelationshipEdge) error

	// FindByID finds an edge by ID with its relationship type preloaded
	FindByID(id uint64) (*models.RelationshipEdge, error)

	// ListByPerson retrieves the edges whose subject is the given person,
	// in insertion order, with relationship types preloaded
	ListByPerson(personID uint64) ([]models.RelationshipEdge, error)

	// Update persists all fields of the edge
	Update(edge *models.RelationshipEdge) error

	// Delete removes an edge
	Delete(id uint64) error
}
