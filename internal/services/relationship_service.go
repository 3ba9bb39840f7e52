package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mkobayashi/relationship-tracker-api/internal/models"
	"github.com/mkobayashi/relationship-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSelfRelationship         = errors.New("a person cannot be related to themself")
	ErrRelationshipTypeNotFound = errors.New("relationship type not found")
	ErrEdgeNotFound             = errors.New("relationship not found")
)

// RelationshipService handles the vocabulary and the person-to-person edges.
type RelationshipService struct {
	typeRepo   repository.RelationshipTypeRepository
	edgeRepo   repository.RelationshipEdgeRepository
	personRepo repository.PersonRepository
}

// NewRelationshipService creates a new RelationshipService.
func NewRelationshipService(
	typeRepo repository.RelationshipTypeRepository,
	edgeRepo repository.RelationshipEdgeRepository,
	personRepo repository.PersonRepository,
) *RelationshipService {
	return &RelationshipService{
		typeRepo:   typeRepo,
		edgeRepo:   edgeRepo,
		personRepo: personRepo,
	}
}

// ListTypes retrieves the seeded vocabulary ordered by name ascending.
func (s *RelationshipService) ListTypes() ([]models.RelationshipType, error) {
	types, err := s.typeRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list relationship types: %w", err)
	}
	return types, nil
}

// AddEdgeInput holds the fields for a new edge. Current defaults to true when
// absent.
type AddEdgeInput struct {
	PersonID           uint64
	RelatedPersonID    uint64
	RelationshipTypeID uint64
	Date               *time.Time
	Description        *string
	Current            *bool
}

// AddEdge validates referential integrity and stores a new directed edge.
// Duplicate subject/related/type triples are allowed: the edge list is a
// history log, not a single current state.
func (s *RelationshipService) AddEdge(input AddEdgeInput) (*models.RelationshipEdge, error) {
	if input.PersonID == input.RelatedPersonID {
		return nil, ErrSelfRelationship
	}

	if _, err := s.personRepo.FindByID(input.PersonID); err != nil {
		return nil, personLookupError(err)
	}
	if _, err := s.personRepo.FindByID(input.RelatedPersonID); err != nil {
		return nil, personLookupError(err)
	}

	rt, err := s.typeRepo.FindByID(input.RelationshipTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRelationshipTypeNotFound
		}
		return nil, fmt.Errorf("failed to find relationship type: %w", err)
	}

	current := true
	if input.Current != nil {
		current = *input.Current
	}

	edge := &models.RelationshipEdge{
		PersonID:           input.PersonID,
		RelatedPersonID:    input.RelatedPersonID,
		RelationshipTypeID: rt.ID,
		Date:               input.Date,
		Description:        input.Description,
		Current:            current,
	}

	if err := s.edgeRepo.Create(edge); err != nil {
		return nil, fmt.Errorf("failed to create relationship: %w", err)
	}

	edge.RelationshipType = *rt
	return edge, nil
}

// ListForPerson retrieves the edges attached to a person as subject, in
// insertion order, each carrying the denormalized relationship name.
func (s *RelationshipService) ListForPerson(personID uint64) ([]models.RelationshipEdge, error) {
	edges, err := s.edgeRepo.ListByPerson(personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	return edges, nil
}

// UpdateEdgeInput holds a partial edge update: nil fields are left unchanged.
// The two endpoint persons are immutable; pointing an edge elsewhere means
// deleting it and creating a new one.
type UpdateEdgeInput struct {
	RelationshipTypeID *uint64
	Date               *time.Time
	Description        *string
	Current            *bool
}

// UpdateEdge applies a partial update to an existing edge.
func (s *RelationshipService) UpdateEdge(id uint64, input UpdateEdgeInput) (*models.RelationshipEdge, error) {
	edge, err := s.getEdge(id)
	if err != nil {
		return nil, err
	}

	if input.RelationshipTypeID != nil {
		rt, err := s.typeRepo.FindByID(*input.RelationshipTypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRelationshipTypeNotFound
			}
			return nil, fmt.Errorf("failed to find relationship type: %w", err)
		}
		edge.RelationshipTypeID = rt.ID
		edge.RelationshipType = *rt
	}
	if input.Date != nil {
		edge.Date = input.Date
	}
	if input.Description != nil {
		edge.Description = input.Description
	}
	if input.Current != nil {
		edge.Current = *input.Current
	}

	if err := s.edgeRepo.Update(edge); err != nil {
		return nil, fmt.Errorf("failed to update relationship: %w", err)
	}

	return edge, nil
}

// DeleteEdge removes an edge.
func (s *RelationshipService) DeleteEdge(id uint64) error {
	if _, err := s.getEdge(id); err != nil {
		return err
	}

	if err := s.edgeRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	return nil
}

func (s *RelationshipService) getEdge(id uint64) (*models.RelationshipEdge, error) {
	edge, err := s.edgeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEdgeNotFound
		}
		return nil, fmt.Errorf("failed to find relationship: %w", err)
	}
	return edge, nil
}

func personLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPersonNotFound
	}
	return fmt.Errorf("failed to find person: %w", err)
}
