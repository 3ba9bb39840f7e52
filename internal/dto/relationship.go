package dto

import (
	"time"

	"github.com/mkobayashi/relationship-tracker-api/internal/models"
	"github.com/mkobayashi/relationship-tracker-api/internal/utils"
)

// RelationshipTypeDTO represents a vocabulary entry in API responses
type RelationshipTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// RelationshipEdgeDTO represents a directed edge in API responses. The
// human-readable relationship name is carried alongside the raw type id so a
// caller never needs a second vocabulary lookup.
type RelationshipEdgeDTO struct {
	ID                 uint64    `json:"id"`
	PersonID           uint64    `json:"person_id"`
	RelatedPersonID    uint64    `json:"related_person_id"`
	RelationshipTypeID uint64    `json:"relationship_type_id"`
	RelationshipName   string    `json:"relationship_name"`
	Date               *string   `json:"date"`
	Description        *string   `json:"description"`
	Current            bool      `json:"current"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToRelationshipTypeDTO converts a RelationshipType model to DTO
func ToRelationshipTypeDTO(rt models.RelationshipType) RelationshipTypeDTO {
	return RelationshipTypeDTO{
		ID:   rt.ID,
		Name: rt.Name,
	}
}

// ToRelationshipTypeDTOs converts a slice of vocabulary entries, preserving order.
func ToRelationshipTypeDTOs(types []models.RelationshipType) []RelationshipTypeDTO {
	dtos := make([]RelationshipTypeDTO, len(types))
	for i, rt := range types {
		dtos[i] = ToRelationshipTypeDTO(rt)
	}
	return dtos
}

// ToRelationshipEdgeDTO converts a RelationshipEdge model to DTO
func ToRelationshipEdgeDTO(edge models.RelationshipEdge) RelationshipEdgeDTO {
	return RelationshipEdgeDTO{
		ID:                 edge.ID,
		PersonID:           edge.PersonID,
		RelatedPersonID:    edge.RelatedPersonID,
		RelationshipTypeID: edge.RelationshipTypeID,
		RelationshipName:   edge.RelationshipType.Name,
		Date:               utils.FormatDatePtr(edge.Date),
		Description:        edge.Description,
		Current:            edge.Current,
		CreatedAt:          edge.CreatedAt,
	}
}

// ToRelationshipEdgeDTOs converts a slice of edges, preserving order.
func ToRelationshipEdgeDTOs(edges []models.RelationshipEdge) []RelationshipEdgeDTO {
	dtos := make([]RelationshipEdgeDTO, len(edges))
	for i, edge := range edges {
		dtos[i] = ToRelationshipEdgeDTO(edge)
	}
	return dtos
}
