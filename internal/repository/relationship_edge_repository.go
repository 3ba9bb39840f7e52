package repository

import (
	"github.com/mkobayashi/relationship-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormRelationshipEdgeRepository is a GORM implementation of RelationshipEdgeRepository
type GormRelationshipEdgeRepository struct {
	db *gorm.DB
}

// NewRelationshipEdgeRepository creates a new RelationshipEdgeRepository
func NewRelationshipEdgeRepository(db *gorm.DB) RelationshipEdgeRepository {
	return &GormRelationshipEdgeRepository{db: db}
}

// Create creates a new edge
func (r *GormRelationshipEdgeRepository) Create(edge *models.RelationshipEdge) error {
	return r.db.Create(edge).Error
}

// FindByID finds an edge by ID with its relationship type preloaded
func (r *GormRelationshipEdgeRepository) FindByID(id uint64) (*models.RelationshipEdge, error) {
	var edge models.RelationshipEdge
	if err := r.db.Preload("RelationshipType").First(&edge, id).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

// ListByPerson retrieves the edges whose subject is the given person, in
// insertion order, with relationship types preloaded so callers never need a
// second vocabulary lookup.
func (r *GormRelationshipEdgeRepository) ListByPerson(personID uint64) ([]models.RelationshipEdge, error) {
	var edges []models.RelationshipEdge
	if err := r.db.
		Preload("RelationshipType").
		Where("person_id = ?", personID).
		Order("id ASC").
		Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

// Update persists all fields of the edge
func (r *GormRelationshipEdgeRepository) Update(edge *models.RelationshipEdge) error {
	return r.db.Save(edge).Error
}

// Delete removes an edge
func (r *GormRelationshipEdgeRepository) Delete(id uint64) error {
	return r.db.Delete(&models.RelationshipEdge{}, id).Error
}
