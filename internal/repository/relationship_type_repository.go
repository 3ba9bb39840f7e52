package repository

import (
	"github.com/mkobayashi/relationship-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormRelationshipTypeRepository is a GORM implementation of RelationshipTypeRepository
type GormRelationshipTypeRepository struct {
	db *gorm.DB
}

// NewRelationshipTypeRepository creates a new RelationshipTypeRepository
func NewRelationshipTypeRepository(db *gorm.DB) RelationshipTypeRepository {
	return &GormRelationshipTypeRepository{db: db}
}

// List retrieves all relationship types ordered by name ascending
func (r *GormRelationshipTypeRepository) List() ([]models.RelationshipType, error) {
	var types []models.RelationshipType
	if err := r.db.Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// FindByID finds a relationship type by ID
func (r *GormRelationshipTypeRepository) FindByID(id uint64) (*models.RelationshipType, error) {
	var rt models.RelationshipType
	if err := r.db.First(&rt, id).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}
