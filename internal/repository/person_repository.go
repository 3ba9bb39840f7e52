package repository

import (
	"github.com/mkobayashi/relationship-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormPersonRepository is a GORM implementation of PersonRepository
type GormPersonRepository struct {
	db *gorm.DB
}

// NewPersonRepository creates a new PersonRepository
func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &GormPersonRepository{db: db}
}

// Create creates a new person
func (r *GormPersonRepository) Create(person *models.Person) error {
	return r.db.Create(person).Error
}

// FindByID finds a person by ID
func (r *GormPersonRepository) FindByID(id uint64) (*models.Person, error) {
	var person models.Person
	if err := r.db.First(&person, id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// FindByEmail finds a person by email
func (r *GormPersonRepository) FindByEmail(email string) (*models.Person, error) {
	var person models.Person
	if err := r.db.Where("email = ?", email).First(&person).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// List retrieves persons ordered by name ascending
func (r *GormPersonRepository) List(filter PersonFilter) ([]models.Person, error) {
	var persons []models.Person

	query := r.db.Model(&models.Person{})
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	if err := query.Order("name ASC").Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

// Update persists all fields of the person
func (r *GormPersonRepository) Update(person *models.Person) error {
	return r.db.Save(person).Error
}

// Delete removes a person together with every edge referencing it, in a
// single transaction so a crash cannot leave dangling edges.
func (r *GormPersonRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("person_id = ? OR related_person_id = ?", id, id).
			Delete(&models.RelationshipEdge{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Person{}, id).Error
	})
}
