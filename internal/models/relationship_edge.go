package models

import "time"

// RelationshipEdge is a directed, typed statement: the subject person has the
// named relationship with the related person. Edges are never symmetric
// ("A is Father of B" does not imply a reciprocal edge) and duplicates of the
// same triple are allowed: together with Date and Current the table reads as
// a log of relationship history rather than a single current state.
type RelationshipEdge struct {
	ID                 uint64     `gorm:"primarykey" json:"id"`
	PersonID           uint64     `gorm:"not null;index" json:"person_id"`
	RelatedPersonID    uint64     `gorm:"not null;index" json:"related_person_id"`
	RelationshipTypeID uint64     `gorm:"not null" json:"relationship_type_id"`
	Date               *time.Time `gorm:"type:date" json:"date"`
	Description        *string    `gorm:"type:text" json:"description"`
	Current            bool       `gorm:"not null;default:true" json:"current"`
	CreatedAt          time.Time  `json:"created_at"`

	// Relations
	Person           Person           `gorm:"foreignKey:PersonID" json:"-"`
	RelatedPerson    Person           `gorm:"foreignKey:RelatedPersonID" json:"-"`
	RelationshipType RelationshipType `gorm:"foreignKey:RelationshipTypeID" json:"-"`
}
