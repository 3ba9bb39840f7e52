package models

// RelationshipType is a vocabulary entry such as "Father" or "Ex-Friend".
// The catalog is seeded at startup and read-only afterwards.
type RelationshipType struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}
