package models

import "time"

// Person is a biographical record. It may be linked to the user account that
// owns it, but need not be (e.g. a deceased relative with no account); when
// the owning user is deleted the link is cleared, never cascaded.
type Person struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`
	// TimeOfBirth is a time of day in HH:MM:SS form, kept apart from
	// DateOfBirth because either may be unknown independently.
	TimeOfBirth *string `gorm:"type:varchar(8)" json:"time_of_birth"`
	// ProfilePicture holds opaque image bytes; base64 appears only at the
	// API boundary.
	ProfilePicture []byte     `json:"-"`
	Address        *string    `gorm:"type:text" json:"address"`
	Email          *string    `gorm:"type:varchar(100);uniqueIndex" json:"email"`
	PhoneNumber    *string    `gorm:"type:varchar(30)" json:"phone_number"`
	DateOfDeath    *time.Time `gorm:"type:date" json:"date_of_death"`
	OwnerID        *uint64    `gorm:"index" json:"user_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"-"`
}
