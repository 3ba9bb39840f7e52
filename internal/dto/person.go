package dto

import (
	"encoding/base64"
	"time"

	"github.com/mkobayashi/relationship-tracker-api/internal/models"
	"github.com/mkobayashi/relationship-tracker-api/internal/utils"
)

// PersonDTO represents a person in API responses. The profile picture is
// rendered as base64 text, never raw binary, for transport uniformity.
type PersonDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth *string   `json:"date_of_birth"`
	TimeOfBirth *string   `json:"time_of_birth"`
	ProfilePic  *string   `json:"profile_pic"`
	Address     *string   `json:"address"`
	Email       *string   `json:"email"`
	PhoneNumber *string   `json:"phone_number"`
	DateOfDeath *string   `json:"date_of_death"`
	UserID      *uint64   `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToPersonDTO converts a Person model to PersonDTO
func ToPersonDTO(person models.Person) PersonDTO {
	dto := PersonDTO{
		ID:          person.ID,
		Name:        person.Name,
		DateOfBirth: utils.FormatDatePtr(person.DateOfBirth),
		TimeOfBirth: person.TimeOfBirth,
		Address:     person.Address,
		Email:       person.Email,
		PhoneNumber: person.PhoneNumber,
		DateOfDeath: utils.FormatDatePtr(person.DateOfDeath),
		UserID:      person.OwnerID,
		CreatedAt:   person.CreatedAt,
		UpdatedAt:   person.UpdatedAt,
	}

	if len(person.ProfilePicture) > 0 {
		encoded := base64.StdEncoding.EncodeToString(person.ProfilePicture)
		dto.ProfilePic = &encoded
	}

	return dto
}

// ToPersonDTOs converts a slice of persons, preserving order.
func ToPersonDTOs(persons []models.Person) []PersonDTO {
	dtos := make([]PersonDTO, len(persons))
	for i, person := range persons {
		dtos[i] = ToPersonDTO(person)
	}
	return dtos
}
