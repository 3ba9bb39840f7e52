package dto

import "github.com/mkobayashi/relationship-tracker-api/internal/models"

// UserDTO represents a user's public profile in API responses. The password
// digest never appears here.
type UserDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Email:    user.Email,
	}
}
