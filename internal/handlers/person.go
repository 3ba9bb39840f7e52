package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkobayashi/relationship-tracker-api/internal/dto"
	apierrors "github.com/mkobayashi/relationship-tracker-api/internal/errors"
	"github.com/mkobayashi/relationship-tracker-api/internal/middleware"
	"github.com/mkobayashi/relationship-tracker-api/internal/services"
	"github.com/mkobayashi/relationship-tracker-api/internal/utils"
)

// PersonHandler coordinates person-record HTTP handlers.
type PersonHandler struct {
	personService *services.PersonService
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(personService *services.PersonService) *PersonHandler {
	return &PersonHandler{
		personService: personService,
	}
}

// personFields are the optional biographical fields shared by create and
// update requests. Dates travel as YYYY-MM-DD, the time of birth as HH:MM:SS
// and the profile picture as base64 text.
type personFields struct {
	DateOfBirth *string `json:"date_of_birth"`
	TimeOfBirth *string `json:"time_of_birth"`
	ProfilePic  *string `json:"profile_pic"`
	Address     *string `json:"address"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	DateOfDeath *string `json:"date_of_death"`
	UserID      *uint64 `json:"user_id"`
}

type parsedPersonFields struct {
	dateOfBirth    *time.Time
	timeOfBirth    *string
	profilePicture []byte
	dateOfDeath    *time.Time
}

// parse validates the encoded fields. A nil result slot means the field was
// absent from the request.
func (f *personFields) parse() (parsedPersonFields, error) {
	var parsed parsedPersonFields

	dob, err := utils.ParseDatePtr(f.DateOfBirth)
	if err != nil {
		return parsed, err
	}
	parsed.dateOfBirth = dob

	if err := utils.ValidateTimeOfDay(f.TimeOfBirth); err != nil {
		return parsed, err
	}
	parsed.timeOfBirth = f.TimeOfBirth

	dod, err := utils.ParseDatePtr(f.DateOfDeath)
	if err != nil {
		return parsed, err
	}
	parsed.dateOfDeath = dod

	if f.ProfilePic != nil && *f.ProfilePic != "" {
		picture, err := base64.StdEncoding.DecodeString(*f.ProfilePic)
		if err != nil {
			return parsed, errors.New("profile_pic must be valid base64")
		}
		parsed.profilePicture = picture
	}

	return parsed, nil
}

// CreatePerson stores a new person record. Linking the person to an owner
// other than the session user is rejected: ownership claims are bound to the
// authenticated identity, never taken from the payload on trust.
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	type CreatePersonRequest struct {
		Name string `json:"name" binding:"required"`
		personFields
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Name is required")
		return
	}

	if req.UserID != nil && *req.UserID != userID {
		apierrors.Forbidden(c, "Cannot create a person owned by another user")
		return
	}

	parsed, err := req.parse()
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	person, err := h.personService.Create(services.CreatePersonInput{
		Name:           req.Name,
		DateOfBirth:    parsed.dateOfBirth,
		TimeOfBirth:    parsed.timeOfBirth,
		ProfilePicture: parsed.profilePicture,
		Address:        req.Address,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		DateOfDeath:    parsed.dateOfDeath,
		OwnerID:        req.UserID,
	})
	if err != nil {
		respondPersonError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"person": dto.ToPersonDTO(*person)})
}

// GetPerson returns a single person by ID.
func (h *PersonHandler) GetPerson(c *gin.Context) {
	personID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid person ID")
		return
	}

	person, err := h.personService.Get(personID)
	if err != nil {
		respondPersonError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"person": dto.ToPersonDTO(*person)})
}

// ListPersons returns persons ordered by name ascending. With a user_id query
// parameter the result is restricted to that owner; claiming an owner other
// than the session user is rejected.
func (h *PersonHandler) ListPersons(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var ownerID *uint64
	if ownerStr := c.Query("user_id"); ownerStr != "" {
		owner, err := strconv.ParseUint(ownerStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user_id")
			return
		}
		if owner != userID {
			apierrors.Forbidden(c, "Cannot list persons owned by another user")
			return
		}
		ownerID = &owner
	}

	persons, err := h.personService.List(ownerID)
	if err != nil {
		respondPersonError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"people": dto.ToPersonDTOs(persons)})
}

// UpdatePerson applies a partial update: fields absent from the request are
// left unchanged. Write access was already checked by RequirePersonWrite.
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	type UpdatePersonRequest struct {
		Name *string `json:"name"`
		personFields
	}

	person, ok := middleware.GetPerson(c)
	if !ok {
		apierrors.StorageError(c)
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.UserID != nil && *req.UserID != userID {
		apierrors.Forbidden(c, "Cannot assign a person to another user")
		return
	}

	parsed, err := req.parse()
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	updated, err := h.personService.Update(person.ID, services.UpdatePersonInput{
		Name:           req.Name,
		DateOfBirth:    parsed.dateOfBirth,
		TimeOfBirth:    parsed.timeOfBirth,
		ProfilePicture: parsed.profilePicture,
		Address:        req.Address,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		DateOfDeath:    parsed.dateOfDeath,
		OwnerID:        req.UserID,
	})
	if err != nil {
		respondPersonError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"person": dto.ToPersonDTO(*updated)})
}

// DeletePerson removes a person together with every edge referencing it.
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	person, ok := middleware.GetPerson(c)
	if !ok {
		apierrors.StorageError(c)
		return
	}

	if err := h.personService.Delete(person.ID); err != nil {
		respondPersonError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Person deleted"})
}

func respondPersonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPersonNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPersonEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPersonNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.StorageError(c)
	}
}
