package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/mkobayashi/relationship-tracker-api/internal/errors"
	"github.com/mkobayashi/relationship-tracker-api/internal/models"
	"gorm.io/gorm"
)

// ContextKeyPerson is the Gin context key under which RequirePersonWrite
// stores the loaded person.
const ContextKeyPerson = "person"

// RequirePersonWrite gates write access to a person record. Persons owned by
// another user are reported as not found rather than forbidden, to avoid
// leaking their existence; unowned persons (e.g. deceased relatives with no
// account) are writable by any signed-in user.
func RequirePersonWrite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		personIDStr := c.Param("id")
		personID, err := strconv.ParseUint(personIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid person ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var person models.Person
		if err := db.First(&person, personID).Error; err != nil {
			apierrors.NotFound(c, "Person not found")
			c.Abort()
			return
		}

		if person.OwnerID != nil && *person.OwnerID != userID {
			apierrors.NotFound(c, "Person not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyPerson, person)
		c.Next()
	}
}

// GetPerson retrieves the person loaded by RequirePersonWrite from context
func GetPerson(c *gin.Context) (models.Person, bool) {
	value, exists := c.Get(ContextKeyPerson)
	if !exists {
		return models.Person{}, false
	}
	person, ok := value.(models.Person)
	return person, ok
}
