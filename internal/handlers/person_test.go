package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mkobayashi/relationship-tracker-api/internal/constants"
	"github.com/mkobayashi/relationship-tracker-api/internal/database"
	"github.com/mkobayashi/relationship-tracker-api/internal/dto"
	"github.com/mkobayashi/relationship-tracker-api/internal/middleware"
	"github.com/mkobayashi/relationship-tracker-api/internal/models"
	"github.com/mkobayashi/relationship-tracker-api/internal/repository"
	"github.com/mkobayashi/relationship-tracker-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type personTestEnv struct {
	db         *gorm.DB
	handler    *PersonHandler
	personRepo repository.PersonRepository
	user       *models.User
	otherUser  *models.User
}

func setupPersonTestEnv(t *testing.T) personTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	personRepo := repository.NewPersonRepository(db)
	personService := services.NewPersonService(personRepo)
	handler := NewPersonHandler(personService)

	user := &models.User{Name: "Owner", Username: "owner", Email: "owner@example.com", PasswordHash: "x"}
	require.NoError(t, userRepo.Create(user))
	otherUser := &models.User{Name: "Other", Username: "other", Email: "other@example.com", PasswordHash: "x"}
	require.NoError(t, userRepo.Create(otherUser))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return personTestEnv{
		db:         db,
		handler:    handler,
		personRepo: personRepo,
		user:       user,
		otherUser:  otherUser,
	}
}

// newPersonRouter builds a router with the authenticated user id preset, the
// way RequireAuth would after a signin.
func newPersonRouter(env personTestEnv, userID uint64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
	})
	r.GET("/api/persons", env.handler.ListPersons)
	r.POST("/api/persons", env.handler.CreatePerson)
	r.GET("/api/persons/:id", env.handler.GetPerson)
	r.PUT("/api/persons/:id", middleware.RequirePersonWrite(env.db), env.handler.UpdatePerson)
	r.DELETE("/api/persons/:id", middleware.RequirePersonWrite(env.db), env.handler.DeletePerson)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodePerson(t *testing.T, w *httptest.ResponseRecorder) dto.PersonDTO {
	t.Helper()

	var response struct {
		Person dto.PersonDTO `json:"person"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Person
}

func TestPersonHandler_CreateAndGetRoundTrip(t *testing.T) {
	env := setupPersonTestEnv(t)
	r := newPersonRouter(env, env.user.ID)

	picture := base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4e, 0x47})
	w := doJSON(t, r, http.MethodPost, "/api/persons", map[string]any{
		"name":          "Alice Johnson",
		"email":         "alice@example.com",
		"date_of_birth": "1990-05-15",
		"time_of_birth": "08:30:00",
		"profile_pic":   picture,
		"user_id":       env.user.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodePerson(t, w)
	require.NotZero(t, created.ID)

	w = doJSON(t, r, http.MethodGet, "/api/persons/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodePerson(t, w)

	require.Equal(t, "Alice Johnson", got.Name)
	require.NotNil(t, got.Email)
	require.Equal(t, "alice@example.com", *got.Email)
	require.NotNil(t, got.DateOfBirth)
	require.Equal(t, "1990-05-15", *got.DateOfBirth)
	require.NotNil(t, got.ProfilePic)
	require.Equal(t, picture, *got.ProfilePic)
	require.NotNil(t, got.UserID)
	require.Equal(t, env.user.ID, *got.UserID)
}

func TestPersonHandler_Create_InvalidBase64(t *testing.T) {
	env := setupPersonTestEnv(t)
	r := newPersonRouter(env, env.user.ID)

	w := doJSON(t, r, http.MethodPost, "/api/persons", map[string]any{
		"name":        "Broken Pic",
		"profile_pic": "not base64!!",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPersonHandler_Create_EmailConflict(t *testing.T) {
	env := setupPersonTestEnv(t)
	r := newPersonRouter(env, env.user.ID)

	payload := map[string]any{"name": "Alice", "email": "dup@example.com"}
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/persons", payload).Code)

	payload["name"] = "Someone Else"
	w := doJSON(t, r, http.MethodPost, "/api/persons", payload)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestPersonHandler_Create_OtherOwnerForbidden(t *testing.T) {
	env := setupPersonTestEnv(t)
	r := newPersonRouter(env, env.user.ID)

	w := doJSON(t, r, http.MethodPost, "/api/persons", map[string]any{
		"name":    "Sneaky",
		"user_id": env.otherUser.ID,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestPersonHandler_Get_NotFound(t *testing.T) {
	env := setupPersonTestEnv(t)
	r := newPersonRouter(env, env.user.ID)

	w := doJSON(t, r, http.MethodGet, "/api/persons/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPersonHandler_List_OwnerFilterAndOrdering(t *testing.T) {
	env := setupPersonTestEnv(t)

	// Mixed ownership, inserted out of name order.
	require.NoError(t, env.personRepo.Create(&models.Person{Name: "Charlie", OwnerID: &env.user.ID}))
	require.NoError(t, env.personRepo.Create(&models.Person{Name: "Alice", OwnerID: &env.user.ID}))
	require.NoError(t, env.personRepo.Create(&models.Person{Name: "Bob", OwnerID: &env.otherUser.ID}))
	require.NoError(t, env.personRepo.Create(&models.Person{Name: "Dora"}))

	r := newPersonRouter(env, env.user.ID)

	w := doJSON(t, r, http.MethodGet, "/api/persons?user_id="+itoa(env.user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		People []dto.PersonDTO `json:"people"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.People, 2)
	require.Equal(t, "Alice", response.People[0].Name)
	require.Equal(t, "Charlie", response.People[1].Name)

	// Without a filter all persons come back, still name-ascending.
	w = doJSON(t, r, http.MethodGet, "/api/persons", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.People, 4)
	require.Equal(t, "Alice", response.People[0].Name)
	require.Equal(t, "Dora", response.People[3].Name)
}

func TestPersonHandler_List_OtherOwnerForbidden(t *testing.T) {
	env := setupPersonTestEnv(t)
	r := newPersonRouter(env, env.user.ID)

	w := doJSON(t, r, http.MethodGet, "/api/persons?user_id="+itoa(env.otherUser.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestPersonHandler_Update_PartialLeavesOtherFieldsUnchanged(t *testing.T) {
	env := setupPersonTestEnv(t)
	r := newPersonRouter(env, env.user.ID)

	w := doJSON(t, r, http.MethodPost, "/api/persons", map[string]any{
		"name":  "Alice",
		"email": "alice@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodePerson(t, w)

	w = doJSON(t, r, http.MethodPut, "/api/persons/"+itoa(created.ID), map[string]any{
		"address": "123 Main St",
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodePerson(t, w)

	require.Equal(t, "Alice", updated.Name)
	require.NotNil(t, updated.Email)
	require.Equal(t, "alice@x.com", *updated.Email)
	require.NotNil(t, updated.Address)
	require.Equal(t, "123 Main St", *updated.Address)
}

func TestPersonHandler_Update_NotFound(t *testing.T) {
	env := setupPersonTestEnv(t)
	r := newPersonRouter(env, env.user.ID)

	w := doJSON(t, r, http.MethodPut, "/api/persons/9999", map[string]any{"address": "nowhere"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPersonHandler_Update_OtherOwnedReportedAsNotFound(t *testing.T) {
	env := setupPersonTestEnv(t)

	theirs := &models.Person{Name: "Theirs", OwnerID: &env.otherUser.ID}
	require.NoError(t, env.personRepo.Create(theirs))

	r := newPersonRouter(env, env.user.ID)
	w := doJSON(t, r, http.MethodPut, "/api/persons/"+itoa(theirs.ID), map[string]any{
		"address": "nope",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPersonHandler_Delete_RemovesPersonAndEdges(t *testing.T) {
	env := setupPersonTestEnv(t)

	alice := &models.Person{Name: "Alice", OwnerID: &env.user.ID}
	bob := &models.Person{Name: "Bob"}
	require.NoError(t, env.personRepo.Create(alice))
	require.NoError(t, env.personRepo.Create(bob))

	rt := models.RelationshipType{Name: "Friend"}
	require.NoError(t, env.db.Create(&rt).Error)
	require.NoError(t, env.db.Create(&models.RelationshipEdge{
		PersonID:           alice.ID,
		RelatedPersonID:    bob.ID,
		RelationshipTypeID: rt.ID,
		Current:            true,
	}).Error)
	require.NoError(t, env.db.Create(&models.RelationshipEdge{
		PersonID:           bob.ID,
		RelatedPersonID:    alice.ID,
		RelationshipTypeID: rt.ID,
		Current:            true,
	}).Error)

	r := newPersonRouter(env, env.user.ID)
	w := doJSON(t, r, http.MethodDelete, "/api/persons/"+itoa(alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := env.personRepo.FindByID(alice.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Edges on either side of the deleted person are gone too.
	var edgeCount int64
	require.NoError(t, env.db.Model(&models.RelationshipEdge{}).Count(&edgeCount).Error)
	require.Zero(t, edgeCount)
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
