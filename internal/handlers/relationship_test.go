package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mkobayashi/relationship-tracker-api/internal/constants"
	"github.com/mkobayashi/relationship-tracker-api/internal/database"
	"github.com/mkobayashi/relationship-tracker-api/internal/dto"
	"github.com/mkobayashi/relationship-tracker-api/internal/models"
	"github.com/mkobayashi/relationship-tracker-api/internal/repository"
	"github.com/mkobayashi/relationship-tracker-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type relationshipTestEnv struct {
	db      *gorm.DB
	handler *RelationshipHandler
	alice   *models.Person
	bob     *models.Person
	friend  models.RelationshipType
}

func setupRelationshipTestEnv(t *testing.T) relationshipTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedRelationshipTypes(db))

	personRepo := repository.NewPersonRepository(db)
	typeRepo := repository.NewRelationshipTypeRepository(db)
	edgeRepo := repository.NewRelationshipEdgeRepository(db)
	relationshipService := services.NewRelationshipService(typeRepo, edgeRepo, personRepo)
	handler := NewRelationshipHandler(relationshipService)

	alice := &models.Person{Name: "Alice Johnson"}
	bob := &models.Person{Name: "Bob Smith"}
	require.NoError(t, personRepo.Create(alice))
	require.NoError(t, personRepo.Create(bob))

	var friend models.RelationshipType
	require.NoError(t, db.Where("name = ?", "Friend").First(&friend).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return relationshipTestEnv{
		db:      db,
		handler: handler,
		alice:   alice,
		bob:     bob,
		friend:  friend,
	}
}

func newRelationshipRouter(env relationshipTestEnv) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, uint64(1))
	})
	r.GET("/api/relationships", env.handler.ListRelationshipTypes)
	r.PATCH("/api/relationships/:id", env.handler.UpdateRelationship)
	r.DELETE("/api/relationships/:id", env.handler.DeleteRelationship)
	r.GET("/api/persons/:id/relationships", env.handler.ListPersonRelationships)
	r.POST("/api/persons/:id/relationships", env.handler.AddRelationship)
	return r
}

func decodeEdges(t *testing.T, w *httptest.ResponseRecorder) []dto.RelationshipEdgeDTO {
	t.Helper()

	var response struct {
		Relationships []dto.RelationshipEdgeDTO `json:"relationships"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Relationships
}

func TestRelationshipHandler_ListTypes(t *testing.T) {
	env := setupRelationshipTestEnv(t)
	r := newRelationshipRouter(env)

	w := doJSON(t, r, http.MethodGet, "/api/relationships", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Relationships []dto.RelationshipTypeDTO `json:"relationships"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Relationships, len(database.DefaultRelationshipNames()))

	names := make([]string, len(response.Relationships))
	for i, rt := range response.Relationships {
		names[i] = rt.Name
	}
	require.True(t, sort.StringsAreSorted(names), "expected vocabulary ordered by name")
	require.Contains(t, names, "Friend")
	require.Contains(t, names, "Ex-Friend")
}

func TestRelationshipHandler_AddAndList(t *testing.T) {
	env := setupRelationshipTestEnv(t)
	r := newRelationshipRouter(env)

	w := doJSON(t, r, http.MethodPost, "/api/persons/"+itoa(env.alice.ID)+"/relationships", map[string]any{
		"related_person_id":    env.bob.ID,
		"relationship_type_id": env.friend.ID,
		"date":                 "2020-01-01",
		"description":          "met at work",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Relationship dto.RelationshipEdgeDTO `json:"relationship"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "Friend", created.Relationship.RelationshipName)
	require.True(t, created.Relationship.Current, "current defaults to true")

	w = doJSON(t, r, http.MethodGet, "/api/persons/"+itoa(env.alice.ID)+"/relationships", nil)
	require.Equal(t, http.StatusOK, w.Code)
	edges := decodeEdges(t, w)
	require.Len(t, edges, 1)
	require.Equal(t, env.bob.ID, edges[0].RelatedPersonID)
	require.Equal(t, "Friend", edges[0].RelationshipName)
	require.NotNil(t, edges[0].Date)
	require.Equal(t, "2020-01-01", *edges[0].Date)

	// The edge is directed: nothing is implied for Bob.
	w = doJSON(t, r, http.MethodGet, "/api/persons/"+itoa(env.bob.ID)+"/relationships", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decodeEdges(t, w))
}

func TestRelationshipHandler_DuplicateEdgesAllowed(t *testing.T) {
	env := setupRelationshipTestEnv(t)
	r := newRelationshipRouter(env)

	payload := map[string]any{
		"related_person_id":    env.bob.ID,
		"relationship_type_id": env.friend.ID,
	}
	path := "/api/persons/" + itoa(env.alice.ID) + "/relationships"
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, path, payload).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, path, payload).Code)

	w := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeEdges(t, w), 2)
}

func TestRelationshipHandler_SelfLoopRejected(t *testing.T) {
	env := setupRelationshipTestEnv(t)
	r := newRelationshipRouter(env)

	w := doJSON(t, r, http.MethodPost, "/api/persons/"+itoa(env.alice.ID)+"/relationships", map[string]any{
		"related_person_id":    env.alice.ID,
		"relationship_type_id": env.friend.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRelationshipHandler_UnknownTypeRejected(t *testing.T) {
	env := setupRelationshipTestEnv(t)
	r := newRelationshipRouter(env)

	w := doJSON(t, r, http.MethodPost, "/api/persons/"+itoa(env.alice.ID)+"/relationships", map[string]any{
		"related_person_id":    env.bob.ID,
		"relationship_type_id": 999999,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRelationshipHandler_UnknownPersonRejected(t *testing.T) {
	env := setupRelationshipTestEnv(t)
	r := newRelationshipRouter(env)

	w := doJSON(t, r, http.MethodPost, "/api/persons/999999/relationships", map[string]any{
		"related_person_id":    env.bob.ID,
		"relationship_type_id": env.friend.ID,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRelationshipHandler_UpdateEdge(t *testing.T) {
	env := setupRelationshipTestEnv(t)
	r := newRelationshipRouter(env)

	path := "/api/persons/" + itoa(env.alice.ID) + "/relationships"
	w := doJSON(t, r, http.MethodPost, path, map[string]any{
		"related_person_id":    env.bob.ID,
		"relationship_type_id": env.friend.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Relationship dto.RelationshipEdgeDTO `json:"relationship"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPatch, "/api/relationships/"+itoa(created.Relationship.ID), map[string]any{
		"current":     false,
		"description": "lost touch",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Relationship dto.RelationshipEdgeDTO `json:"relationship"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.False(t, updated.Relationship.Current)
	require.NotNil(t, updated.Relationship.Description)
	require.Equal(t, "lost touch", *updated.Relationship.Description)
	require.Equal(t, "Friend", updated.Relationship.RelationshipName)
}

func TestRelationshipHandler_DeleteEdge(t *testing.T) {
	env := setupRelationshipTestEnv(t)
	r := newRelationshipRouter(env)

	path := "/api/persons/" + itoa(env.alice.ID) + "/relationships"
	w := doJSON(t, r, http.MethodPost, path, map[string]any{
		"related_person_id":    env.bob.ID,
		"relationship_type_id": env.friend.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Relationship dto.RelationshipEdgeDTO `json:"relationship"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodDelete, "/api/relationships/"+itoa(created.Relationship.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/relationships/"+itoa(created.Relationship.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, path, nil)
	require.Empty(t, decodeEdges(t, w))
}
