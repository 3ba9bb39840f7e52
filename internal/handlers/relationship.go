package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkobayashi/relationship-tracker-api/internal/dto"
	apierrors "github.com/mkobayashi/relationship-tracker-api/internal/errors"
	"github.com/mkobayashi/relationship-tracker-api/internal/services"
	"github.com/mkobayashi/relationship-tracker-api/internal/utils"
)

// RelationshipHandler coordinates vocabulary and edge HTTP handlers.
type RelationshipHandler struct {
	relationshipService *services.RelationshipService
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(relationshipService *services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{
		relationshipService: relationshipService,
	}
}

// ListRelationshipTypes returns the seeded vocabulary ordered by name.
func (h *RelationshipHandler) ListRelationshipTypes(c *gin.Context) {
	types, err := h.relationshipService.ListTypes()
	if err != nil {
		respondRelationshipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"relationships": dto.ToRelationshipTypeDTOs(types)})
}

// ListPersonRelationships returns the edges attached to a person as subject,
// in insertion order, each carrying the denormalized relationship name.
func (h *RelationshipHandler) ListPersonRelationships(c *gin.Context) {
	personID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid person ID")
		return
	}

	edges, err := h.relationshipService.ListForPerson(personID)
	if err != nil {
		respondRelationshipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"relationships": dto.ToRelationshipEdgeDTOs(edges)})
}

// AddRelationship creates a directed edge from the person in the path to the
// related person in the body.
func (h *RelationshipHandler) AddRelationship(c *gin.Context) {
	type AddRelationshipRequest struct {
		RelatedPersonID    uint64  `json:"related_person_id" binding:"required"`
		RelationshipTypeID uint64  `json:"relationship_type_id" binding:"required"`
		Date               *string `json:"date"`
		Description        *string `json:"description"`
		Current            *bool   `json:"current"`
	}

	personID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid person ID")
		return
	}

	var req AddRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "related_person_id and relationship_type_id are required")
		return
	}

	date, err := utils.ParseDatePtr(req.Date)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	edge, err := h.relationshipService.AddEdge(services.AddEdgeInput{
		PersonID:           personID,
		RelatedPersonID:    req.RelatedPersonID,
		RelationshipTypeID: req.RelationshipTypeID,
		Date:               date,
		Description:        req.Description,
		Current:            req.Current,
	})
	if err != nil {
		respondRelationshipError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"relationship": dto.ToRelationshipEdgeDTO(*edge)})
}

// UpdateRelationship applies a partial update to an edge; the two endpoint
// persons are immutable.
func (h *RelationshipHandler) UpdateRelationship(c *gin.Context) {
	type UpdateRelationshipRequest struct {
		RelationshipTypeID *uint64 `json:"relationship_type_id"`
		Date               *string `json:"date"`
		Description        *string `json:"description"`
		Current            *bool   `json:"current"`
	}

	edgeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid relationship ID")
		return
	}

	var req UpdateRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, err := utils.ParseDatePtr(req.Date)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	edge, err := h.relationshipService.UpdateEdge(edgeID, services.UpdateEdgeInput{
		RelationshipTypeID: req.RelationshipTypeID,
		Date:               date,
		Description:        req.Description,
		Current:            req.Current,
	})
	if err != nil {
		respondRelationshipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"relationship": dto.ToRelationshipEdgeDTO(*edge)})
}

// DeleteRelationship removes an edge.
func (h *RelationshipHandler) DeleteRelationship(c *gin.Context) {
	edgeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid relationship ID")
		return
	}

	if err := h.relationshipService.DeleteEdge(edgeID); err != nil {
		respondRelationshipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Relationship deleted"})
}

func respondRelationshipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSelfRelationship):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPersonNotFound),
		errors.Is(err, services.ErrRelationshipTypeNotFound),
		errors.Is(err, services.ErrEdgeNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.StorageError(c)
	}
}
