package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobdeck/internal/model"
	"jobdeck/internal/store"
)

func (h *Handler) listSavedSearches(c *gin.Context) {
	searches, err := h.searches.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list saved searches failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, searches)
}

func (h *Handler) createSavedSearch(c *gin.Context) {
	var body struct {
		Query     string   `json:"query" binding:"required"`
		Platforms []string `json:"platforms" binding:"required,min=1"`
		Limit     int      `json:"limit"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must contain query and platforms"})
		return
	}

	for _, raw := range body.Platforms {
		if _, err := model.ParsePlatform(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if body.Limit <= 0 {
		body.Limit = 20
	}

	sv, err := h.searches.Create(c.Request.Context(), model.SavedSearch{
		ID:        uuid.NewString(),
		Query:     body.Query,
		Platforms: body.Platforms,
		Limit:     body.Limit,
	})
	if err != nil {
		h.log.Error().Err(err).Str("query", body.Query).Msg("create saved search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusCreated, sv)
}

func (h *Handler) setSavedSearchActive(c *gin.Context) {
	var body struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must contain active"})
		return
	}

	err := h.searches.SetActive(c.Request.Context(), c.Param("id"), *body.Active)
	if err != nil {
		if errors.Is(err, store.ErrSearchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("set saved search active failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteSavedSearch(c *gin.Context) {
	err := h.searches.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrSearchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("delete saved search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.Status(http.StatusNoContent)
}
