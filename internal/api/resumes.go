package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobdeck/internal/resume"
)

func (h *Handler) listResumes(c *gin.Context) {
	resumes, err := h.resumes.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list resumes failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, resumes)
}

func (h *Handler) createResume(c *gin.Context) {
	var body struct {
		Name     string  `json:"name" binding:"required"`
		FilePath string  `json:"filePath" binding:"required"`
		Skills   *string `json:"skills"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must contain name and filePath"})
		return
	}

	r, err := h.resumes.Create(c.Request.Context(), uuid.NewString(), body.Name, body.FilePath, body.Skills)
	if err != nil {
		h.log.Error().Err(err).Str("name", body.Name).Msg("create resume failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *Handler) setDefaultResume(c *gin.Context) {
	err := h.resumes.SetDefault(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("set default resume failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteResume(c *gin.Context) {
	err := h.resumes.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("delete resume failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.Status(http.StatusNoContent)
}
