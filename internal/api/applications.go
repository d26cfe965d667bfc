package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobdeck/internal/tracker"
)

func (h *Handler) listApplications(c *gin.Context) {
	apps, err := h.apps.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		var ve *tracker.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
			return
		}
		h.log.Error().Err(err).Msg("list applications failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *Handler) createApplication(c *gin.Context) {
	var body struct {
		JobID    string  `json:"jobId" binding:"required"`
		ResumeID *string `json:"resumeId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must contain jobId"})
		return
	}

	app, err := h.apps.Create(c.Request.Context(), uuid.NewString(), body.JobID, body.ResumeID)
	if err != nil {
		if errors.Is(err, tracker.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Str("jobId", body.JobID).Msg("create application failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *Handler) moveApplication(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must contain status"})
		return
	}

	app, err := h.apps.Move(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		h.respondTrackerError(c, err, "move application failed")
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *Handler) noteApplication(c *gin.Context) {
	var body struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	app, err := h.apps.AddNote(c.Request.Context(), c.Param("id"), body.Note)
	if err != nil {
		h.respondTrackerError(c, err, "add note failed")
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *Handler) respondTrackerError(c *gin.Context, err error, logMsg string) {
	var ve *tracker.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.Is(err, tracker.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg(logMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
	}
}
