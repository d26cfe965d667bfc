package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobdeck/internal/profile"
)

func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.profile.Get(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("get profile failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) putProfile(c *gin.Context) {
	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile body"})
		return
	}

	if err := h.profile.Save(c.Request.Context(), &p); err != nil {
		h.log.Error().Err(err).Msg("save profile failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) putPersonalInfo(c *gin.Context) {
	var info profile.PersonalInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid personal info body"})
		return
	}

	p, err := h.profile.UpdatePersonalInfo(c.Request.Context(), info)
	if err != nil {
		h.log.Error().Err(err).Msg("update personal info failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) putSearchPreferences(c *gin.Context) {
	var prefs profile.SearchPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid search preferences body"})
		return
	}

	p, err := h.profile.UpdateSearchPreferences(c.Request.Context(), prefs)
	if err != nil {
		h.log.Error().Err(err).Msg("update search preferences failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) putCommonAnswers(c *gin.Context) {
	var answers profile.CommonAnswers
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid answers body"})
		return
	}

	p, err := h.profile.UpdateCommonAnswers(c.Request.Context(), answers)
	if err != nil {
		h.log.Error().Err(err).Msg("update common answers failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, p)
}
