package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobdeck/internal/model"
	"jobdeck/internal/search"
)

type searchRequest struct {
	Query     string   `json:"query" binding:"required"`
	Platforms []string `json:"platforms"`
	Limit     int      `json:"limit"`
	AutoSave  *bool    `json:"autoSave"`
}

type searchResponse struct {
	Results []model.JobPosting `json:"results"`
	Saved   int                `json:"saved"`
}

// runSearch is the POST /api/v1/search endpoint. Platforms default to
// indeed+glassdoor and autoSave to true, matching what the dashboard UI
// sends when the user leaves the options untouched.
//
// A gateway failure yields zero results and an error; persistence failures
// only lower the saved count, never the result list.
func (h *Handler) runSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if len(req.Platforms) == 0 {
		req.Platforms = []string{string(model.PlatformIndeed), string(model.PlatformGlassdoor)}
	}
	platforms := make([]model.Platform, 0, len(req.Platforms))
	for _, raw := range req.Platforms {
		p, err := model.ParsePlatform(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		platforms = append(platforms, p)
	}

	autoSave := true
	if req.AutoSave != nil {
		autoSave = *req.AutoSave
	}

	results, err := h.search.Search(c.Request.Context(), req.Query, search.Options{
		Platforms: platforms,
		Limit:     req.Limit,
	})
	if err != nil {
		var ve *search.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
			return
		}
		h.log.Error().Err(err).Str("query", req.Query).Msg("search failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	saved := 0
	if autoSave && len(results) > 0 {
		saved = h.jobs.UpsertBatch(c.Request.Context(), results)
	}

	c.JSON(http.StatusOK, searchResponse{Results: results, Saved: saved})
}
