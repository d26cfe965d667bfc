// Package api exposes the jobdeck backend over HTTP.
//
// Routes (all under /api/v1):
//
//	POST   /search                    → run the search pipeline, optionally auto-save
//	GET    /jobs                      → list stored jobs (platform/locationType/text filters)
//	GET    /jobs/:id                  → fetch one job
//	DELETE /jobs/:id                  → remove a job
//	PATCH  /jobs/:id/score            → set an externally computed match score
//	GET    /applications              → list applications (optional status filter)
//	POST   /applications              → open an application for a job
//	POST   /applications/:id/move     → move a card through the Kanban board
//	POST   /applications/:id/note     → set the free-text note
//	GET    /resumes                   → list resume metadata
//	POST   /resumes                   → register a resume
//	POST   /resumes/:id/default       → mark a resume as the default
//	DELETE /resumes/:id               → remove a resume
//	GET    /searches                  → list saved searches
//	POST   /searches                  → create a saved search
//	POST   /searches/:id/active       → enable/disable a saved search
//	DELETE /searches/:id              → remove a saved search
//	GET    /profile                   → fetch the candidate profile
//	PUT    /profile                   → replace the candidate profile
//	PUT    /profile/personal          → replace the personal info section
//	PUT    /profile/search-preferences → replace the search preferences section
//	PUT    /profile/answers           → replace the common answers section
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"jobdeck/internal/profile"
	"jobdeck/internal/resume"
	"jobdeck/internal/search"
	"jobdeck/internal/store"
	"jobdeck/internal/tracker"
)

const version = "1.0.0"

// Handler holds the services the routes delegate to.
type Handler struct {
	search   *search.Service
	jobs     *store.JobStore
	searches *store.SavedSearchStore
	apps     *tracker.Service
	resumes  *resume.Store
	profile  *profile.Store
	log      zerolog.Logger
}

// NewHandler constructs the handler with its dependencies.
func NewHandler(
	svc *search.Service,
	jobs *store.JobStore,
	searches *store.SavedSearchStore,
	apps *tracker.Service,
	resumes *resume.Store,
	prof *profile.Store,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		search:   svc,
		jobs:     jobs,
		searches: searches,
		apps:     apps,
		resumes:  resumes,
		profile:  prof,
		log:      log.With().Str("component", "api").Logger(),
	}
}

// Router builds the gin engine with all routes mounted.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", healthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/search", h.runSearch)

		v1.GET("/jobs", h.listJobs)
		v1.GET("/jobs/:id", h.getJob)
		v1.DELETE("/jobs/:id", h.deleteJob)
		v1.PATCH("/jobs/:id/score", h.setMatchScore)

		v1.GET("/applications", h.listApplications)
		v1.POST("/applications", h.createApplication)
		v1.POST("/applications/:id/move", h.moveApplication)
		v1.POST("/applications/:id/note", h.noteApplication)

		v1.GET("/resumes", h.listResumes)
		v1.POST("/resumes", h.createResume)
		v1.POST("/resumes/:id/default", h.setDefaultResume)
		v1.DELETE("/resumes/:id", h.deleteResume)

		v1.GET("/searches", h.listSavedSearches)
		v1.POST("/searches", h.createSavedSearch)
		v1.POST("/searches/:id/active", h.setSavedSearchActive)
		v1.DELETE("/searches/:id", h.deleteSavedSearch)

		v1.GET("/profile", h.getProfile)
		v1.PUT("/profile", h.putProfile)
		v1.PUT("/profile/personal", h.putPersonalInfo)
		v1.PUT("/profile/search-preferences", h.putSearchPreferences)
		v1.PUT("/profile/answers", h.putCommonAnswers)
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "jobdeck",
		"version": version,
	})
}
