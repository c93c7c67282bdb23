package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/studylit/internal/config"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/notes"
	"github.com/julianstephens/studylit/internal/profile"
	"github.com/julianstephens/studylit/internal/study"
	"github.com/julianstephens/studylit/internal/todo"
)

// Services bundles what the handlers call into.
type Services struct {
	Todos    *todo.Service
	Study    *study.Service
	Notes    *notes.Service
	Profiles *profile.Service
}

type handler struct {
	Services
}

// NewRouter builds the gin engine with every /api/v1 route registered.
func NewRouter(svc Services, auth *Authenticator, env string) *gin.Engine {
	if env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(requestLogger)
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": constants.Version})
	})

	h := &handler{Services: svc}
	api := router.Group(constants.APIPrefix, auth.Middleware)

	api.GET("/todos/today", h.handleToday)
	api.POST("/todos/:id/toggle", h.handleToggle)
	api.POST("/todos/rollover", h.handleRollover)

	api.GET("/templates", h.handleListTemplates)
	api.POST("/templates", h.handleCreateTemplate)
	api.PATCH("/templates/:id", h.handleRenameTemplate)
	api.DELETE("/templates/:id", h.handleDeactivateTemplate)
	api.GET("/history", h.handleHistory)

	api.GET("/sessions", h.handleListSessions)
	api.POST("/sessions", h.handleLogSession)
	api.GET("/sessions/totals", h.handleSessionTotals)
	api.DELETE("/sessions/:id", h.handleDeleteSession)

	api.GET("/plans", h.handleListPlans)
	api.POST("/plans", h.handleCreatePlan)
	api.PUT("/plans/:id", h.handleUpdatePlan)
	api.DELETE("/plans/:id", h.handleDeletePlan)

	api.GET("/notes", h.handleListNotes)
	api.POST("/notes", h.handleAddNote)
	api.PATCH("/notes/:id", h.handlePinNote)
	api.DELETE("/notes/:id", h.handleDeleteNote)

	api.GET("/profile", h.handleGetProfile)
	api.PUT("/profile", h.handleSaveProfile)
	api.GET("/stats", h.handleStats)

	return router
}

// rolloverHour loads the caller's effective rollover hour, aborting the
// request on failure.
func (h *handler) rolloverHour(c *gin.Context) (int, bool) {
	hour, err := h.Profiles.RolloverHour(c, userID(c))
	if err != nil {
		abortWithError(c, err)
		return 0, false
	}
	return hour, true
}

func (h *handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return false
	}
	return true
}

// dateRange reads and validates the from/to query parameters.
func dateRange(c *gin.Context) (string, string, bool) {
	from, to := c.Query("from"), c.Query("to")
	if err := study.CheckRange(from, to); err != nil {
		abort(c, newBadRequestError(err.Error()))
		return "", "", false
	}
	return from, to, true
}
