package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/studylit/internal/profile"
	"github.com/julianstephens/studylit/internal/study"
)

func (h *handler) handleListSessions(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	sessions, err := h.Study.ListSessions(c, userID(c), from, to)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

type logSessionRequest struct {
	Minutes int `json:"minutes"`
}

func (h *handler) handleLogSession(c *gin.Context) {
	var req logSessionRequest
	if !h.bind(c, &req) {
		return
	}
	hour, ok := h.rolloverHour(c)
	if !ok {
		return
	}

	sess, err := h.Study.LogSession(c, userID(c), req.Minutes, hour)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *handler) handleSessionTotals(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	totals, err := h.Study.DailyTotals(c, userID(c), from, to)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totals": totals})
}

func (h *handler) handleDeleteSession(c *gin.Context) {
	if err := h.Study.DeleteSession(c, userID(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) handleListPlans(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	plans, err := h.Study.ListPlans(c, userID(c), from, to)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *handler) handleCreatePlan(c *gin.Context) {
	var req study.PlanInput
	if !h.bind(c, &req) {
		return
	}

	p, err := h.Study.CreatePlan(c, userID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handler) handleUpdatePlan(c *gin.Context) {
	var req study.PlanInput
	if !h.bind(c, &req) {
		return
	}

	p, err := h.Study.UpdatePlan(c, userID(c), c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) handleDeletePlan(c *gin.Context) {
	if err := h.Study.DeletePlan(c, userID(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) handleStats(c *gin.Context) {
	p, err := h.Profiles.Get(c, userID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	sum, err := h.Study.Summary(c, userID(c), profile.EffectiveRolloverHour(p), p.ExamDate)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
