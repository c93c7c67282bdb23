package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/studylit/internal/models"
)

type todayResponse struct {
	Todos    []models.ProgressEntry `json:"todos"`
	OtherDay []models.Template      `json:"other_day"`
}

func (h *handler) handleToday(c *gin.Context) {
	hour, ok := h.rolloverHour(c)
	if !ok {
		return
	}

	entries, err := h.Todos.Today(c, userID(c), hour)
	if err != nil {
		abortWithError(c, err)
		return
	}
	other, err := h.Todos.OtherDayTemplates(c, userID(c), hour)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, todayResponse{Todos: entries, OtherDay: other})
}

func (h *handler) handleToggle(c *gin.Context) {
	hour, ok := h.rolloverHour(c)
	if !ok {
		return
	}

	entries, err := h.Todos.Toggle(c, userID(c), c.Param("id"), hour)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": entries})
}

func (h *handler) handleRollover(c *gin.Context) {
	hour, ok := h.rolloverHour(c)
	if !ok {
		return
	}

	res, err := h.Todos.RolloverProgress(c, userID(c), hour)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) handleListTemplates(c *gin.Context) {
	repeatType := models.DayType(c.Query("repeat_type"))
	includeInactive := c.Query("include_inactive") == "true"

	list, err := h.Todos.ListTemplates(c, userID(c), repeatType, includeInactive)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": list})
}

type createTemplateRequest struct {
	Title      string         `json:"title" binding:"required,max=255"`
	RepeatType models.DayType `json:"repeat_type" binding:"required"`
}

func (h *handler) handleCreateTemplate(c *gin.Context) {
	var req createTemplateRequest
	if !h.bind(c, &req) {
		return
	}

	t, err := h.Todos.CreateTemplate(c, userID(c), req.Title, req.RepeatType)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

type renameTemplateRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

func (h *handler) handleRenameTemplate(c *gin.Context) {
	var req renameTemplateRequest
	if !h.bind(c, &req) {
		return
	}

	t, err := h.Todos.RenameTemplate(c, userID(c), c.Param("id"), req.Title)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) handleDeactivateTemplate(c *gin.Context) {
	hour, ok := h.rolloverHour(c)
	if !ok {
		return
	}

	t, err := h.Todos.DeactivateTemplate(c, userID(c), c.Param("id"), hour)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) handleHistory(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	records, err := h.Todos.History(c, userID(c), from, to)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records})
}
