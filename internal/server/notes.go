package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/notes"
	"github.com/julianstephens/studylit/internal/profile"
)

func (h *handler) handleListNotes(c *gin.Context) {
	q := notes.Query{
		Search: c.Query("q"),
		Sort:   notes.SortKey(c.Query("sort")),
		Order:  notes.SortOrder(c.Query("order")),
	}

	list, err := h.Notes.List(c, userID(c), models.NoteKind(c.Query("kind")), q)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": list})
}

func (h *handler) handleAddNote(c *gin.Context) {
	var req notes.Input
	if !h.bind(c, &req) {
		return
	}

	n, err := h.Notes.Add(c, userID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

type pinNoteRequest struct {
	Pinned *bool `json:"pinned" binding:"required"`
}

func (h *handler) handlePinNote(c *gin.Context) {
	var req pinNoteRequest
	if !h.bind(c, &req) {
		return
	}

	n, err := h.Notes.SetPinned(c, userID(c), c.Param("id"), *req.Pinned)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *handler) handleDeleteNote(c *gin.Context) {
	if err := h.Notes.Delete(c, userID(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) handleGetProfile(c *gin.Context) {
	p, err := h.Profiles.Get(c, userID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) handleSaveProfile(c *gin.Context) {
	var req profile.Update
	if !h.bind(c, &req) {
		return
	}

	p, err := h.Profiles.Save(c, userID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
