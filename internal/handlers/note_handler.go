package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseloop/learning-service/internal/services"
	"github.com/courseloop/learning-service/internal/utils"
)

type NoteHandler struct {
	BaseHandler
	noteService services.NoteService
}

func NewNoteHandler(noteService services.NoteService, logger utils.Logger) *NoteHandler {
	return &NoteHandler{
		BaseHandler: NewBaseHandler(logger),
		noteService: noteService,
	}
}

// CreateNote creates a private note on a video.
func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.NoteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating note", "user_id", userID, "video_id", req.VideoID)

	note, err := h.noteService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// ListNotes returns all notes owned by the requester.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	notes, err := h.noteService.ListOwned(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

// ListNotesForVideo returns the requester's notes on one video.
func (h *NoteHandler) ListNotesForVideo(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	videoID := h.parseIDParam(c, "videoId")
	if videoID == 0 {
		return
	}

	notes, err := h.noteService.ListForVideo(c.Request.Context(), userID, videoID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

// UpdateNote replaces a note's content.
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	noteID := h.parseIDParam(c, "noteId")
	if noteID == 0 {
		return
	}

	var req services.NoteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating note", "note_id", noteID, "user_id", userID)

	note, err := h.noteService.Update(c.Request.Context(), noteID, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// DeleteNote removes a note permanently.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	noteID := h.parseIDParam(c, "noteId")
	if noteID == 0 {
		return
	}

	h.LogRequest(c, "Deleting note", "note_id", noteID, "user_id", userID)

	if err := h.noteService.Delete(c.Request.Context(), noteID, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Note deleted successfully"})
}

// MakeNotePublic publishes a note with the baseline rating.
func (h *NoteHandler) MakeNotePublic(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	noteID := h.parseIDParam(c, "id")
	if noteID == 0 {
		return
	}

	h.LogRequest(c, "Making note public", "note_id", noteID, "user_id", userID)

	note, err := h.noteService.MakePublic(c.Request.Context(), noteID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note made public successfully",
		"note":    note,
	})
}

// ShareNote issues a share link for a note.
func (h *NoteHandler) ShareNote(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	noteID := h.parseIDParam(c, "id")
	if noteID == 0 {
		return
	}

	h.LogRequest(c, "Sharing note", "note_id", noteID, "user_id", userID)

	resp, err := h.noteService.Share(c.Request.Context(), noteID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListPublicNotesForVideo returns public notes on a video, best-rated first.
// No authentication required.
func (h *NoteHandler) ListPublicNotesForVideo(c *gin.Context) {
	videoID := h.parseIDParam(c, "videoId")
	if videoID == 0 {
		return
	}

	notes, err := h.noteService.ListPublicForVideo(c.Request.Context(), videoID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

// GetSharedNote resolves a share token to its note. No authentication
// required; the token itself is the capability.
func (h *NoteHandler) GetSharedNote(c *gin.Context) {
	shareID := c.Param("shareId")
	if shareID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid shareId"})
		return
	}

	note, err := h.noteService.GetByShareToken(c.Request.Context(), shareID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}
