package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/courseloop/learning-service/internal/services"
	"github.com/courseloop/learning-service/internal/utils"
)

type ScoreHandler struct {
	BaseHandler
	scoreService services.ScoreService
}

func NewScoreHandler(scoreService services.ScoreService, logger utils.Logger) *ScoreHandler {
	return &ScoreHandler{
		BaseHandler:  NewBaseHandler(logger),
		scoreService: scoreService,
	}
}

// MyScores returns the requester's scores with course info.
func (h *ScoreHandler) MyScores(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	scores, err := h.scoreService.ScoresForUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, scores)
}

// Leaderboard returns the top scores for a course. No authentication
// required.
func (h *ScoreHandler) Leaderboard(c *gin.Context) {
	courseID := h.parseIDParam(c, "courseId")
	if courseID == 0 {
		return
	}

	limit := services.DefaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid limit"})
			return
		}
		limit = parsed
	}

	rows, err := h.scoreService.Leaderboard(c.Request.Context(), courseID, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ExportLeaderboard streams the course leaderboard as an xlsx workbook.
func (h *ScoreHandler) ExportLeaderboard(c *gin.Context) {
	courseID := h.parseIDParam(c, "courseId")
	if courseID == 0 {
		return
	}

	h.LogRequest(c, "Exporting leaderboard", "course_id", courseID)

	data, err := h.scoreService.ExportLeaderboard(c.Request.Context(), courseID, services.MaxLeaderboardLimit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("leaderboard-course-%d.xlsx", courseID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
