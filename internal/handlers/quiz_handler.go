package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseloop/learning-service/internal/services"
	"github.com/courseloop/learning-service/internal/utils"
)

type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
	}
}

// ListQuestions returns a course's quiz questions without answers.
func (h *QuizHandler) ListQuestions(c *gin.Context) {
	courseID := h.parseIDParam(c, "courseId")
	if courseID == 0 {
		return
	}

	questions, err := h.quizService.ListQuestions(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// SubmitQuiz scores an answer set and records the result.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.QuizSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting quiz", "user_id", userID, "course_id", req.CourseID)

	score, err := h.quizService.Submit(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quiz submitted",
		"score":   score,
	})
}
