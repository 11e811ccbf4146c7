package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/courseloop/learning-service/internal/services"
	"github.com/courseloop/learning-service/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	noteHandler    *NoteHandler
	quizHandler    *QuizHandler
	scoreHandler   *ScoreHandler
	courseHandler  *CourseHandler
	authMiddleware *AuthMiddleware
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		noteHandler:    NewNoteHandler(serviceManager.Note(), logger),
		quizHandler:    NewQuizHandler(serviceManager.Quiz(), logger),
		scoreHandler:   NewScoreHandler(serviceManager.Score(), logger),
		courseHandler:  NewCourseHandler(serviceManager.Course(), logger),
		authMiddleware: NewAuthMiddleware(serviceManager.Auth()),
	}
}

// SetupRoutes sets up all API routes. Anonymous routes are registered before
// the guarded groups; everything mutating goes through RequireAuth.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	requireAuth := hm.authMiddleware.RequireAuth()

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/signup", hm.authHandler.Signup)
		auth.POST("/login", hm.authHandler.Login)
	}

	// Note routes. Public routes first so they are not shadowed by the
	// parameterized protected ones.
	notes := router.Group("/notes")
	{
		notes.GET("/public/video/:videoId", hm.noteHandler.ListPublicNotesForVideo)
		notes.GET("/public/:shareId", hm.noteHandler.GetSharedNote)

		notes.POST("/create", requireAuth, hm.noteHandler.CreateNote)
		notes.GET("/all", requireAuth, hm.noteHandler.ListNotes)
		notes.POST("/make-public/:id", requireAuth, hm.noteHandler.MakeNotePublic)
		notes.POST("/share/:id", requireAuth, hm.noteHandler.ShareNote)
		notes.GET("/:videoId", requireAuth, hm.noteHandler.ListNotesForVideo)
		notes.PUT("/:noteId", requireAuth, hm.noteHandler.UpdateNote)
		notes.DELETE("/:noteId", requireAuth, hm.noteHandler.DeleteNote)
	}

	// Quiz routes
	quiz := router.Group("/quiz")
	{
		quiz.POST("/submit", requireAuth, hm.quizHandler.SubmitQuiz)
		quiz.GET("/:courseId", hm.quizHandler.ListQuestions)
	}

	// Score routes
	scores := router.Group("/scores")
	{
		scores.GET("/me", requireAuth, hm.scoreHandler.MyScores)
		scores.GET("/leaderboard/:courseId", hm.scoreHandler.Leaderboard)
		scores.GET("/leaderboard/:courseId/export", hm.scoreHandler.ExportLeaderboard)
	}

	// Course catalog
	courses := router.Group("/courses")
	{
		courses.GET("", hm.courseHandler.ListCourses)
		courses.GET("/:id", hm.courseHandler.GetCourse)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "learning-service",
		})
	})
}
