package services

import (
	"context"
	"time"

	"github.com/courseloop/learning-service/internal/models"
	"github.com/courseloop/learning-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use validator request types
type SignupRequest = validator.SignupRequest
type LoginRequest = validator.LoginRequest
type NoteCreateRequest = validator.NoteCreateRequest
type NoteUpdateRequest = validator.NoteUpdateRequest
type QuizSubmitRequest = validator.QuizSubmitRequest
type QuizAnswer = validator.QuizAnswer

type UserResponse struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// PublicNoteResponse is a note as shown to non-owners: owner attribution is
// the display name only.
type PublicNoteResponse struct {
	ID        uint      `json:"id"`
	VideoID   uint      `json:"video_id"`
	Content   string    `json:"content"`
	Rating    *float64  `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
}

// SharedNoteResponse is the anonymous view behind a share token. No internal
// ids are exposed.
type SharedNoteResponse struct {
	Content     string  `json:"content"`
	CourseTitle *string `json:"courseTitle"`
	User        string  `json:"user"`
}

type ShareNoteResponse struct {
	Message  string `json:"message"`
	ShareURL string `json:"shareUrl"`
}

type QuestionOption struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// QuestionResponse is a quiz question as sent to clients: the correct option
// label is deliberately absent.
type QuestionResponse struct {
	ID       uint             `json:"id"`
	Question string           `json:"question"`
	Options  []QuestionOption `json:"options"`
}

type ScoreWithCourse struct {
	ID        uint           `json:"id"`
	CourseID  uint           `json:"course_id"`
	Value     int            `json:"score"`
	CreatedAt time.Time      `json:"created_at"`
	Course    *models.Course `json:"course,omitempty"`
}

type LeaderboardRow struct {
	UserName  string    `json:"user_name"`
	Value     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// Register creates a new identity with a bcrypt password hash.
	Register(ctx context.Context, req *SignupRequest) (*models.User, error)

	// Authenticate checks credentials and issues a signed session token.
	Authenticate(ctx context.Context, req *LoginRequest) (*AuthResponse, error)

	// Verify validates a bearer token and returns the bound identity id.
	// Tokens cannot be revoked before their natural expiry.
	Verify(token string) (uint, error)
}

type NoteService interface {
	Create(ctx context.Context, req *NoteCreateRequest, userID uint) (*models.Note, error)
	Update(ctx context.Context, noteID, userID uint, req *NoteUpdateRequest) (*models.Note, error)
	Delete(ctx context.Context, noteID, userID uint) error

	MakePublic(ctx context.Context, noteID, userID uint) (*models.Note, error)
	Share(ctx context.Context, noteID, userID uint) (*ShareNoteResponse, error)

	ListOwned(ctx context.Context, userID uint) ([]*models.Note, error)
	ListForVideo(ctx context.Context, userID, videoID uint) ([]*models.Note, error)
	ListPublicForVideo(ctx context.Context, videoID uint) ([]*PublicNoteResponse, error)
	GetByShareToken(ctx context.Context, token string) (*SharedNoteResponse, error)
}

type QuizService interface {
	// ListQuestions returns a course's questions without correct answers.
	ListQuestions(ctx context.Context, courseID uint) ([]*QuestionResponse, error)

	// Submit scores an answer set and records a new Score row. Not
	// idempotent: retries record additional rows.
	Submit(ctx context.Context, req *QuizSubmitRequest, userID uint) (int, error)
}

type ScoreService interface {
	ScoresForUser(ctx context.Context, userID uint) ([]*ScoreWithCourse, error)
	Leaderboard(ctx context.Context, courseID uint, limit int) ([]*LeaderboardRow, error)

	// ExportLeaderboard renders the leaderboard as an xlsx workbook.
	ExportLeaderboard(ctx context.Context, courseID uint, limit int) ([]byte, error)
}

type CourseService interface {
	List(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id uint) (*models.Course, error)
}

// ServiceManager provides access to all services.
type ServiceManager interface {
	Auth() AuthService
	Note() NoteService
	Quiz() QuizService
	Score() ScoreService
	Course() CourseService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
