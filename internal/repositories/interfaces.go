package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/courseloop/learning-service/internal/models"
)

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a uniqueness constraint is violated.
var ErrDuplicate = errors.New("record already exists")

// IsNotFoundError reports whether err is a repository not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is a uniqueness violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type CourseRepository interface {
	List(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id uint) (*models.Course, error)
}

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id uint) (*models.Note, error)

	// GetByShareToken loads a note with its owner and the parent course of
	// its video.
	GetByShareToken(ctx context.Context, token string) (*models.Note, error)

	ListByOwner(ctx context.Context, userID uint) ([]*models.Note, error)
	ListByOwnerAndVideo(ctx context.Context, userID, videoID uint) ([]*models.Note, error)

	// ListPublicByVideo returns public and shared notes with owners
	// preloaded, ordered by rating descending.
	ListPublicByVideo(ctx context.Context, videoID uint) ([]*models.Note, error)

	// The mutating operations below are single conditional writes matching
	// both id and owner; they report the number of rows affected so callers
	// can distinguish a miss from a hit without a prior read.
	UpdateContent(ctx context.Context, id, ownerID uint, content string) (int64, error)
	Delete(ctx context.Context, id, ownerID uint) (int64, error)

	// MakePublic transitions a private note to public with the given rating.
	// Affects zero rows when the note is missing, foreign, or already past
	// private.
	MakePublic(ctx context.Context, id, ownerID uint, rating float64) (int64, error)

	// SetShareToken transitions a note to shared, assigning the token only
	// when none exists yet so concurrent calls converge on one token.
	SetShareToken(ctx context.Context, id, ownerID uint, token string) (int64, error)
}

type QuizRepository interface {
	ListByCourse(ctx context.Context, courseID uint) ([]*models.QuizQuestion, error)
}

// LeaderboardEntry is one leaderboard row joined with its owner's public name.
type LeaderboardEntry struct {
	ScoreID   uint      `json:"score_id"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

type ScoreRepository interface {
	Create(ctx context.Context, score *models.Score) error

	// ListByUser returns the user's scores with courses preloaded, most
	// recent first.
	ListByUser(ctx context.Context, userID uint) ([]*models.Score, error)

	// TopByCourse returns up to limit leaderboard rows ordered by value
	// descending, ties broken by earliest creation.
	TopByCourse(ctx context.Context, courseID uint, limit int) ([]*LeaderboardEntry, error)
}
