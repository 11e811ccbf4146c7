package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the service.
const (
	EventNotePublished = "note.published"
	EventNoteShared    = "note.shared"
	EventQuizSubmitted = "quiz.submitted"
)

const eventSource = "learning-service"

// Event is the envelope published to the event bus.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an event envelope for a payload.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events. Publishing is best-effort from the
// caller's perspective; request handling never fails on a publish error.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NotePublishedEvent is emitted when a note becomes publicly visible.
type NotePublishedEvent struct {
	NoteID  uint    `json:"note_id"`
	UserID  uint    `json:"user_id"`
	VideoID uint    `json:"video_id"`
	Rating  float64 `json:"rating"`
}

// NoteSharedEvent is emitted when a share token is issued for a note.
type NoteSharedEvent struct {
	NoteID  uint `json:"note_id"`
	UserID  uint `json:"user_id"`
	VideoID uint `json:"video_id"`
}

// QuizSubmittedEvent is emitted for every recorded quiz score.
type QuizSubmittedEvent struct {
	UserID    uint `json:"user_id"`
	CourseID  uint `json:"course_id"`
	Score     int  `json:"score"`
	Questions int  `json:"questions"`
}
