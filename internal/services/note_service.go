package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/courseloop/learning-service/internal/events"
	"github.com/courseloop/learning-service/internal/models"
	"github.com/courseloop/learning-service/internal/repositories"
	"github.com/courseloop/learning-service/internal/validator"
)

const shareTokenBytes = 16

type noteService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	publisher    events.EventPublisher
	shareBaseURL string
}

func NewNoteService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, shareBaseURL string) NoteService {
	return &noteService{
		repo:         repo,
		logger:       logger,
		validator:    validator,
		publisher:    publisher,
		shareBaseURL: strings.TrimRight(shareBaseURL, "/"),
	}
}

func (s *noteService) Create(ctx context.Context, req *NoteCreateRequest, userID uint) (*models.Note, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	note := &models.Note{
		UserID:     userID,
		VideoID:    req.VideoID,
		Content:    req.Content,
		Visibility: models.NotePrivate,
	}
	if err := s.repo.Note().Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.logger.Info("note created", "note_id", note.ID, "user_id", userID, "video_id", req.VideoID)
	return note, nil
}

func (s *noteService) Update(ctx context.Context, noteID, userID uint, req *NoteUpdateRequest) (*models.Note, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	affected, err := s.repo.Note().UpdateContent(ctx, noteID, userID, req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	if affected == 0 {
		return nil, s.classifyMiss(ctx, noteID, userID)
	}

	note, err := s.repo.Note().GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload note: %w", err)
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, noteID, userID uint) error {
	affected, err := s.repo.Note().Delete(ctx, noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if affected == 0 {
		return s.classifyMiss(ctx, noteID, userID)
	}

	s.logger.Info("note deleted", "note_id", noteID, "user_id", userID)
	return nil
}

func (s *noteService) MakePublic(ctx context.Context, noteID, userID uint) (*models.Note, error) {
	affected, err := s.repo.Note().MakePublic(ctx, noteID, userID, models.DefaultPublicRating)
	if err != nil {
		return nil, fmt.Errorf("failed to make note public: %w", err)
	}

	note, getErr := s.repo.Note().GetByID(ctx, noteID)
	if getErr != nil {
		if repositories.IsNotFoundError(getErr) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to reload note: %w", getErr)
	}

	if affected == 0 {
		if note.UserID != userID {
			return nil, ErrNoteAccessDenied
		}
		// Already public or shared: re-applying is a no-op, never a
		// regression of a shared note.
		return note, nil
	}

	s.publish(ctx, events.NewEvent(events.EventNotePublished, events.NotePublishedEvent{
		NoteID:  note.ID,
		UserID:  note.UserID,
		VideoID: note.VideoID,
		Rating:  models.DefaultPublicRating,
	}))
	s.logger.Info("note made public", "note_id", noteID, "user_id", userID)
	return note, nil
}

func (s *noteService) Share(ctx context.Context, noteID, userID uint) (*ShareNoteResponse, error) {
	token, err := generateShareToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate share token: %w", err)
	}

	affected, err := s.repo.Note().SetShareToken(ctx, noteID, userID, token)
	if err != nil {
		return nil, fmt.Errorf("failed to share note: %w", err)
	}

	if affected == 0 {
		note, getErr := s.repo.Note().GetByID(ctx, noteID)
		if getErr != nil {
			if repositories.IsNotFoundError(getErr) {
				return nil, ErrNoteNotFound
			}
			return nil, fmt.Errorf("failed to reload note: %w", getErr)
		}
		if note.UserID != userID {
			return nil, ErrNoteAccessDenied
		}
		if note.ShareToken == nil {
			return nil, fmt.Errorf("share update affected no rows for note %d", noteID)
		}
		// A token already exists (possibly issued by a concurrent call);
		// hand back the surviving one.
		return &ShareNoteResponse{
			Message:  "Note shared successfully!",
			ShareURL: s.shareURL(*note.ShareToken),
		}, nil
	}

	note, err := s.repo.Note().GetByID(ctx, noteID)
	if err == nil {
		s.publish(ctx, events.NewEvent(events.EventNoteShared, events.NoteSharedEvent{
			NoteID:  note.ID,
			UserID:  note.UserID,
			VideoID: note.VideoID,
		}))
	}

	s.logger.Info("note shared", "note_id", noteID, "user_id", userID)
	return &ShareNoteResponse{
		Message:  "Note shared successfully!",
		ShareURL: s.shareURL(token),
	}, nil
}

func (s *noteService) ListOwned(ctx context.Context, userID uint) ([]*models.Note, error) {
	notes, err := s.repo.Note().ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (s *noteService) ListForVideo(ctx context.Context, userID, videoID uint) ([]*models.Note, error) {
	notes, err := s.repo.Note().ListByOwnerAndVideo(ctx, userID, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes for video: %w", err)
	}
	return notes, nil
}

func (s *noteService) ListPublicForVideo(ctx context.Context, videoID uint) ([]*PublicNoteResponse, error) {
	notes, err := s.repo.Note().ListPublicByVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list public notes: %w", err)
	}

	out := make([]*PublicNoteResponse, len(notes))
	for i, note := range notes {
		out[i] = &PublicNoteResponse{
			ID:        note.ID,
			VideoID:   note.VideoID,
			Content:   note.Content,
			Rating:    note.Rating,
			CreatedAt: note.CreatedAt,
			UserName:  note.User.PublicName(),
		}
	}
	return out, nil
}

func (s *noteService) GetByShareToken(ctx context.Context, token string) (*SharedNoteResponse, error) {
	note, err := s.repo.Note().GetByShareToken(ctx, token)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get shared note: %w", err)
	}
	if note.Visibility != models.NoteShared {
		return nil, ErrNoteNotFound
	}

	var courseTitle *string
	if note.Video.Course.Title != "" {
		title := note.Video.Course.Title
		courseTitle = &title
	}

	return &SharedNoteResponse{
		Content:     note.Content,
		CourseTitle: courseTitle,
		User:        note.User.PublicName(),
	}, nil
}

// classifyMiss turns a zero-row conditional write into the right error:
// the note does not exist, or it belongs to someone else.
func (s *noteService) classifyMiss(ctx context.Context, noteID, userID uint) error {
	note, err := s.repo.Note().GetByID(ctx, noteID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to classify note write miss: %w", err)
	}
	if note.UserID != userID {
		return ErrNoteAccessDenied
	}
	return fmt.Errorf("note write affected no rows for note %d", noteID)
}

func (s *noteService) shareURL(token string) string {
	return fmt.Sprintf("%s/%s", s.shareBaseURL, token)
}

func (s *noteService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "type", event.Type, "error", err)
	}
}

func generateShareToken() (string, error) {
	b := make([]byte, shareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
