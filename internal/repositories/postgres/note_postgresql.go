package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/courseloop/learning-service/internal/models"
	"github.com/courseloop/learning-service/internal/repositories"
)

type NotePostgreSQL struct {
	db *gorm.DB
}

func NewNotePostgreSQL(db *gorm.DB) repositories.NoteRepository {
	return &NotePostgreSQL{db: db}
}

func (r *NotePostgreSQL) Create(ctx context.Context, note *models.Note) error {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *NotePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Note, error) {
	var note models.Note
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &note, nil
}

func (r *NotePostgreSQL) GetByShareToken(ctx context.Context, token string) (*models.Note, error) {
	var note models.Note
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Video").
		Preload("Video.Course").
		Where("share_token = ?", token).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note by share token: %w", err)
	}
	return &note, nil
}

func (r *NotePostgreSQL) ListByOwner(ctx context.Context, userID uint) ([]*models.Note, error) {
	var notes []*models.Note
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (r *NotePostgreSQL) ListByOwnerAndVideo(ctx context.Context, userID, videoID uint) ([]*models.Note, error) {
	var notes []*models.Note
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes for video: %w", err)
	}
	return notes, nil
}

func (r *NotePostgreSQL) ListPublicByVideo(ctx context.Context, videoID uint) ([]*models.Note, error) {
	var notes []*models.Note
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("video_id = ? AND visibility IN ?", videoID,
			[]models.NoteVisibility{models.NotePublic, models.NoteShared}).
		Order("rating DESC NULLS LAST").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list public notes: %w", err)
	}
	return notes, nil
}

func (r *NotePostgreSQL) UpdateContent(ctx context.Context, id, ownerID uint, content string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Note{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("content", content)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update note: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *NotePostgreSQL) Delete(ctx context.Context, id, ownerID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Note{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete note: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *NotePostgreSQL) MakePublic(ctx context.Context, id, ownerID uint, rating float64) (int64, error) {
	// The visibility guard makes this a no-op for notes already past private.
	result := r.db.WithContext(ctx).
		Model(&models.Note{}).
		Where("id = ? AND user_id = ? AND visibility = ?", id, ownerID, models.NotePrivate).
		Updates(map[string]interface{}{
			"visibility": models.NotePublic,
			"rating":     rating,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to make note public: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *NotePostgreSQL) SetShareToken(ctx context.Context, id, ownerID uint, token string) (int64, error) {
	// share_token IS NULL keeps the first issued token; a concurrent second
	// caller affects zero rows and re-reads the surviving token.
	result := r.db.WithContext(ctx).
		Model(&models.Note{}).
		Where("id = ? AND user_id = ? AND share_token IS NULL", id, ownerID).
		Updates(map[string]interface{}{
			"visibility":  models.NoteShared,
			"share_token": token,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to set share token: %w", result.Error)
	}
	return result.RowsAffected, nil
}
