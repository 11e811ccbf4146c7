package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/courseloop/learning-service/internal/cache"
	"github.com/courseloop/learning-service/internal/models"
	"github.com/courseloop/learning-service/internal/repositories"
)

type ScorePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewScorePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ScoreRepository {
	return &ScorePostgreSQL{db: db, cacheManager: cacheManager}
}

// Create appends a score row and invalidates the course's leaderboard cache.
func (r *ScorePostgreSQL) Create(ctx context.Context, score *models.Score) error {
	if err := r.db.WithContext(ctx).Create(score).Error; err != nil {
		return fmt.Errorf("failed to create score: %w", err)
	}

	cache.InvalidateLeaderboardCache(ctx, r.cacheManager, score.CourseID)

	return nil
}

func (r *ScorePostgreSQL) ListByUser(ctx context.Context, userID uint) ([]*models.Score, error) {
	var scores []*models.Score
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&scores).Error; err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return scores, nil
}

type leaderboardRow struct {
	ScoreID     uint
	UserID      uint
	DisplayName string
	Email       string
	Value       int
	CreatedAt   time.Time
}

// TopByCourse returns leaderboard rows joined with owner names, cached per
// course and limit. Value descending, ties by earliest submission so the
// ordering is deterministic.
func (r *ScorePostgreSQL) TopByCourse(ctx context.Context, courseID uint, limit int) ([]*repositories.LeaderboardEntry, error) {
	cacheKey := fmt.Sprintf("course:%d:top:%d", courseID, limit)
	var entries []*repositories.LeaderboardEntry

	err := r.cacheManager.Leaderboard.CacheOrExecute(ctx, cacheKey, &entries, cache.LeaderboardCacheConfig.TTL, func() (interface{}, error) {
		var rows []leaderboardRow
		if err := r.db.WithContext(ctx).
			Model(&models.Score{}).
			Select("scores.id AS score_id, scores.user_id, users.display_name, users.email, scores.value, scores.created_at").
			Joins("JOIN users ON users.id = scores.user_id").
			Where("scores.course_id = ?", courseID).
			Order("scores.value DESC, scores.created_at ASC").
			Limit(limit).
			Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get leaderboard: %w", err)
		}

		result := make([]*repositories.LeaderboardEntry, len(rows))
		for i, row := range rows {
			owner := models.User{DisplayName: row.DisplayName, Email: row.Email}
			result[i] = &repositories.LeaderboardEntry{
				ScoreID:   row.ScoreID,
				UserID:    row.UserID,
				UserName:  owner.PublicName(),
				Value:     row.Value,
				CreatedAt: row.CreatedAt,
			}
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
