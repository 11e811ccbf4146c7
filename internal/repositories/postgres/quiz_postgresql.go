package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/courseloop/learning-service/internal/cache"
	"github.com/courseloop/learning-service/internal/models"
	"github.com/courseloop/learning-service/internal/repositories"
)

type QuizPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewQuizPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db, cacheManager: cacheManager}
}

// quizCacheEntry re-exposes the correct answer label, which the model hides
// from API serialization, so cached question banks can still be scored.
type quizCacheEntry struct {
	models.QuizQuestion
	CorrectAnswer models.AnswerLabel `json:"correct_answer"`
}

// ListByCourse retrieves a course's question bank with caching. The bank is
// read on every quiz view and submission but changes rarely.
func (r *QuizPostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]*models.QuizQuestion, error) {
	cacheKey := fmt.Sprintf("course:%d", courseID)
	var entries []quizCacheEntry

	err := r.cacheManager.Question.CacheOrExecute(ctx, cacheKey, &entries, cache.QuestionCacheConfig.TTL, func() (interface{}, error) {
		var dbQuestions []*models.QuizQuestion
		if err := r.db.WithContext(ctx).
			Where("course_id = ?", courseID).
			Order("id ASC").
			Find(&dbQuestions).Error; err != nil {
			return nil, fmt.Errorf("failed to list quiz questions: %w", err)
		}

		cacheEntries := make([]quizCacheEntry, len(dbQuestions))
		for i, q := range dbQuestions {
			cacheEntries[i] = quizCacheEntry{QuizQuestion: *q, CorrectAnswer: q.Answer}
		}
		return cacheEntries, nil
	})
	if err != nil {
		return nil, err
	}

	questions := make([]*models.QuizQuestion, len(entries))
	for i := range entries {
		q := entries[i].QuizQuestion
		q.Answer = entries[i].CorrectAnswer
		questions[i] = &q
	}
	return questions, nil
}
