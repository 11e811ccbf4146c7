package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/courseloop/learning-service/internal/cache"
	"github.com/courseloop/learning-service/internal/models"
	"github.com/courseloop/learning-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db, cacheManager: cacheManager}
}

// List returns the course catalog with videos, cached. The catalog is
// read-only from this service's perspective.
func (r *CoursePostgreSQL) List(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course

	err := r.cacheManager.Course.CacheOrExecute(ctx, "list", &courses, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbCourses []*models.Course
		if err := r.db.WithContext(ctx).
			Preload("Videos").
			Order("id ASC").
			Find(&dbCourses).Error; err != nil {
			return nil, fmt.Errorf("failed to list courses: %w", err)
		}
		return dbCourses, nil
	})
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).
		Preload("Videos").
		First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &course, nil
}
