package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/courseloop/learning-service/internal/repositories"
)

// DefaultLeaderboardLimit matches the classic top-5 course leaderboard.
const DefaultLeaderboardLimit = 5

// MaxLeaderboardLimit caps client-requested leaderboard sizes.
const MaxLeaderboardLimit = 100

type scoreService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewScoreService(repo repositories.Repository, logger *slog.Logger) ScoreService {
	return &scoreService{repo: repo, logger: logger}
}

func (s *scoreService) ScoresForUser(ctx context.Context, userID uint) ([]*ScoreWithCourse, error) {
	scores, err := s.repo.Score().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}

	out := make([]*ScoreWithCourse, len(scores))
	for i, score := range scores {
		course := score.Course
		out[i] = &ScoreWithCourse{
			ID:        score.ID,
			CourseID:  score.CourseID,
			Value:     score.Value,
			CreatedAt: score.CreatedAt,
			Course:    &course,
		}
	}
	return out, nil
}

func (s *scoreService) Leaderboard(ctx context.Context, courseID uint, limit int) ([]*LeaderboardRow, error) {
	limit = clampLimit(limit)

	entries, err := s.repo.Score().TopByCourse(ctx, courseID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	rows := make([]*LeaderboardRow, len(entries))
	for i, entry := range entries {
		rows[i] = &LeaderboardRow{
			UserName:  entry.UserName,
			Value:     entry.Value,
			CreatedAt: entry.CreatedAt,
		}
	}
	return rows, nil
}

// ExportLeaderboard renders the course leaderboard as an xlsx workbook.
func (s *scoreService) ExportLeaderboard(ctx context.Context, courseID uint, limit int) ([]byte, error) {
	entries, err := s.repo.Score().TopByCourse(ctx, courseID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard for export: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close workbook", "error", err)
		}
	}()

	sheet := "Leaderboard"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Rank", "User", "Score", "Submitted"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, entry := range entries {
		row := i + 2
		values := []interface{}{i + 1, entry.UserName, entry.Value, entry.CreatedAt.Format("2006-01-02 15:04:05")}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("leaderboard exported", "course_id", courseID, "rows", len(entries))
	return buf.Bytes(), nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		return MaxLeaderboardLimit
	}
	return limit
}
