package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/courseloop/learning-service/internal/events"
	"github.com/courseloop/learning-service/internal/models"
	"github.com/courseloop/learning-service/internal/repositories"
	"github.com/courseloop/learning-service/internal/validator"
)

type quizService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewQuizService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) QuizService {
	return &quizService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *quizService) ListQuestions(ctx context.Context, courseID uint) ([]*QuestionResponse, error) {
	questions, err := s.repo.Quiz().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	labels := []models.AnswerLabel{models.AnswerA, models.AnswerB, models.AnswerC, models.AnswerD}
	out := make([]*QuestionResponse, len(questions))
	for i, q := range questions {
		options := make([]QuestionOption, len(labels))
		for j, label := range labels {
			options[j] = QuestionOption{Key: string(label), Text: q.Option(label)}
		}
		out[i] = &QuestionResponse{
			ID:       q.ID,
			Question: q.Question,
			Options:  options,
		}
	}
	return out, nil
}

func (s *quizService) Submit(ctx context.Context, req *QuizSubmitRequest, userID uint) (int, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	questions, err := s.repo.Quiz().ListByCourse(ctx, req.CourseID)
	if err != nil {
		return 0, fmt.Errorf("failed to load question bank: %w", err)
	}
	if len(questions) == 0 {
		return 0, ErrNoQuizQuestions
	}

	// Walk the course's question bank, not the submission: answers for
	// questions outside the course are silently ignored.
	chosen := make(map[uint]models.AnswerLabel, len(req.Answers))
	for _, answer := range req.Answers {
		chosen[answer.ID] = models.AnswerLabel(answer.Answer)
	}

	correct := 0
	for _, q := range questions {
		if label, ok := chosen[q.ID]; ok && label == q.Answer {
			correct++
		}
	}

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal answers: %w", err)
	}

	score := &models.Score{
		UserID:   userID,
		CourseID: req.CourseID,
		Value:    correct,
		Answers:  answersJSON,
	}
	if err := s.repo.Score().Create(ctx, score); err != nil {
		return 0, fmt.Errorf("failed to record score: %w", err)
	}

	s.publish(ctx, events.NewEvent(events.EventQuizSubmitted, events.QuizSubmittedEvent{
		UserID:    userID,
		CourseID:  req.CourseID,
		Score:     correct,
		Questions: len(questions),
	}))

	s.logger.Info("quiz submitted",
		"user_id", userID,
		"course_id", req.CourseID,
		"score", correct,
		"questions", len(questions))

	return correct, nil
}

func (s *quizService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "type", event.Type, "error", err)
	}
}
