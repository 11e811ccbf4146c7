package services

import "errors"

// Sentinel errors returned by services. Handlers map these onto HTTP statuses
// in one place; anything else becomes a generic 500.
var (
	// Validation
	ErrInvalidInput = errors.New("invalid input")

	// Auth
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")

	// Notes
	ErrNoteNotFound     = errors.New("note not found")
	ErrNoteAccessDenied = errors.New("not authorized to modify this note")
	ErrEmptyContent     = errors.New("content cannot be empty")

	// Courses and quizzes
	ErrCourseNotFound  = errors.New("course not found")
	ErrNoQuizQuestions = errors.New("course has no quiz questions")
)
