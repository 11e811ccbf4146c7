package models

import "time"

type AnswerLabel string

const (
	AnswerA AnswerLabel = "A"
	AnswerB AnswerLabel = "B"
	AnswerC AnswerLabel = "C"
	AnswerD AnswerLabel = "D"
)

type QuizQuestion struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course_id" gorm:"not null;index"`
	Question string `json:"question" gorm:"type:text;not null"`

	OptionA string `json:"option_a" gorm:"not null;size:500"`
	OptionB string `json:"option_b" gorm:"not null;size:500"`
	OptionC string `json:"option_c" gorm:"not null;size:500"`
	OptionD string `json:"option_d" gorm:"not null;size:500"`

	// Answer holds the correct option label. Never serialized to clients.
	Answer AnswerLabel `json:"-" gorm:"not null;size:1"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// Option returns the option text for a label, or "" for an unknown label.
func (q *QuizQuestion) Option(label AnswerLabel) string {
	switch label {
	case AnswerA:
		return q.OptionA
	case AnswerB:
		return q.OptionB
	case AnswerC:
		return q.OptionC
	case AnswerD:
		return q.OptionD
	}
	return ""
}
