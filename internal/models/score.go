package models

import (
	"time"

	"gorm.io/datatypes"
)

// Score is append-only: every quiz submission creates a new row.
type Score struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	UserID   uint `json:"user_id" gorm:"not null;index"`
	CourseID uint `json:"course_id" gorm:"not null;index"`
	Value    int  `json:"score" gorm:"not null"`

	// Snapshot of the submitted answer set, kept for audit.
	Answers datatypes.JSON `json:"-" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Course Course `json:"-" gorm:"foreignKey:CourseID"`
}

func (Score) TableName() string {
	return "scores"
}
