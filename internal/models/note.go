package models

import "time"

type NoteVisibility string

const (
	NotePrivate NoteVisibility = "private"
	NotePublic  NoteVisibility = "public"
	NoteShared  NoteVisibility = "shared"
)

// DefaultPublicRating is assigned when a note is first made public.
const DefaultPublicRating = 4.0

type Note struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	VideoID uint   `json:"video_id" gorm:"not null;index"`
	Content string `json:"content" gorm:"type:text;not null"`

	// Visibility moves forward only: private -> public -> shared.
	Visibility NoteVisibility `json:"visibility" gorm:"not null;default:private;index"`
	Rating     *float64       `json:"rating,omitempty"`
	ShareToken *string        `json:"share_token,omitempty" gorm:"uniqueIndex;size:64"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Video Video `json:"-" gorm:"foreignKey:VideoID"`
}

func (Note) TableName() string {
	return "notes"
}

// Readable reports whether the note is visible beyond its owner.
func (n *Note) Readable() bool {
	return n.Visibility == NotePublic || n.Visibility == NoteShared
}
