package model

import (
	"time"

	"gorm.io/gorm"
)

// Quiz pairs a generated question set with a user's scoring outcome.
// A retry never mutates an existing Quiz; it inserts a sibling row whose
// OriginalQuizID points back at the quiz it was cloned from.
type Quiz struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `json:"user_id" gorm:"not null;index"`
	Grade          int            `json:"grade" gorm:"not null"`
	Subject        string         `json:"subject" gorm:"not null;index"` // stored lowercase
	MaxScore       int            `json:"max_score" gorm:"not null"`
	Difficulty     string         `json:"difficulty" gorm:"not null"` // "easy", "medium", "hard"
	OriginalQuizID *uint          `json:"original_quiz_id,omitempty" gorm:"index"`
	Questions      []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserAnswers    []Answer       `json:"user_answers,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Score          float64        `json:"score" gorm:"default:0"`
	CompletedDate  *time.Time     `json:"completed_date"` // nil until submitted or retried
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
