package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer is the record written at submission time: the question it refers
// to, the letter the user chose, and a denormalized copy of the correct
// letter for history display.
type Answer struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	QuizID        uint           `json:"quiz_id" gorm:"not null;index"`
	QuestionID    uint           `json:"question_id" gorm:"not null;index"`
	UserAnswer    string         `json:"user_answer" gorm:"not null"`
	CorrectAnswer string         `json:"correct_answer" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
