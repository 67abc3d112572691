package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is one multiple-choice item. Questions are immutable once their
// quiz has been generated.
type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	QuizID        uint           `json:"quiz_id" gorm:"not null;index"`
	Text          string         `json:"question" gorm:"type:text;not null"`
	Options       datatypes.JSON `json:"options" gorm:"not null"`        // exactly 4 strings
	CorrectAnswer string         `json:"correct_answer" gorm:"not null"` // "A".."D"
	Hint          string         `json:"hint,omitempty" gorm:"type:text"`
	Marks         float64        `json:"marks" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// OptionList decodes the stored options column. A corrupt column yields nil.
func (q *Question) OptionList() []string {
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}

// EncodeOptions marshals a slice of option texts into the JSON column type.
func EncodeOptions(opts []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(opts)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
