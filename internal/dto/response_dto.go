package dto

import "time"

// QuestionPublicDTO is a question as shown when a quiz is generated: the
// correct answer and hint are withheld until the quiz has been submitted.
type QuestionPublicDTO struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Marks    float64  `json:"marks"`
}

// QuestionFullDTO is a question with its answer key, used in history output
// where the quiz has already been completed.
type QuestionFullDTO struct {
	ID            uint     `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Hint          string   `json:"hint,omitempty"`
	Marks         float64  `json:"marks"`
}

// QuizResponseDTO is the creation response for a freshly generated quiz.
type QuizResponseDTO struct {
	ID            uint                `json:"id"`
	UserID        uint                `json:"user_id"`
	Grade         int                 `json:"grade"`
	Subject       string              `json:"subject"`
	MaxScore      int                 `json:"max_score"`
	Difficulty    string              `json:"difficulty"`
	Questions     []QuestionPublicDTO `json:"questions"`
	Score         float64             `json:"score"`
	CompletedDate *time.Time          `json:"completed_date"`
	CreatedAt     time.Time           `json:"created_at"`
}

// AnswerRecordDTO mirrors one stored answer record.
type AnswerRecordDTO struct {
	QuestionID    uint   `json:"questionId"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
}

// SubmitQuizResponseDTO is returned by POST /api/quiz/submit.
type SubmitQuizResponseDTO struct {
	Score          float64           `json:"score"`
	CorrectAnswers []AnswerRecordDTO `json:"correctAnswers"`
}

// RetryQuizResponseDTO is returned by POST /api/quiz/retry.
type RetryQuizResponseDTO struct {
	Score          float64           `json:"score"`
	CorrectAnswers []AnswerRecordDTO `json:"correctAnswers"`
	NewQuizID      uint              `json:"newQuizId"`
}

// HintResponseDTO is returned by POST /api/quiz/hint. The hint may be empty
// if the generator did not supply one.
type HintResponseDTO struct {
	Hint string `json:"hint"`
}

// QuizHistoryItemDTO is one completed (or pending) quiz in history output.
type QuizHistoryItemDTO struct {
	ID             uint              `json:"id"`
	UserID         uint              `json:"user_id"`
	Grade          int               `json:"grade"`
	Subject        string            `json:"subject"`
	MaxScore       int               `json:"max_score"`
	Difficulty     string            `json:"difficulty"`
	OriginalQuizID *uint             `json:"original_quiz_id,omitempty"`
	Questions      []QuestionFullDTO `json:"questions"`
	UserAnswers    []AnswerRecordDTO `json:"userAnswers"`
	Score          float64           `json:"score"`
	CompletedDate  *time.Time        `json:"completed_date"`
	CreatedAt      time.Time         `json:"created_at"`
}

// TokenResponse carries the JWT handed out by login.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a plain informational body, e.g. the "No quizzes found"
// history sentinel.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
