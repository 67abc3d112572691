package dto

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GenerateQuizRequest is the body for POST /api/quiz/generate.
// Range rules (grade, max score, question cap) are enforced in the service so
// the error messages carry computed values.
type GenerateQuizRequest struct {
	Grade          int    `json:"grade" binding:"required"`
	Subject        string `json:"subject" binding:"required"`
	TotalQuestions int    `json:"totalQuestions" binding:"required,min=1"`
	MaxScore       int    `json:"maxScore" binding:"required"`
	Difficulty     string `json:"difficulty" binding:"required"`
}

// QuestionResponseDTO is a single answer inside a submission or retry.
type QuestionResponseDTO struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// SubmitQuizRequest is the body for POST /api/quiz/submit and /api/quiz/retry.
type SubmitQuizRequest struct {
	QuizID    uint                  `json:"quizId"`
	Responses []QuestionResponseDTO `json:"responses"`
}

// HintRequest is the body for POST /api/quiz/hint.
type HintRequest struct {
	QuizID     uint `json:"quizId"`
	QuestionID uint `json:"questionId"`
}

// QuizHistoryRequest is the body for POST /api/quiz/history. Every filter is
// optional; absent fields are not applied.
type QuizHistoryRequest struct {
	Grade    *int     `json:"grade"`
	Subject  *string  `json:"subject"`
	MinScore *float64 `json:"minScore"`
	MaxScore *float64 `json:"maxScore"`
	From     *string  `json:"from"`
	To       *string  `json:"to"`
}
