package service

import (
	"github.com/vishvpatel010/ai-quizzer/internal/dto"
	"github.com/vishvpatel010/ai-quizzer/internal/model"
)

// ScoringService computes the score for a set of responses against a quiz's
// stored question set.
type ScoringService interface {
	Evaluate(questions []model.Question, responses []dto.QuestionResponseDTO) (float64, []model.Answer)
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// Evaluate walks the stored question set. A question with no matching
// response is skipped: it contributes no score and no answer record.
// Responses naming unknown questions are ignored. A matched question scores
// its full marks iff the submitted letter equals the correct letter exactly
// (case-sensitive, no partial credit); an answer record is written for every
// matched question regardless of correctness. The result is independent of
// the order of either input.
func (s *scoringService) Evaluate(questions []model.Question, responses []dto.QuestionResponseDTO) (float64, []model.Answer) {
	responseByQuestion := make(map[uint]string, len(responses))
	for _, r := range responses {
		if _, seen := responseByQuestion[r.QuestionID]; !seen {
			responseByQuestion[r.QuestionID] = r.Answer
		}
	}

	var score float64
	records := make([]model.Answer, 0, len(questions))
	for _, q := range questions {
		answer, ok := responseByQuestion[q.ID]
		if !ok {
			continue
		}
		if answer == q.CorrectAnswer {
			score += q.Marks
		}
		records = append(records, model.Answer{
			QuizID:        q.QuizID,
			QuestionID:    q.ID,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return score, records
}
