package service

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vishvpatel010/ai-quizzer/internal/dto"
	"github.com/vishvpatel010/ai-quizzer/internal/model"
	"github.com/vishvpatel010/ai-quizzer/internal/repository"
)

// dateLayouts are the accepted formats for history range bounds.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// HistoryService filters a user's stored quizzes.
type HistoryService interface {
	QueryHistory(userID uint, req dto.QuizHistoryRequest) ([]dto.QuizHistoryItemDTO, error)
}

type historyService struct {
	quizRepo repository.QuizRepository
}

func NewHistoryService(quizRepo repository.QuizRepository) HistoryService {
	return &historyService{quizRepo: quizRepo}
}

func (s *historyService) QueryHistory(userID uint, req dto.QuizHistoryRequest) ([]dto.QuizHistoryItemDTO, error) {
	filter, err := buildHistoryFilter(req)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.quizRepo.Search(userID, filter)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("QueryHistory: search failed")
		return nil, err
	}

	items := make([]dto.QuizHistoryItemDTO, len(quizzes))
	for i := range quizzes {
		items[i] = quizToHistoryItem(&quizzes[i])
	}
	return items, nil
}

func buildHistoryFilter(req dto.QuizHistoryRequest) (repository.HistoryFilter, error) {
	var filter repository.HistoryFilter

	if req.Grade != nil {
		if *req.Grade < 1 || *req.Grade > 12 {
			return filter, invalidInput("Invalid Grade")
		}
		filter.Grade = req.Grade
	}
	if req.MinScore != nil && *req.MinScore < 0 {
		return filter, invalidInput("Min score must be greater than or equal to 0")
	}
	if req.MaxScore != nil && *req.MaxScore > 100 {
		return filter, invalidInput("Max score must be less than or equal to 100")
	}
	if req.MinScore != nil && req.MaxScore != nil && *req.MinScore > *req.MaxScore {
		return filter, invalidInput("Min score cannot be greater than max score")
	}
	filter.MinScore = req.MinScore
	filter.MaxScore = req.MaxScore

	if req.Subject != nil {
		subject := strings.ToLower(*req.Subject)
		filter.Subject = &subject
	}

	from, err := parseDate(req.From)
	if err != nil {
		return filter, invalidInput("Invalid From date")
	}
	to, err := parseDate(req.To)
	if err != nil {
		return filter, invalidInput("Invalid To date")
	}
	if from != nil && to != nil && from.After(*to) {
		return filter, invalidInput("From date cannot be greater than To date")
	}
	filter.From = from
	filter.To = to

	return filter, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, *s)
		if err == nil {
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func quizToHistoryItem(quiz *model.Quiz) dto.QuizHistoryItemDTO {
	questions := make([]dto.QuestionFullDTO, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = dto.QuestionFullDTO{
			ID:            q.ID,
			Question:      q.Text,
			Options:       q.OptionList(),
			CorrectAnswer: q.CorrectAnswer,
			Hint:          q.Hint,
			Marks:         q.Marks,
		}
	}
	return dto.QuizHistoryItemDTO{
		ID:             quiz.ID,
		UserID:         quiz.UserID,
		Grade:          quiz.Grade,
		Subject:        quiz.Subject,
		MaxScore:       quiz.MaxScore,
		Difficulty:     quiz.Difficulty,
		OriginalQuizID: quiz.OriginalQuizID,
		Questions:      questions,
		UserAnswers:    answerRecords(quiz.UserAnswers),
		Score:          quiz.Score,
		CompletedDate:  quiz.CompletedDate,
		CreatedAt:      quiz.CreatedAt,
	}
}
