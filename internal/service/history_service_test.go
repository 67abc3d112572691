package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vishvpatel010/ai-quizzer/internal/dto"
	"github.com/vishvpatel010/ai-quizzer/internal/model"
	"github.com/vishvpatel010/ai-quizzer/internal/repository"
	"gorm.io/gorm"
)

func intPtr(v int) *int              { return &v }
func floatPtr(v float64) *float64    { return &v }
func strPtr(v string) *string        { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func seedQuiz(t *testing.T, db *gorm.DB, userID uint, grade int, subject string, score float64, completed *time.Time) *model.Quiz {
	t.Helper()
	opts, err := model.EncodeOptions([]string{"one", "two", "three", "four"})
	require.NoError(t, err)
	quiz := model.Quiz{
		UserID:        userID,
		Grade:         grade,
		Subject:       subject,
		MaxScore:      10,
		Difficulty:    "easy",
		Score:         score,
		CompletedDate: completed,
		Questions: []model.Question{
			{Text: "q", Options: opts, CorrectAnswer: "A", Hint: "h", Marks: 5},
		},
	}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}

func TestQueryHistoryValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(repository.NewQuizRepository(db))

	cases := []struct {
		name string
		req  dto.QuizHistoryRequest
		msg  string
	}{
		{"grade too low", dto.QuizHistoryRequest{Grade: intPtr(0)}, "Invalid Grade"},
		{"grade too high", dto.QuizHistoryRequest{Grade: intPtr(13)}, "Invalid Grade"},
		{"negative min score", dto.QuizHistoryRequest{MinScore: floatPtr(-1)}, "Min score must be greater than or equal to 0"},
		{"max score above 100", dto.QuizHistoryRequest{MaxScore: floatPtr(101)}, "Max score must be less than or equal to 100"},
		{"min above max", dto.QuizHistoryRequest{MinScore: floatPtr(80), MaxScore: floatPtr(50)}, "Min score cannot be greater than max score"},
		{"from after to", dto.QuizHistoryRequest{From: strPtr("2025-02-01"), To: strPtr("2025-01-01")}, "From date cannot be greater than To date"},
		{"unparseable from", dto.QuizHistoryRequest{From: strPtr("yesterday")}, "Invalid From date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.QueryHistory(1, tc.req)
			require.ErrorIs(t, err, ErrInvalidInput)
			require.EqualError(t, err, tc.msg)
		})
	}
}

func TestQueryHistoryFiltersConjunctively(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(repository.NewQuizRepository(db))

	jan := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

	mathQuiz := seedQuiz(t, db, 1, 5, "math", 8, timePtr(jan))
	seedQuiz(t, db, 1, 5, "science", 4, timePtr(feb))
	seedQuiz(t, db, 1, 7, "math", 9, timePtr(feb))
	seedQuiz(t, db, 2, 5, "math", 8, timePtr(jan)) // different owner

	items, err := svc.QueryHistory(1, dto.QuizHistoryRequest{
		Grade:    intPtr(5),
		Subject:  strPtr("Math"),
		MinScore: floatPtr(5),
		MaxScore: floatPtr(10),
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, mathQuiz.ID, items[0].ID)
	require.Equal(t, "math", items[0].Subject)
}

func TestQueryHistoryScoreBoundsAreIndependentlyOptional(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(repository.NewQuizRepository(db))
	now := time.Now()

	seedQuiz(t, db, 1, 5, "math", 3, timePtr(now))
	seedQuiz(t, db, 1, 5, "math", 7, timePtr(now))

	items, err := svc.QueryHistory(1, dto.QuizHistoryRequest{MinScore: floatPtr(5)})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 7.0, items[0].Score)

	items, err = svc.QueryHistory(1, dto.QuizHistoryRequest{MaxScore: floatPtr(5)})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 3.0, items[0].Score)
}

func TestQueryHistoryDateRangeNeedsBothBounds(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(repository.NewQuizRepository(db))

	jan := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	seedQuiz(t, db, 1, 5, "math", 8, timePtr(jan))
	seedQuiz(t, db, 1, 5, "math", 8, timePtr(mar))

	// Only one bound: the date filter is not applied at all.
	items, err := svc.QueryHistory(1, dto.QuizHistoryRequest{From: strPtr("2025-02-01")})
	require.NoError(t, err)
	require.Len(t, items, 2)

	items, err = svc.QueryHistory(1, dto.QuizHistoryRequest{
		From: strPtr("2025-01-01"),
		To:   strPtr("2025-02-01"),
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, jan.Unix(), items[0].CompletedDate.Unix())
}

func TestQueryHistoryNoMatchesReturnsEmptySlice(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(repository.NewQuizRepository(db))

	seedQuiz(t, db, 1, 5, "math", 8, timePtr(time.Now()))

	// The HTTP layer turns an empty result into the "No quizzes found"
	// sentinel; the service reports it as a successful empty slice.
	items, err := svc.QueryHistory(1, dto.QuizHistoryRequest{Subject: strPtr("history")})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestQueryHistoryReturnsFullQuizRecords(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(repository.NewQuizRepository(db))

	now := time.Now()
	quiz := seedQuiz(t, db, 1, 5, "math", 5, timePtr(now))
	answer := model.Answer{
		QuizID:        quiz.ID,
		QuestionID:    quiz.Questions[0].ID,
		UserAnswer:    "A",
		CorrectAnswer: "A",
	}
	require.NoError(t, db.Create(&answer).Error)

	items, err := svc.QueryHistory(1, dto.QuizHistoryRequest{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	require.Len(t, item.Questions, 1)
	require.Equal(t, "A", item.Questions[0].CorrectAnswer)
	require.Equal(t, "h", item.Questions[0].Hint)
	require.Len(t, item.UserAnswers, 1)
	require.Equal(t, "A", item.UserAnswers[0].UserAnswer)
}
