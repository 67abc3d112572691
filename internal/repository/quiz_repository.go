package repository

import (
	"time"

	"github.com/vishvpatel010/ai-quizzer/internal/model"
	"gorm.io/gorm"
)

// HistoryFilter holds the optional, already-validated predicates for a
// history search. Nil fields are not applied. The date range is applied only
// when both bounds are present, inclusive on both ends.
type HistoryFilter struct {
	Grade    *int
	Subject  *string
	MinScore *float64
	MaxScore *float64
	From     *time.Time
	To       *time.Time
}

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	// FindByIDForUser loads a quiz with its questions and answer records,
	// scoped to the owning user.
	FindByIDForUser(id, userID uint) (*model.Quiz, error)
	// SaveSubmission overwrites a quiz's score, completion date and answer
	// records in one transaction.
	SaveSubmission(quiz *model.Quiz, answers []model.Answer) error
	Search(userID uint, filter HistoryFilter) ([]model.Quiz, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	// GORM creates the associated questions and populates their IDs.
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByIDForUser(id, userID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		Preload("UserAnswers").
		Where("user_id = ?", userID).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) SaveSubmission(quiz *model.Quiz, answers []model.Answer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.Quiz{}).
			Where("id = ?", quiz.ID).
			Updates(map[string]interface{}{
				"score":          quiz.Score,
				"completed_date": quiz.CompletedDate,
			}).Error
	})
}

func (r *quizRepository) Search(userID uint, filter HistoryFilter) ([]model.Quiz, error) {
	query := r.db.Model(&model.Quiz{}).Where("user_id = ?", userID)

	if filter.Grade != nil {
		query = query.Where("grade = ?", *filter.Grade)
	}
	if filter.Subject != nil {
		query = query.Where("subject = ?", *filter.Subject)
	}
	if filter.MinScore != nil {
		query = query.Where("score >= ?", *filter.MinScore)
	}
	if filter.MaxScore != nil {
		query = query.Where("score <= ?", *filter.MaxScore)
	}
	if filter.From != nil && filter.To != nil {
		query = query.Where("completed_date BETWEEN ? AND ?", *filter.From, *filter.To)
	}

	var quizzes []model.Quiz
	err := query.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		Preload("UserAnswers").
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}
