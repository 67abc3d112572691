package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/vishvpatel010/ai-quizzer/internal/dto"
	"github.com/vishvpatel010/ai-quizzer/internal/model"
	"github.com/vishvpatel010/ai-quizzer/internal/repository"
	"gorm.io/gorm"
)

const (
	maxQuestionsPerQuiz  = 50
	maxMarksPerQuestion  = 5
	generatorCallTimeout = 90 * time.Second
	mailCallTimeout      = 30 * time.Second

	perfectScoreSuggestions = "There are no suggestions available."
	resultEmailSubject      = "Quiz Results"
)

// QuizService owns the quiz lifecycle: generation, submission, retry and
// hint lookup. Every operation is scoped to the authenticated owner.
type QuizService interface {
	GenerateQuiz(ctx context.Context, userID uint, req dto.GenerateQuizRequest) (*dto.QuizResponseDTO, error)
	SubmitQuiz(ctx context.Context, userID uint, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponseDTO, error)
	RetryQuiz(ctx context.Context, userID uint, req dto.SubmitQuizRequest) (*dto.RetryQuizResponseDTO, error)
	GetHint(userID uint, req dto.HintRequest) (*dto.HintResponseDTO, error)
}

type quizService struct {
	quizRepo repository.QuizRepository
	userRepo repository.UserRepository
	scoring  ScoringService
	gemini   GeminiLLMService
	mailer   MailService
}

func NewQuizService(
	quizRepo repository.QuizRepository,
	userRepo repository.UserRepository,
	scoring ScoringService,
	gemini GeminiLLMService,
	mailer MailService,
) QuizService {
	return &quizService{
		quizRepo: quizRepo,
		userRepo: userRepo,
		scoring:  scoring,
		gemini:   gemini,
		mailer:   mailer,
	}
}

func (s *quizService) GenerateQuiz(ctx context.Context, userID uint, req dto.GenerateQuizRequest) (*dto.QuizResponseDTO, error) {
	if req.Grade < 1 || req.Grade > 12 {
		return nil, invalidInput("Invalid Grade")
	}
	if req.MaxScore < 1 || req.MaxScore > 100 {
		return nil, invalidInput("Max score should be between 1 and 100")
	}
	if req.MaxScore > maxMarksPerQuestion*req.TotalQuestions {
		return nil, invalidInput("Max score should not exceed %d", maxMarksPerQuestion*req.TotalQuestions)
	}
	if req.TotalQuestions > maxQuestionsPerQuiz {
		return nil, invalidInput("Please make sure the total questions are 50 or less.")
	}
	difficulty := strings.ToLower(req.Difficulty)
	if difficulty != "easy" && difficulty != "medium" && difficulty != "hard" {
		return nil, invalidInput("Difficulty level must be either Easy, Medium, or Hard")
	}

	genCtx, cancel := context.WithTimeout(ctx, generatorCallTimeout)
	defer cancel()
	questions, err := s.gemini.GenerateQuestions(genCtx, req.Grade, req.Subject, req.TotalQuestions, req.MaxScore, difficulty)
	if err != nil {
		log.Error().Err(err).Int("grade", req.Grade).Str("subject", req.Subject).Msg("GenerateQuiz: question generation failed")
		return nil, err
	}

	quiz := model.Quiz{
		UserID:     userID,
		Grade:      req.Grade,
		Subject:    strings.ToLower(req.Subject),
		MaxScore:   req.MaxScore,
		Difficulty: difficulty,
		Questions:  questions,
		Score:      0,
	}
	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GenerateQuiz: failed to persist quiz")
		return nil, err
	}

	return quizToCreationResponse(&quiz)
}

func (s *quizService) SubmitQuiz(ctx context.Context, userID uint, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponseDTO, error) {
	quiz, answers, score, err := s.scoreAgainstQuiz(userID, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	quiz.Score = score
	quiz.CompletedDate = &now
	if err := s.quizRepo.SaveSubmission(quiz, answers); err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("SubmitQuiz: failed to persist submission")
		return nil, err
	}

	// Notification is best-effort: suggestions and email run detached so a
	// collaborator failure never discards the already-computed score.
	go s.notifyResult(quiz, answers, score)

	return &dto.SubmitQuizResponseDTO{
		Score:          score,
		CorrectAnswers: answerRecords(answers),
	}, nil
}

func (s *quizService) RetryQuiz(ctx context.Context, userID uint, req dto.SubmitQuizRequest) (*dto.RetryQuizResponseDTO, error) {
	quiz, answers, score, err := s.scoreAgainstQuiz(userID, req)
	if err != nil {
		return nil, err
	}

	// The retry is recorded as a brand-new quiz cloned from the original.
	// Question rows are copied (each quiz owns its questions exclusively),
	// so the persisted answer records are remapped onto the clone's question
	// identities once GORM has assigned them.
	clonedQuestions := make([]model.Question, len(quiz.Questions))
	for i, q := range quiz.Questions {
		clonedQuestions[i] = model.Question{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Hint:          q.Hint,
			Marks:         q.Marks,
		}
	}

	now := time.Now()
	newQuiz := model.Quiz{
		UserID:         quiz.UserID,
		Grade:          quiz.Grade,
		Subject:        quiz.Subject,
		MaxScore:       quiz.MaxScore,
		Difficulty:     quiz.Difficulty,
		OriginalQuizID: &quiz.ID,
		Questions:      clonedQuestions,
		Score:          score,
		CompletedDate:  &now,
	}
	if err := s.quizRepo.Create(&newQuiz); err != nil {
		log.Error().Err(err).Uint("originalQuizID", quiz.ID).Msg("RetryQuiz: failed to persist retried quiz")
		return nil, err
	}

	idByOriginal := make(map[uint]uint, len(quiz.Questions))
	for i, q := range quiz.Questions {
		idByOriginal[q.ID] = newQuiz.Questions[i].ID
	}
	clonedAnswers := make([]model.Answer, len(answers))
	for i, a := range answers {
		clonedAnswers[i] = model.Answer{
			QuizID:        newQuiz.ID,
			QuestionID:    idByOriginal[a.QuestionID],
			UserAnswer:    a.UserAnswer,
			CorrectAnswer: a.CorrectAnswer,
		}
	}
	if err := s.quizRepo.SaveSubmission(&newQuiz, clonedAnswers); err != nil {
		log.Error().Err(err).Uint("quizID", newQuiz.ID).Msg("RetryQuiz: failed to persist answer records")
		return nil, err
	}

	return &dto.RetryQuizResponseDTO{
		Score:          score,
		CorrectAnswers: answerRecords(answers),
		NewQuizID:      newQuiz.ID,
	}, nil
}

func (s *quizService) GetHint(userID uint, req dto.HintRequest) (*dto.HintResponseDTO, error) {
	if req.QuizID == 0 {
		return nil, invalidInput("Quiz ID is required")
	}
	if req.QuestionID == 0 {
		return nil, invalidInput("Question ID is required")
	}

	quiz, err := s.quizRepo.FindByIDForUser(req.QuizID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Quiz not found")
		}
		return nil, err
	}

	for _, q := range quiz.Questions {
		if q.ID == req.QuestionID {
			return &dto.HintResponseDTO{Hint: q.Hint}, nil
		}
	}
	return nil, notFound("Question not found")
}

// scoreAgainstQuiz validates a submit/retry request, loads the owner's quiz
// and evaluates the responses against its question set.
func (s *quizService) scoreAgainstQuiz(userID uint, req dto.SubmitQuizRequest) (*model.Quiz, []model.Answer, float64, error) {
	if req.QuizID == 0 {
		return nil, nil, 0, invalidInput("Quiz ID is required")
	}
	if len(req.Responses) == 0 {
		return nil, nil, 0, invalidInput("Responses must be a non-empty array")
	}

	quiz, err := s.quizRepo.FindByIDForUser(req.QuizID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, 0, notFound("Quiz not found")
		}
		log.Error().Err(err).Uint("quizID", req.QuizID).Msg("Failed to load quiz for scoring")
		return nil, nil, 0, err
	}

	score, answers := s.scoring.Evaluate(quiz.Questions, req.Responses)
	return quiz, answers, score, nil
}

// notifyResult generates suggestions and emails the result. It runs on its
// own goroutine; failures are logged only.
func (s *quizService) notifyResult(quiz *model.Quiz, answers []model.Answer, score float64) {
	ctx, cancel := context.WithTimeout(context.Background(), generatorCallTimeout)
	defer cancel()

	suggestions := perfectScoreSuggestions
	if score != float64(quiz.MaxScore) {
		generated, err := s.gemini.GenerateSuggestions(ctx, quiz.Questions, answers)
		if err != nil {
			log.Warn().Err(err).Uint("quizID", quiz.ID).Msg("notifyResult: suggestion generation failed, sending results without suggestions")
			suggestions = "Suggestions are currently unavailable."
		} else {
			suggestions = generated
		}
	}

	user, err := s.userRepo.FindByID(quiz.UserID)
	if err != nil {
		log.Warn().Err(err).Uint("userID", quiz.UserID).Msg("notifyResult: could not resolve quiz owner, skipping email")
		return
	}

	done := make(chan error, 1)
	go func() {
		done <- s.mailer.SendResultEmail(user.Email, resultEmailSubject, score, suggestions)
	}()
	select {
	case err := <-done:
		if err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("notifyResult: result email delivery failed")
		}
	case <-time.After(mailCallTimeout):
		log.Warn().Str("email", user.Email).Msg("notifyResult: result email delivery timed out")
	}
}

func answerRecords(answers []model.Answer) []dto.AnswerRecordDTO {
	records := make([]dto.AnswerRecordDTO, len(answers))
	for i, a := range answers {
		records[i] = dto.AnswerRecordDTO{
			QuestionID:    a.QuestionID,
			UserAnswer:    a.UserAnswer,
			CorrectAnswer: a.CorrectAnswer,
		}
	}
	return records
}

// quizToCreationResponse builds the generation response. Correct answers and
// hints are withheld until the quiz has been submitted.
func quizToCreationResponse(quiz *model.Quiz) (*dto.QuizResponseDTO, error) {
	var resp dto.QuizResponseDTO
	if err := copier.Copy(&resp, quiz); err != nil {
		log.Error().Err(err).Msg("Failed to copy quiz model to response DTO")
		return nil, err
	}
	resp.Questions = make([]dto.QuestionPublicDTO, len(quiz.Questions))
	for i, q := range quiz.Questions {
		resp.Questions[i] = dto.QuestionPublicDTO{
			ID:       q.ID,
			Question: q.Text,
			Options:  q.OptionList(),
			Marks:    q.Marks,
		}
	}
	return &resp, nil
}
