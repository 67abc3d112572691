package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/vishvpatel010/ai-quizzer/internal/dto"
	"github.com/vishvpatel010/ai-quizzer/internal/middleware"
	"github.com/vishvpatel010/ai-quizzer/internal/service"
)

type QuizController struct {
	quizService    service.QuizService
	historyService service.HistoryService
}

func NewQuizController(quizService service.QuizService, historyService service.HistoryService) *QuizController {
	return &QuizController{quizService: quizService, historyService: historyService}
}

// respondServiceError maps a service error onto the HTTP taxonomy: invalid
// input → 400, not found → 404, everything else → 500 with the fallback
// message.
func respondServiceError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: fallback, Details: []string{err.Error()}})
	}
}

func ownerID(ctx *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		log.Error().Str("path", ctx.FullPath()).Msg("Owner ID missing from context; auth middleware not applied")
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authorization token is required"})
	}
	return userID, ok
}

// GenerateQuiz godoc
// @Summary Generate a new quiz
// @Description Generate an AI quiz for a grade, subject and difficulty. The response withholds correct answers and hints.
// @Tags Quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz parameters"
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 500 {object} dto.ErrorResponse "Generation failed"
// @Router /quiz/generate [post]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	userID, ok := ownerID(ctx)
	if !ok {
		return
	}

	var req dto.GenerateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	quiz, err := c.quizService.GenerateQuiz(ctx.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(ctx, err, "Error generating quiz, Please Try Again")
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Score the submitted responses against the quiz's question set and email the result.
// @Tags Quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submission body dto.SubmitQuizRequest true "Quiz ID and responses"
// @Success 200 {object} dto.SubmitQuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid submission"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Submission failed"
// @Router /quiz/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	userID, ok := ownerID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.quizService.SubmitQuiz(ctx.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(ctx, err, "Error submitting quiz")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetQuizHistory godoc
// @Summary Query quiz history
// @Description Filter the caller's quizzes by grade, subject, score range and completion-date range.
// @Tags Quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param filters body dto.QuizHistoryRequest true "Optional filters"
// @Success 200 {array} dto.QuizHistoryItemDTO "Matching quizzes, or {message} when none match"
// @Failure 400 {object} dto.ErrorResponse "Invalid filters"
// @Failure 500 {object} dto.ErrorResponse "Query failed"
// @Router /quiz/history [post]
func (c *QuizController) GetQuizHistory(ctx *gin.Context) {
	userID, ok := ownerID(ctx)
	if !ok {
		return
	}

	var req dto.QuizHistoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	quizzes, err := c.historyService.QueryHistory(userID, req)
	if err != nil {
		respondServiceError(ctx, err, "Error fetching quiz history")
		return
	}
	if len(quizzes) == 0 {
		ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "No quizzes found"})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// RetryQuiz godoc
// @Summary Retry a quiz
// @Description Re-score the quiz's question set against new responses, recorded as a new quiz. The original is untouched.
// @Tags Quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submission body dto.SubmitQuizRequest true "Quiz ID and responses"
// @Success 200 {object} dto.RetryQuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid submission"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Retry failed"
// @Router /quiz/retry [post]
func (c *QuizController) RetryQuiz(ctx *gin.Context) {
	userID, ok := ownerID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.quizService.RetryQuiz(ctx.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(ctx, err, "Error retrying quiz")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetHint godoc
// @Summary Fetch a question hint
// @Description Return the hint stored for a question inside one of the caller's quizzes.
// @Tags Quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lookup body dto.HintRequest true "Quiz and question IDs"
// @Success 200 {object} dto.HintResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Missing identifiers"
// @Failure 404 {object} dto.ErrorResponse "Quiz or question not found"
// @Failure 500 {object} dto.ErrorResponse "Lookup failed"
// @Router /quiz/hint [post]
func (c *QuizController) GetHint(ctx *gin.Context) {
	userID, ok := ownerID(ctx)
	if !ok {
		return
	}

	var req dto.HintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	hint, err := c.quizService.GetHint(userID, req)
	if err != nil {
		respondServiceError(ctx, err, "Error fetching hint")
		return
	}
	ctx.JSON(http.StatusOK, hint)
}
