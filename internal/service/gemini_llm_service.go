package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/vishvpatel010/ai-quizzer/config"
	"github.com/vishvpatel010/ai-quizzer/internal/model"
	"google.golang.org/api/option"
)

// GeminiLLMService is the language-model collaborator: it produces question
// sets for new quizzes and improvement suggestions after a submission.
type GeminiLLMService interface {
	GenerateQuestions(ctx context.Context, grade int, subject string, totalQuestions, maxScore int, difficulty string) ([]model.Question, error)
	GenerateSuggestions(ctx context.Context, questions []model.Question, answers []model.Answer) (string, error)
}

type geminiLLMService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &geminiLLMService{client: model, cfg: cfg}, nil
}

// generatedQuestion is the schema the model is instructed to return.
type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Hint          string   `json:"hint"`
	Marks         float64  `json:"marks"`
}

// trimToJSONArray cuts everything before the first '[' and after the last
// ']' so that prose the model wraps around the payload does not break
// unmarshalling.
func trimToJSONArray(s string) string {
	if start := strings.Index(s, "["); start != -1 {
		s = s[start:]
	}
	if end := strings.LastIndex(s, "]"); end != -1 {
		s = s[:end+1]
	}
	return s
}

func (s *geminiLLMService) GenerateQuestions(ctx context.Context, grade int, subject string, totalQuestions, maxScore int, difficulty string) ([]model.Question, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	prompt := fmt.Sprintf(`Generate a set of questions for Grade %d %s. The total number of questions should be %d, with a maximum score of %d for all questions. The difficulty level of the questions should be %s. Each question should include the question text, multiple-choice options, the correct answer (A, B, C, or D), a hint, and the marks for each question. Provide a variety of topics within %s. Return the data only as a JSON array without a name, like: [{},{}]. Ensure the JSON format is as follows:

[
  {
    "question": "String",
    "options": ["String", "String", "String", "String"],
    "correctAnswer": "String",
    "hint": "String",
    "marks": Number
  }
]
`, grade, subject, totalQuestions, maxScore, difficulty, subject)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var generated []generatedQuestion
	if err := json.Unmarshal([]byte(trimToJSONArray(text)), &generated); err != nil {
		log.Error().Err(err).Str("rawResponse", text).Msg("Failed to parse generated question set")
		return nil, fmt.Errorf("generator returned unparseable question data: %w", err)
	}

	if len(generated) != totalQuestions {
		return nil, fmt.Errorf("generator returned %d questions, expected %d", len(generated), totalQuestions)
	}

	questions := make([]model.Question, 0, len(generated))
	for i, g := range generated {
		if len(g.Options) != 4 {
			return nil, fmt.Errorf("generator returned %d options for question %d, expected 4", len(g.Options), i+1)
		}
		answer := strings.TrimSpace(g.CorrectAnswer)
		if answer != "A" && answer != "B" && answer != "C" && answer != "D" {
			return nil, fmt.Errorf("generator returned correct answer %q for question %d, expected one of A, B, C, D", g.CorrectAnswer, i+1)
		}
		opts, err := model.EncodeOptions(g.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to encode options for question %d: %w", i+1, err)
		}
		questions = append(questions, model.Question{
			Text:          g.Question,
			Options:       opts,
			CorrectAnswer: answer,
			Hint:          g.Hint,
			Marks:         g.Marks,
		})
	}
	return questions, nil
}

func (s *geminiLLMService) GenerateSuggestions(ctx context.Context, questions []model.Question, answers []model.Answer) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("failed to encode questions for suggestion prompt: %w", err)
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("failed to encode answers for suggestion prompt: %w", err)
	}

	prompt := fmt.Sprintf(
		"Give based on user performance suggestion for preparation Here is questions %s and user answers %s. Give in 15-20 words only.",
		questionsJSON, answersJSON,
	)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *geminiLLMService) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error")
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", fmt.Errorf("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return sb.String(), nil
}
