// File: internal/usecase/interview_uc.go
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog"

	"ai-mock-interview/internal/domain"
	"ai-mock-interview/internal/domain/model"
	"ai-mock-interview/internal/domain/ports/adapter"
	"ai-mock-interview/internal/infra/logging"
	"ai-mock-interview/internal/infra/metrics"
)

// Compile-time check
var _ InterviewUseCase = (*interviewUC)(nil)

type InterviewUseCase interface {
	// GenerateQuestions asks the model for questions matching the requested interview.
	GenerateQuestions(ctx context.Context, spec model.InterviewSpec) ([]model.Question, error)
	// ReviewAnswer scores one answer and returns feedback plus a rating out of 10.
	ReviewAnswer(ctx context.Context, question, answer string) (*model.AnswerReview, error)
}

type interviewUC struct {
	ai    adapter.AIServiceAdapter
	model string
	log   *zerolog.Logger
}

func NewInterviewUseCase(ai adapter.AIServiceAdapter, defaultModel string, logger *zerolog.Logger) *interviewUC {
	return &interviewUC{ai: ai, model: defaultModel, log: logger}
}

func (u *interviewUC) GenerateQuestions(ctx context.Context, spec model.InterviewSpec) ([]model.Question, error) {
	if strings.TrimSpace(spec.Role) == "" {
		return nil, fmt.Errorf("role is required: %w", domain.ErrInvalidArgument)
	}
	n := spec.Questions
	if n <= 0 {
		n = 5
	}
	if n > 20 {
		n = 20
	}

	prompt := fmt.Sprintf(
		"You are conducting a mock job interview. Generate %d interview questions for a %s %s position.",
		n, spec.Seniority, spec.Role)
	if spec.TechStack != "" {
		prompt += fmt.Sprintf(" The candidate's tech stack: %s.", spec.TechStack)
	}
	prompt += ` Respond with ONLY a JSON array of question strings, no markdown fences.`

	text, _, err := u.chat(ctx, prompt)
	if err != nil {
		return nil, err
	}

	items := parseQuestionList(text)
	if len(items) == 0 {
		return nil, fmt.Errorf("question generation: %w", domain.ErrUpstreamFailure)
	}
	if len(items) > n {
		items = items[:n]
	}
	out := make([]model.Question, 0, len(items))
	for i, q := range items {
		out = append(out, model.Question{Index: i + 1, Text: q})
	}
	return out, nil
}

func (u *interviewUC) ReviewAnswer(ctx context.Context, question, answer string) (*model.AnswerReview, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question is required: %w", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("answer is required: %w", domain.ErrInvalidArgument)
	}

	prompt := fmt.Sprintf(
		"Interview question: %q\nCandidate answer: %q\n"+
			`Evaluate the answer in 3-5 sentences and rate it. Respond with ONLY a JSON object {"feedback": string, "rating": integer 1-10}, no markdown fences.`,
		question, answer)

	text, _, err := u.chat(ctx, prompt)
	if err != nil {
		return nil, err
	}

	review := &model.AnswerReview{
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
	var parsed struct {
		Feedback string `json:"feedback"`
		Rating   int    `json:"rating"`
	}
	if jsonErr := json.Unmarshal([]byte(stripFences(text)), &parsed); jsonErr == nil && parsed.Feedback != "" {
		review.Feedback = parsed.Feedback
		review.Rating = clampRating(parsed.Rating)
	} else {
		// Model ignored the contract; hand the raw text back unrated.
		review.Feedback = strings.TrimSpace(text)
	}
	return review, nil
}

// chat wraps the provider call with latency/usage metrics. When the provider
// reports no usage, prompt tokens are estimated locally.
func (u *interviewUC) chat(ctx context.Context, prompt string) (string, adapter.Usage, error) {
	started := time.Now()
	msgs := []adapter.Message{{Role: "user", Content: prompt}}
	text, usage, err := u.ai.ChatWithUsage(ctx, u.model, msgs)
	latency := int(time.Since(started).Milliseconds())
	if err != nil {
		metrics.ObserveAIUsage(u.ai.Name(), u.model, 0, 0, 0, latency, false)
		logging.With(ctx, u.log).Error().Err(err).Str("provider", u.ai.Name()).Msg("ai call failed")
		return "", adapter.Usage{}, fmt.Errorf("ai provider: %w", domain.ErrUpstreamFailure)
	}
	if usage.TotalTokens == 0 {
		usage.PromptTokens = estimateTokens(prompt)
		usage.CompletionTokens = estimateTokens(text)
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	metrics.ObserveAIUsage(u.ai.Name(), u.model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens, latency, true)
	return text, usage, nil
}

// estimateTokens is a best-effort cl100k count; falls back to a rough
// character heuristic when the encoding is unavailable offline.
func estimateTokens(s string) int {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return len(s) / 4
	}
	return len(enc.Encode(s, nil, nil))
}

func parseQuestionList(text string) []string {
	var arr []string
	if err := json.Unmarshal([]byte(stripFences(text)), &arr); err == nil {
		var out []string
		for _, q := range arr {
			if q = strings.TrimSpace(q); q != "" {
				out = append(out, q)
			}
		}
		return out
	}
	// Fallback: one question per line, tolerate "1." / "-" prefixes.
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789.) ")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func clampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > 10 {
		return 10
	}
	return r
}
