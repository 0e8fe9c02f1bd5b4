package review

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
)

// Service orchestrates the LLM-backed interview flows. Each request is a
// single pass: validate, call the provider, extract, normalize. The first
// failure aborts with a typed error; nothing is retried in-process.
type Service struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewService creates a review service on top of a provider client.
// A nil client is allowed and reported per call as a configuration error,
// so the server can boot without credentials.
func NewService(client llm.Client) *Service {
	return &Service{client: client, tier: llm.TierLite}
}

// Critique generates a structured critique of a system design plus a
// best-effort architecture diagram. The diagram is a second, sequential
// provider call whose failure degrades to an empty string without failing
// the critique.
func (s *Service) Critique(ctx context.Context, design string) (*CritiqueReport, error) {
	if strings.TrimSpace(design) == "" {
		return nil, &ValidationError{Message: "Design description is required"}
	}
	if s.client == nil {
		return nil, &ConfigurationError{Message: "GEMINI_API_KEY not configured"}
	}

	prompt := prompts.Format(prompts.MustGet(promptFile, "critique"), map[string]string{"Design": design})
	raw, err := s.client.GenerateText(ctx, s.tier, prompt)
	if err != nil {
		return nil, err
	}

	payload, err := llm.ExtractJSONObject(raw)
	if err != nil {
		return nil, &ParseError{Message: "failed to parse API response as JSON", Err: err}
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, &ParseError{Message: "failed to parse API response as JSON", Err: err}
	}

	record := NormalizeRecord(decoded, critiqueFields)
	return &CritiqueReport{
		Feedback: CritiqueResult{
			BlindSpots:                    record["blindSpots"],
			TradeOffs:                     record["tradeOffs"],
			Bottlenecks:                   record["bottlenecks"],
			InfrastructureRecommendations: record["infrastructureRecommendations"],
			FailureModes:                  record["failureModes"],
			DeepDiveQuestions:             record["deepDiveQuestions"],
		},
		Diagram: s.generateDiagram(ctx, design),
	}, nil
}

// Evaluate scores a candidate response against the interview question.
// At least one of response text and drawing data must be present. The score
// is load-bearing: an out-of-contract score fails the whole call, no partial
// evaluation is ever returned.
func (s *Service) Evaluate(ctx context.Context, question, response, drawingData string) (*EvaluationResult, error) {
	if strings.TrimSpace(question) == "" || (strings.TrimSpace(response) == "" && drawingData == "") {
		return nil, &ValidationError{Message: "Question and response/drawing are required"}
	}
	if s.client == nil {
		return nil, &ConfigurationError{Message: "GEMINI_API_KEY not configured"}
	}

	parts := buildEvaluationParts(question, response, drawingData)
	raw, err := s.client.GenerateParts(ctx, s.tier, parts...)
	if err != nil {
		return nil, err
	}

	payload, err := llm.ExtractJSONObject(raw)
	if err != nil {
		return nil, &ParseError{Message: "failed to parse evaluation response", Err: err}
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, &ParseError{Message: "failed to parse evaluation response", Err: err}
	}

	score, err := ValidateScore(decoded["score"])
	if err != nil {
		return nil, &ParseError{Message: "invalid evaluation score received", Err: err}
	}

	record := NormalizeRecord(decoded, evaluationFields)
	return &EvaluationResult{
		Score:             score,
		Strengths:         record["strengths"],
		Improvements:      record["improvements"],
		MissingComponents: record["missingComponents"],
		DeepDiveQuestions: record["deepDiveQuestions"],
	}, nil
}

// FollowUp answers a free-form question about a previously submitted design.
func (s *Service) FollowUp(ctx context.Context, design, question string) (string, error) {
	if strings.TrimSpace(design) == "" || strings.TrimSpace(question) == "" {
		return "", &ValidationError{Message: "Design and question are required"}
	}
	if s.client == nil {
		return "", &ConfigurationError{Message: "GEMINI_API_KEY not configured"}
	}

	prompt := prompts.Format(prompts.MustGet(promptFile, "followup"), map[string]string{
		"Design":   design,
		"Question": question,
	})
	answer, err := s.client.GenerateText(ctx, s.tier, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return "", &ParseError{Message: "failed to generate answer"}
	}
	return answer, nil
}

// generateDiagram asks the provider for Mermaid source describing the design.
// Best-effort: any failure is logged and returns an empty diagram.
func (s *Service) generateDiagram(ctx context.Context, design string) string {
	prompt := prompts.Format(prompts.MustGet(promptFile, "diagram"), map[string]string{"Design": design})
	raw, err := s.client.GenerateText(ctx, s.tier, prompt)
	if err != nil {
		log.Printf("Diagram generation error: %v", err)
		return ""
	}
	return llm.CleanCodeBlock(raw)
}
