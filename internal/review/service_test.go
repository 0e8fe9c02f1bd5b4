package review

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/llm"
)

// fakeClient scripts provider replies in call order. Critique consumes two
// replies (critique text, then diagram); the other flows consume one.
type fakeClient struct {
	replies []fakeReply
	calls   int
	prompts []string
	parts   [][]genai.Part
}

type fakeReply struct {
	text string
	err  error
}

func (f *fakeClient) next() fakeReply {
	if f.calls >= len(f.replies) {
		return fakeReply{err: errors.New("unexpected provider call")}
	}
	r := f.replies[f.calls]
	f.calls++
	return r
}

func (f *fakeClient) GenerateParts(_ context.Context, _ llm.ModelTier, parts ...genai.Part) (string, error) {
	f.parts = append(f.parts, parts)
	r := f.next()
	return r.text, r.err
}

func (f *fakeClient) GenerateText(_ context.Context, _ llm.ModelTier, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	r := f.next()
	return r.text, r.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func TestCritique_EmptyDesign(t *testing.T) {
	svc := NewService(&fakeClient{})

	_, err := svc.Critique(context.Background(), "   \n")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCritique_NoClient(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.Critique(context.Background(), "a URL shortener with a cache")

	var configErr *ConfigurationError
	require.ErrorAs(t, err, &configErr)
}

func TestCritique_Success(t *testing.T) {
	client := &fakeClient{replies: []fakeReply{
		{text: `Here is my analysis: {
			"blindSpots": ["No monitoring", {"issue": "No DR plan", "severity": "high"}],
			"tradeOffs": ["CP over AP"],
			"bottlenecks": [],
			"infrastructureRecommendations": ["Use SQS"],
			"failureModes": ["Single Redis node"],
			"deepDiveQuestions": ["How do you shard?", "What about hot keys?"]
		} hope that helps!`},
		{text: "```mermaid\ngraph TB\n  A[API] --> B[(DB)]\n```"},
	}}
	svc := NewService(client)

	report, err := svc.Critique(context.Background(), "A URL shortener")
	require.NoError(t, err)

	assert.Equal(t, []string{"No monitoring", "No DR plan. high"}, report.Feedback.BlindSpots)
	assert.Equal(t, []string{"CP over AP"}, report.Feedback.TradeOffs)
	assert.Equal(t, []string{}, report.Feedback.Bottlenecks)
	assert.Equal(t, []string{"Use SQS"}, report.Feedback.InfrastructureRecommendations)
	assert.Equal(t, []string{"How do you shard?", "What about hot keys?"}, report.Feedback.DeepDiveQuestions)
	assert.Equal(t, "graph TB\n  A[API] --> B[(DB)]", report.Diagram)

	// Two sequential text calls: the critique then the diagram, both
	// carrying the design text.
	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[0], "A URL shortener")
	assert.Contains(t, client.prompts[1], "A URL shortener")
	assert.Contains(t, client.prompts[1], "Mermaid")
}

func TestCritique_DiagramFailureIsNotFatal(t *testing.T) {
	client := &fakeClient{replies: []fakeReply{
		{text: `{"blindSpots": ["a"], "tradeOffs": [], "bottlenecks": [], "infrastructureRecommendations": [], "failureModes": [], "deepDiveQuestions": []}`},
		{err: errors.New("provider exploded")},
	}}
	svc := NewService(client)

	report, err := svc.Critique(context.Background(), "A URL shortener")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, report.Feedback.BlindSpots)
	assert.Equal(t, "", report.Diagram)
}

func TestCritique_NoJSONInReply(t *testing.T) {
	client := &fakeClient{replies: []fakeReply{
		{text: "I'm sorry, I can't analyze this design."},
	}}
	svc := NewService(client)

	_, err := svc.Critique(context.Background(), "A URL shortener")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	var extractionErr *llm.ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}

func TestCritique_MalformedJSONInReply(t *testing.T) {
	client := &fakeClient{replies: []fakeReply{
		{text: `{"blindSpots": [unquoted]}`},
	}}
	svc := NewService(client)

	_, err := svc.Critique(context.Background(), "A URL shortener")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestCritique_ProviderErrorPropagates(t *testing.T) {
	providerErr := &llm.QuotaError{Err: errors.New("429: quota exceeded")}
	client := &fakeClient{replies: []fakeReply{{err: providerErr}}}
	svc := NewService(client)

	_, err := svc.Critique(context.Background(), "A URL shortener")

	var quotaErr *llm.QuotaError
	require.ErrorAs(t, err, &quotaErr)
}

func TestEvaluate_Validation(t *testing.T) {
	svc := NewService(&fakeClient{})

	tests := []struct {
		name        string
		question    string
		response    string
		drawingData string
	}{
		{name: "empty question", question: "", response: "some design"},
		{name: "blank question", question: "  ", response: "some design"},
		{name: "no response and no drawing", question: "Design a URL shortener", response: ""},
		{name: "blank response and no drawing", question: "Design a URL shortener", response: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Evaluate(context.Background(), tt.question, tt.response, tt.drawingData)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestEvaluate_DrawingOnlyIsAccepted(t *testing.T) {
	client := &fakeClient{replies: []fakeReply{
		{text: `{"score": 6, "strengths": ["clear diagram"], "improvements": [], "missingComponents": [], "deepDiveQuestions": []}`},
	}}
	svc := NewService(client)

	result, err := svc.Evaluate(context.Background(), "Design Dropbox", "", "data:image/png;base64,cG5nLWJ5dGVz")
	require.NoError(t, err)
	assert.Equal(t, 6, result.Score)

	// The message carries both the text part and the inline image part.
	require.Len(t, client.parts, 1)
	require.Len(t, client.parts[0], 2)
}

func TestEvaluate_Success(t *testing.T) {
	client := &fakeClient{replies: []fakeReply{
		{text: `Evaluation follows. {
			"score": "8",
			"strengths": ["s1", "s2", "s3", "s4", "s5", "s6"],
			"improvements": [{"note": "add caching"}],
			"missingComponents": ["CDN"],
			"deepDiveQuestions": ["q1", "q2", "q3", "q4"]
		}`},
	}}
	svc := NewService(client)

	result, err := svc.Evaluate(context.Background(), "Design Twitter", "fan-out on write", "")
	require.NoError(t, err)

	assert.Equal(t, 8, result.Score)
	assert.Equal(t, []string{"s1", "s2", "s3", "s4", "s5"}, result.Strengths, "capped at 5")
	assert.Equal(t, []string{"add caching"}, result.Improvements)
	assert.Equal(t, []string{"CDN"}, result.MissingComponents)
	assert.Equal(t, []string{"q1", "q2", "q3"}, result.DeepDiveQuestions, "capped at 3")
}

func TestEvaluate_ScoreOutOfRangeFailsWholeCall(t *testing.T) {
	client := &fakeClient{replies: []fakeReply{
		{text: `{"score": 12, "strengths": ["good"], "improvements": [], "missingComponents": [], "deepDiveQuestions": []}`},
	}}
	svc := NewService(client)

	result, err := svc.Evaluate(context.Background(), "Design Twitter", "fan-out on write", "")

	assert.Nil(t, result, "no partial evaluation is ever returned")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	var scoreErr *InvalidScoreError
	assert.ErrorAs(t, err, &scoreErr)
}

func TestEvaluate_MissingScoreFailsWholeCall(t *testing.T) {
	client := &fakeClient{replies: []fakeReply{
		{text: `{"strengths": ["good"], "improvements": [], "missingComponents": [], "deepDiveQuestions": []}`},
	}}
	svc := NewService(client)

	_, err := svc.Evaluate(context.Background(), "Design Twitter", "fan-out on write", "")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFollowUp(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		svc := NewService(&fakeClient{})
		for _, pair := range [][2]string{{"", "q"}, {"design", ""}, {" ", " "}} {
			_, err := svc.FollowUp(context.Background(), pair[0], pair[1])
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		}
	})

	t.Run("success", func(t *testing.T) {
		client := &fakeClient{replies: []fakeReply{
			{text: "Use consistent hashing for the cache layer."},
		}}
		svc := NewService(client)

		answer, err := svc.FollowUp(context.Background(), "a URL shortener", "How do I scale the cache?")
		require.NoError(t, err)
		assert.Equal(t, "Use consistent hashing for the cache layer.", answer)

		require.Len(t, client.prompts, 1)
		assert.Contains(t, client.prompts[0], "a URL shortener")
		assert.Contains(t, client.prompts[0], "How do I scale the cache?")
	})

	t.Run("empty answer", func(t *testing.T) {
		client := &fakeClient{replies: []fakeReply{{text: "  \n"}}}
		svc := NewService(client)

		_, err := svc.FollowUp(context.Background(), "a URL shortener", "How do I scale?")
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})
}
