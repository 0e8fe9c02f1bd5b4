package server

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/generative-ai-go/genai"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/review"
)

// stubClient scripts provider replies in call order for handler tests.
type stubClient struct {
	replies []stubReply
	calls   int
}

type stubReply struct {
	text string
	err  error
}

func (c *stubClient) next() stubReply {
	if c.calls >= len(c.replies) {
		return stubReply{err: errors.New("unexpected provider call")}
	}
	r := c.replies[c.calls]
	c.calls++
	return r
}

func (c *stubClient) GenerateParts(context.Context, llm.ModelTier, ...genai.Part) (string, error) {
	r := c.next()
	return r.text, r.err
}

func (c *stubClient) GenerateText(context.Context, llm.ModelTier, string) (string, error) {
	r := c.next()
	return r.text, r.err
}

func (c *stubClient) GetModel(llm.ModelTier) string { return "stub-model" }

func (c *stubClient) Close() error { return nil }

// newTestServer builds a server with no history store and the given provider
// client (nil means unconfigured credentials).
func newTestServer(client llm.Client) *Server {
	return &Server{
		llmClient: client,
		service:   review.NewService(client),
		validate:  validator.New(),
	}
}
