package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Completer is the generative-completion collaborator: one structured-output
// request shape and one grounded free-text request shape. Handlers and
// services depend on this so tests can substitute a fake.
type Completer interface {
	GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	GenerateGrounded(ctx context.Context, prompt string) (string, error)
}

type LLMService struct {
	client        *genai.Client
	analysisModel string
	searchModel   string
}

func NewLLMService(ctx context.Context, apiKey, analysisModel, searchModel string) (*LLMService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &LLMService{
		client:        client,
		analysisModel: analysisModel,
		searchModel:   searchModel,
	}, nil
}

// GenerateStructured issues one completion constrained to the given JSON
// schema and returns the raw JSON text.
func (s *LLMService) GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx,
		s.analysisModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no content")
	}
	return resp.Text(), nil
}

// GenerateGrounded issues one completion with web-search grounding enabled
// and returns the free text, fenced payload included.
func (s *LLMService) GenerateGrounded(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx,
		s.searchModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no content")
	}
	return resp.Text(), nil
}
