package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/PabloGalante/frickbooks/internal/domain"
)

type VertexClient struct {
	client    *genai.Client
	modelName string
}

// NewVertexClient creates an LLMClient based on Vertex AI (Gemini).
func NewVertexClient(ctx context.Context, projectID, location, modelName string) (*VertexClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("vertex project and location must be set")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Complete implements domain.LLMClient using Vertex AI.
func (v *VertexClient) Complete(ctx context.Context, req domain.CompletionRequest) (domain.Message, error) {
	system, turns := splitSystem(req.Messages)

	var contents []*genai.Content
	for _, m := range turns {
		var role genai.Role
		switch m.Role {
		case domain.RoleAssistant:
			role = genai.RoleModel
		default:
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	temp := float32(0.9)
	topP := float32(0.95)

	cfg := &genai.GenerateContentConfig{
		// Gemini takes the system instruction as user-role content
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   int32(2048),
	}

	model := req.Model
	if model == "" {
		model = v.modelName
	}

	res, err := v.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return domain.Message{}, fmt.Errorf("vertex generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return domain.Message{}, fmt.Errorf("vertex returned empty text")
	}

	return domain.Message{Role: domain.RoleAssistant, Content: text}, nil
}
