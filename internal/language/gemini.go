package language

import (
	"context"
	"strings"

	"github.com/pmorgner/imagine/internal/log"
	"github.com/samber/do"
	"google.golang.org/genai"
)

const geminiModel = "gemini-3-pro-preview"

// GeminiGenerator generates prompt sets via Google's GenAI API.
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(i *do.Injector) (Generator, error) {
	client, err := do.Invoke[*genai.Client](i)
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{client: client}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, params Params) (string, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("gemini").With("model", geminiModel)
	log.Info("generating prompts via gemini")

	var config *genai.GenerateContentConfig
	if params.System != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(params.System, genai.RoleUser),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, geminiModel, genai.Text(params.User), config)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			text.WriteString(part.Text)
		}
		break
	}
	return text.String(), nil
}
