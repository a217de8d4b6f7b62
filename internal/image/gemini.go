package image

import (
	"context"
	"errors"
	"os"

	"github.com/pmorgner/imagine/internal/log"
	"github.com/samber/do"
	"google.golang.org/genai"
)

const geminiModel = "gemini-3-pro-image-preview"

// GeminiGenerator renders images via Google's GenAI API. Image bytes come back
// inline in the response parts.
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

func (g *GeminiGenerator) Generate(ctx context.Context, params Params) error {
	log := log.FromContextOrDiscard(ctx).WithGroup("gemini").With("model", geminiModel, "path", params.Path)
	log.Info("generating image via gemini")

	resp, err := g.client.Models.GenerateContent(ctx, geminiModel, genai.Text(params.Prompt), nil)
	if err != nil {
		return err
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil {
				continue
			}
			log.Info("received inline image data", "mime_type", part.InlineData.MIMEType)
			return os.WriteFile(params.Path, part.InlineData.Data, 0o644)
		}
	}
	return errors.New("response has no inline image data")
}
