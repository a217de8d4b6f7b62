package language

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v3"
	"github.com/pmorgner/imagine/internal/log"
	"github.com/samber/do"
)

const grokModel = "grok-3"

// GrokGenerator generates prompt sets via xAI's OpenAI-compatible chat API.
type GrokGenerator struct {
	client openai.Client
}

func NewGrokGenerator(i *do.Injector) (Generator, error) {
	client, err := do.InvokeNamed[openai.Client](i, "xai")
	if err != nil {
		return nil, err
	}
	return &GrokGenerator{client: client}, nil
}

func (g *GrokGenerator) Generate(ctx context.Context, params Params) (string, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("grok").With("model", grokModel)
	log.Info("generating prompts via api.x.ai")

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: grokModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(params.System),
			openai.UserMessage(params.User),
		},
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion has no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
