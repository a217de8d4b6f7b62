package image

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/openai/openai-go/v3"
	"github.com/pmorgner/imagine/internal/log"
	"github.com/samber/do"
)

const grokModel = "grok-2-image"

// GrokGenerator renders images via xAI's OpenAI-compatible image API. The
// provider returns either a URL to fetch or a base64 payload; both end up
// written verbatim to the destination path.
type GrokGenerator struct {
	client openai.Client
	http   *http.Client
}

func NewGrokGenerator(i *do.Injector) (Generator, error) {
	client, err := do.InvokeNamed[openai.Client](i, "xai")
	if err != nil {
		return nil, err
	}
	return &GrokGenerator{
		client: client,
		http:   do.MustInvoke[*http.Client](i),
	}, nil
}

func (g *GrokGenerator) Generate(ctx context.Context, params Params) error {
	log := log.FromContextOrDiscard(ctx).WithGroup("grok").With("model", grokModel, "path", params.Path)
	log.Info("generating image via api.x.ai")

	resp, err := g.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:  grokModel,
		Prompt: params.Prompt,
	})
	if err != nil {
		return err
	}
	if len(resp.Data) == 0 {
		return errors.New("image response has no data")
	}

	data, err := g.data(ctx, resp.Data[0])
	if err != nil {
		return err
	}
	return os.WriteFile(params.Path, data, 0o644)
}

func (g *GrokGenerator) data(ctx context.Context, image openai.Image) ([]byte, error) {
	if image.URL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, image.URL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := g.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		return io.ReadAll(resp.Body)
	}

	if image.B64JSON != "" {
		return base64.StdEncoding.DecodeString(image.B64JSON)
	}

	return nil, errors.New("image response has neither url nor b64_json")
}
