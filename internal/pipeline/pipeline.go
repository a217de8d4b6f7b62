// Package pipeline drives the end-to-end run: render prompts, ask the
// language model for a prompt set, render each prompt to a file with the image
// model. Strictly sequential, fail-fast, no retries; files written before a
// failure stay on disk.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pmorgner/imagine/internal/image"
	"github.com/pmorgner/imagine/internal/language"
	"github.com/pmorgner/imagine/internal/log"
	"github.com/pmorgner/imagine/internal/parse"
	"github.com/pmorgner/imagine/internal/prompt"
	"github.com/samber/do"
)

// Filenames are the fixed destination slots, assigned to prompts in response
// order. The language model is asked for exactly this many prompts; more is
// an error before any image is generated.
var Filenames = []string{"alpha.png", "bravo.png", "charlie.png", "delta.png"}

type Pipeline struct {
	templator *prompt.Templator
	language  language.Generator
	image     image.Generator
	output    string
}

func New(i *do.Injector) (*Pipeline, error) {
	templator, err := do.Invoke[*prompt.Templator](i)
	if err != nil {
		return nil, err
	}
	lang, err := do.Invoke[language.Generator](i)
	if err != nil {
		return nil, err
	}
	img, err := do.Invoke[image.Generator](i)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		templator: templator,
		language:  lang,
		image:     img,
		output:    do.MustInvokeNamed[string](i, "output_dir"),
	}, nil
}

// Run executes one full generation pass and returns the written image paths
// in prompt order. Callers normalize each path afterwards.
func (p *Pipeline) Run(ctx context.Context) ([]string, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("pipeline")

	date := time.Now().UTC().Format("2006-01-02")
	system, user, err := p.templator.Render(ctx, date)
	if err != nil {
		return nil, err
	}

	logger.Info("generating image generation prompts")
	raw, err := p.language.Generate(ctx, language.Params{System: system, User: user})
	if err != nil {
		return nil, err
	}

	res, err := parse.Parse(ctx, raw)
	if err != nil {
		return nil, err
	}
	if len(res.Images) == 0 {
		return nil, errors.New("language response contains no images")
	}
	if len(res.Images) > len(Filenames) {
		return nil, fmt.Errorf("language response contains %d images, want at most %d", len(res.Images), len(Filenames))
	}

	paths := make([]string, 0, len(res.Images))
	for i, spec := range res.Images {
		logger.Info("generating image",
			"n", i+1,
			"total", len(res.Images),
			"date_relevance", spec.DateRelevance,
			"style", spec.Style,
			"colors", spec.Colors,
		)

		path := filepath.Join(p.output, Filenames[i])
		if err := p.image.Generate(ctx, image.Params{Prompt: spec.Prompt, Path: path}); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
