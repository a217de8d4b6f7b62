package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pmorgner/imagine/internal/inject"
	"github.com/pmorgner/imagine/internal/log"
	"github.com/pmorgner/imagine/internal/model"
	"github.com/pmorgner/imagine/internal/normalize"
	"github.com/pmorgner/imagine/internal/pipeline"
	"github.com/samber/do"
)

func main() {
	var (
		languageFlag string
		imageFlag    string
		width        int
		height       int
		output       string
		dryRun       bool
	)

	flag.StringVar(&languageFlag, "language", string(model.LanguageGrok), "language generation model (grok or gemini)")
	flag.StringVar(&languageFlag, "l", string(model.LanguageGrok), "language generation model (shorthand)")
	flag.StringVar(&imageFlag, "image", string(model.ImageGemini), "image generation model (grok or gemini)")
	flag.StringVar(&imageFlag, "i", string(model.ImageGemini), "image generation model (shorthand)")
	flag.IntVar(&width, "width", 150, "output image width")
	flag.IntVar(&height, "height", 150, "output image height")
	flag.StringVar(&output, "output", "./out", "output directory for generated images")
	flag.StringVar(&output, "o", "./out", "output directory (shorthand)")
	flag.BoolVar(&dryRun, "dry-run", false, "print configuration without generating images")
	flag.Parse()

	logger := log.New(os.Stderr)
	ctx := log.NewContext(context.Background(), logger)

	language, err := model.ParseLanguage(languageFlag)
	if err != nil {
		usage(err)
	}
	image, err := model.ParseImage(imageFlag)
	if err != nil {
		usage(err)
	}

	logger.Info("configuration",
		"language", language,
		"image", image,
		"output", output,
		"width", width,
		"height", height,
	)

	if dryRun {
		logger.Info("dry run - skipping generation")
		return
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		fatal(logger, err)
	}

	injector := inject.Setup(ctx, inject.Config{
		Language:  language,
		Image:     image,
		Output:    output,
		PromptDir: "prompts",
	})
	defer func() { _ = injector.Shutdown() }()

	p, err := do.Invoke[*pipeline.Pipeline](injector)
	if err != nil {
		fatal(logger, err)
	}

	paths, err := p.Run(ctx)
	if err != nil {
		fatal(logger, err)
	}

	for _, path := range paths {
		if _, err := normalize.Square(ctx, path, width, height); err != nil {
			fatal(logger, err)
		}
	}

	logger.Info("done", "images", len(paths))
}

func usage(err error) {
	fmt.Fprintln(os.Stderr, err)
	flag.Usage()
	os.Exit(2)
}

func fatal(logger *slog.Logger, err error) {
	logger.Error("run failed", "error", err)
	os.Exit(1)
}
