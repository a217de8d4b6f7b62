package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pmorgner/imagine/internal/handler"
	"github.com/pmorgner/imagine/internal/inject"
	"github.com/pmorgner/imagine/internal/log"
	"github.com/pmorgner/imagine/internal/model"
	"github.com/samber/do"
	"github.com/samber/lo"
)

func main() {
	logger := log.New(os.Stderr)
	ctx := log.NewContext(context.Background(), logger)

	output := filepath.Join(os.TempDir(), "imagine")
	if err := os.MkdirAll(output, 0o755); err != nil {
		logger.Error("creating output directory", "error", err)
		os.Exit(1)
	}

	cfg := inject.Config{
		Language:  model.Language(lo.Ternary(os.Getenv("LANGUAGE_MODEL") != "", os.Getenv("LANGUAGE_MODEL"), string(model.LanguageGrok))),
		Image:     model.Image(lo.Ternary(os.Getenv("IMAGE_MODEL") != "", os.Getenv("IMAGE_MODEL"), string(model.ImageGemini))),
		Output:    output,
		PromptDir: "prompts",
	}

	injector := inject.SetupLambda(ctx, cfg)
	handler := do.MustInvoke[*handler.Handler](injector)
	lambda.StartWithOptions(handler.Handle, lambda.WithContext(ctx), lambda.WithEnableSIGTERM(func() {
		_ = injector.Shutdown()
	}))
}
