// Package inject is the composition root. Setup wires the CLI object graph;
// SetupLambda extends it for the scheduled Lambda deployment (SSM-backed
// secrets, S3/CloudFront publishing, feed and reddit announcements).
//
// Provider clients are registered lazily, so a credential is only resolved
// when a selected role actually needs that provider, and both roles share one
// underlying client when they pick the same provider.
package inject

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pmorgner/imagine/internal/feed"
	"github.com/pmorgner/imagine/internal/handler"
	"github.com/pmorgner/imagine/internal/image"
	"github.com/pmorgner/imagine/internal/language"
	"github.com/pmorgner/imagine/internal/log"
	"github.com/pmorgner/imagine/internal/model"
	"github.com/pmorgner/imagine/internal/param"
	"github.com/pmorgner/imagine/internal/pipeline"
	"github.com/pmorgner/imagine/internal/post"
	"github.com/pmorgner/imagine/internal/prompt"
	"github.com/pmorgner/imagine/internal/store"
	"github.com/samber/do"
	"google.golang.org/genai"
)

const xaiBaseURL = "https://api.x.ai/v1/"

type Config struct {
	Language  model.Language
	Image     model.Image
	Output    string
	PromptDir string
}

func Setup(ctx context.Context, cfg Config) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	})

	do.ProvideValue[*http.Client](injector, http.DefaultClient)
	do.Provide[param.Fetcher](injector, param.NewEnvFetcher)

	do.ProvideNamedValue[string](injector, "output_dir", cfg.Output)
	do.ProvideNamedValue[string](injector, "prompt_dir", cfg.PromptDir)
	do.ProvideNamedValue[string](injector, "xai_key_name", "XAI_API_KEY")
	do.ProvideNamedValue[string](injector, "google_key_name", "GOOGLE_API_KEY")

	do.ProvideNamed[string](injector, "xai_api_key", func(i *do.Injector) (string, error) {
		f, err := do.Invoke[param.Fetcher](i)
		if err != nil {
			return "", err
		}
		return f.Fetch(ctx, do.MustInvokeNamed[string](i, "xai_key_name"))
	})
	do.ProvideNamed[string](injector, "google_api_key", func(i *do.Injector) (string, error) {
		f, err := do.Invoke[param.Fetcher](i)
		if err != nil {
			return "", err
		}
		return f.Fetch(ctx, do.MustInvokeNamed[string](i, "google_key_name"))
	})

	do.ProvideNamed[openai.Client](injector, "xai", func(i *do.Injector) (openai.Client, error) {
		key, err := do.InvokeNamed[string](i, "xai_api_key")
		if err != nil {
			return openai.Client{}, err
		}
		return openai.NewClient(
			option.WithAPIKey(key),
			option.WithBaseURL(xaiBaseURL),
			option.WithHTTPClient(do.MustInvoke[*http.Client](i)),
		), nil
	})
	do.Provide[*genai.Client](injector, func(i *do.Injector) (*genai.Client, error) {
		key, err := do.InvokeNamed[string](i, "google_api_key")
		if err != nil {
			return nil, err
		}
		return genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     key,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: do.MustInvoke[*http.Client](i),
		})
	})

	do.Provide[language.Generator](injector, func(i *do.Injector) (language.Generator, error) {
		switch cfg.Language {
		case model.LanguageGrok:
			return language.NewGrokGenerator(i)
		case model.LanguageGemini:
			return language.NewGeminiGenerator(i)
		}
		return nil, fmt.Errorf("%s API unsupported", cfg.Language)
	})
	do.Provide[image.Generator](injector, func(i *do.Injector) (image.Generator, error) {
		switch cfg.Image {
		case model.ImageGrok:
			return image.NewGrokGenerator(i)
		case model.ImageGemini:
			return image.NewGeminiGenerator(i)
		}
		return nil, fmt.Errorf("%s API unsupported", cfg.Image)
	})

	do.Provide[*prompt.Templator](injector, prompt.NewTemplator)
	do.Provide[*pipeline.Pipeline](injector, pipeline.New)

	return injector
}

// SetupLambda builds on Setup: secrets come from SSM Parameter Store (env vars
// carry the parameter paths) and the publish collaborators are registered.
func SetupLambda(ctx context.Context, cfg Config) *do.Injector {
	injector := Setup(ctx, cfg)

	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return awsconfig.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*cloudfront.Client](injector, func(i *do.Injector) (*cloudfront.Client, error) {
		return cloudfront.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})

	do.Override[param.Fetcher](injector, param.NewParameterStoreFetcher)
	do.OverrideNamedValue[string](injector, "xai_key_name", os.Getenv("XAI_API_KEY_PARAM"))
	do.OverrideNamedValue[string](injector, "google_key_name", os.Getenv("GOOGLE_API_KEY_PARAM"))

	do.ProvideNamedValue[string](injector, "bucket", os.Getenv("BUCKET"))
	do.ProvideNamedValue[string](injector, "distribution", os.Getenv("DISTRIBUTION"))
	do.ProvideNamedValue[string](injector, "subreddit", os.Getenv("SUBREDDIT"))
	do.ProvideNamedValue[string](injector, "base_url", os.Getenv("BASE_URL"))

	do.ProvideNamed[string](injector, "reddit_client_id", func(i *do.Injector) (string, error) {
		return do.MustInvoke[param.Fetcher](i).Fetch(ctx, os.Getenv("REDDIT_CLIENT_ID_PARAM"))
	})
	do.ProvideNamed[string](injector, "reddit_client_secret", func(i *do.Injector) (string, error) {
		return do.MustInvoke[param.Fetcher](i).Fetch(ctx, os.Getenv("REDDIT_CLIENT_SECRET_PARAM"))
	})
	do.ProvideNamed[string](injector, "reddit_username", func(i *do.Injector) (string, error) {
		return do.MustInvoke[param.Fetcher](i).Fetch(ctx, os.Getenv("REDDIT_USERNAME_PARAM"))
	})
	do.ProvideNamed[string](injector, "reddit_password", func(i *do.Injector) (string, error) {
		return do.MustInvoke[param.Fetcher](i).Fetch(ctx, os.Getenv("REDDIT_PASSWORD_PARAM"))
	})

	do.Provide[store.Uploader](injector, store.NewUploader)
	do.Provide[store.Invalidator](injector, store.NewCloudFrontInvalidator)
	do.Provide[*feed.Generator](injector, feed.NewS3Generator)
	do.Provide[post.Poster](injector, post.NewRedditPoster)
	do.Provide[*handler.Handler](injector, handler.NewHandler)

	return injector
}
