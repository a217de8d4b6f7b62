// Package handler runs the daily pipeline inside AWS Lambda and publishes the
// results: normalized images to S3 under dated keys, a refreshed RSS feed, a
// CloudFront invalidation, and an optional reddit announcement.
package handler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pmorgner/imagine/internal/feed"
	"github.com/pmorgner/imagine/internal/log"
	"github.com/pmorgner/imagine/internal/normalize"
	"github.com/pmorgner/imagine/internal/pipeline"
	"github.com/pmorgner/imagine/internal/post"
	"github.com/pmorgner/imagine/internal/store"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type Input struct {
	Date   string `json:"date,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type Output struct {
	Date string   `json:"date"`
	Keys []string `json:"keys"`
}

type Handler struct {
	pipeline *pipeline.Pipeline
	uploader store.Uploader

	invalidator store.Invalidator
	feed        *feed.Generator
	poster      post.Poster

	bucket  string
	baseURL string
}

func NewHandler(i *do.Injector) (*Handler, error) {
	p, err := do.Invoke[*pipeline.Pipeline](i)
	if err != nil {
		return nil, err
	}
	uploader, err := do.Invoke[store.Uploader](i)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		pipeline: p,
		uploader: uploader,
		bucket:   do.MustInvokeNamed[string](i, "bucket"),
		baseURL:  strings.TrimRight(do.MustInvokeNamed[string](i, "base_url"), "/"),
	}

	if do.MustInvokeNamed[string](i, "distribution") != "" {
		if h.invalidator, err = do.Invoke[store.Invalidator](i); err != nil {
			return nil, err
		}
	}
	if h.bucket != "" {
		if h.feed, err = do.Invoke[*feed.Generator](i); err != nil {
			return nil, err
		}
	}
	if do.MustInvokeNamed[string](i, "subreddit") != "" {
		if h.poster, err = do.Invoke[post.Poster](i); err != nil {
			return nil, err
		}
	}

	return h, nil
}

func (h *Handler) Handle(ctx context.Context, input Input) (Output, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("Handler").With("input", input)
	log.Info("handling lambda invocation")

	if input.Date == "" {
		input.Date = time.Now().UTC().Format("20060102")
	}
	width := lo.Ternary(input.Width > 0, input.Width, 150)
	height := lo.Ternary(input.Height > 0, input.Height, 150)

	paths, err := h.pipeline.Run(ctx)
	if err != nil {
		return Output{}, err
	}

	out := Output{Date: input.Date}
	invalidations := make([]string, 0, 2*len(paths)+1)
	for _, path := range paths {
		if _, err := normalize.Square(ctx, path, width, height); err != nil {
			return Output{}, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return Output{}, err
		}

		slot := strings.TrimSuffix(filepath.Base(path), ".png")
		metadata := map[string]string{"date": input.Date, "slot": slot}
		for _, name := range []string{
			fmt.Sprintf("%s-%s.png", input.Date, slot),
			fmt.Sprintf("latest-%s.png", slot),
		} {
			if err := h.uploader.Upload(ctx, store.UploadParams{
				Name:        name,
				Data:        data,
				ContentType: "image/png",
				Metadata:    metadata,
			}); err != nil {
				return Output{}, err
			}
			invalidations = append(invalidations, "/"+name)
		}
		out.Keys = append(out.Keys, fmt.Sprintf("%s-%s.png", input.Date, slot))
	}

	if h.feed != nil {
		rss, err := h.feed.Generate(ctx)
		if err != nil {
			return Output{}, err
		}
		if err := h.uploader.Upload(ctx, store.UploadParams{
			Name:        "feed.xml",
			Data:        rss,
			ContentType: "application/rss+xml",
		}); err != nil {
			return Output{}, err
		}
		invalidations = append(invalidations, "/feed.xml")
	}

	if h.invalidator != nil {
		if err := h.invalidator.Invalidate(ctx, invalidations); err != nil {
			return Output{}, err
		}
	}

	if h.poster != nil {
		url := fmt.Sprintf("%s/%s-alpha.png", h.baseURL, input.Date)
		if err := h.poster.Post(ctx, post.Params{Date: input.Date, URL: url}); err != nil {
			return Output{}, err
		}
	}

	return out, nil
}
