// Package parse extracts the structured prompt payload from a language model
// response. Models routinely wrap JSON in Markdown code fences; the parser
// strips the first fenced block (```json ... ``` or ``` ... ```) before
// decoding, or decodes the whole trimmed text when no fence is present.
package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pmorgner/imagine/internal/log"
)

const snippetLen = 200

var fence = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// PromptSpec is one image description from the language model. Only Prompt is
// fed to the image generator; the rest is diagnostic.
type PromptSpec struct {
	Prompt        string `json:"prompt"`
	Style         string `json:"style"`
	Colors        string `json:"colors"`
	DateRelevance string `json:"date_relevance"`
}

type Response struct {
	Images []PromptSpec `json:"images"`
}

// Error reports a JSON decode failure along with a truncated snippet of the
// text the parser attempted to decode.
type Error struct {
	Err     error
	Snippet string
}

func (e *Error) Error() string {
	return fmt.Sprintf("error parsing JSON: %v (attempted to parse: %s)", e.Err, e.Snippet)
}

func (e *Error) Unwrap() error { return e.Err }

// ValidationError reports a decoded entry missing its required prompt. Kept
// distinct from Error so callers can tell malformed JSON from a well-formed
// response with a bad entry.
type ValidationError struct {
	Index int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("image %d has no prompt", e.Index)
}

func Parse(ctx context.Context, text string) (*Response, error) {
	candidate := text
	if m := fence.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	}
	candidate = strings.TrimSpace(candidate)

	var res Response
	if err := json.Unmarshal([]byte(candidate), &res); err != nil {
		return nil, &Error{Err: err, Snippet: snippet(candidate)}
	}

	for i, img := range res.Images {
		if img.Prompt == "" {
			return nil, &ValidationError{Index: i}
		}
	}

	log.FromContextOrDiscard(ctx).WithGroup("parse").Debug("parsed language response", "images", len(res.Images))
	return &res, nil
}

func snippet(s string) string {
	if len(s) > snippetLen {
		return s[:snippetLen] + "..."
	}
	return s
}
