package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmorgner/imagine/internal/image"
	"github.com/pmorgner/imagine/internal/language"
	"github.com/pmorgner/imagine/internal/parse"
	"github.com/pmorgner/imagine/internal/pipeline"
	"github.com/pmorgner/imagine/internal/prompt"
	"github.com/samber/do"
	"github.com/stretchr/testify/require"
)

type fakeLanguage struct {
	response string
	err      error
	calls    int
	params   language.Params
}

func (f *fakeLanguage) Generate(_ context.Context, params language.Params) (string, error) {
	f.calls++
	f.params = params
	return f.response, f.err
}

type fakeImage struct {
	calls []image.Params
	errAt int // 1-based call number that fails, 0 for never
}

func (f *fakeImage) Generate(_ context.Context, params image.Params) error {
	f.calls = append(f.calls, params)
	if f.errAt > 0 && len(f.calls) == f.errAt {
		return errors.New("render failed")
	}
	return nil
}

func newPipeline(t *testing.T, lang *fakeLanguage, img *fakeImage, output string) *pipeline.Pipeline {
	t.Helper()

	injector := do.New()
	do.ProvideValue[language.Generator](injector, lang)
	do.ProvideValue[image.Generator](injector, img)
	do.ProvideNamedValue[string](injector, "output_dir", output)
	do.ProvideNamedValue[string](injector, "prompt_dir", t.TempDir())
	do.Provide[*prompt.Templator](injector, prompt.NewTemplator)

	p, err := pipeline.New(injector)
	require.NoError(t, err)
	return p
}

func response(n int) string {
	specs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		specs = append(specs, fmt.Sprintf(`{"prompt":"prompt %d","style":"s","colors":"c","date_relevance":"d"}`, i))
	}
	return fmt.Sprintf(`{"images":[%s]}`, strings.Join(specs, ","))
}

func TestRunOrdering(t *testing.T) {
	out := t.TempDir()
	lang := &fakeLanguage{response: response(3)}
	img := &fakeImage{}

	paths, err := newPipeline(t, lang, img, out).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{
		filepath.Join(out, "alpha.png"),
		filepath.Join(out, "bravo.png"),
		filepath.Join(out, "charlie.png"),
	}, paths)

	require.Len(t, img.calls, 3)
	for i, call := range img.calls {
		require.Equal(t, fmt.Sprintf("prompt %d", i), call.Prompt)
		require.Equal(t, paths[i], call.Path)
	}
}

func TestRunSinglePrompt(t *testing.T) {
	out := t.TempDir()
	lang := &fakeLanguage{response: `{"images":[{"prompt":"a cat","style":"x","colors":"y","date_relevance":"z"}]}`}
	img := &fakeImage{}

	paths, err := newPipeline(t, lang, img, out).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, paths, 1)
	require.Len(t, img.calls, 1)
	require.Equal(t, "a cat", img.calls[0].Prompt)
	require.True(t, strings.HasSuffix(img.calls[0].Path, "alpha.png"))
}

func TestRunRendersPrompts(t *testing.T) {
	lang := &fakeLanguage{response: response(1)}
	_, err := newPipeline(t, lang, &fakeImage{}, t.TempDir()).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, lang.calls)
	require.NotEmpty(t, lang.params.System)
	require.NotEmpty(t, lang.params.User)
}

func TestRunFencedResponse(t *testing.T) {
	lang := &fakeLanguage{response: "```json\n" + response(2) + "\n```"}
	img := &fakeImage{}

	paths, err := newPipeline(t, lang, img, t.TempDir()).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, paths, 2)
}

func TestRunTooManyPrompts(t *testing.T) {
	lang := &fakeLanguage{response: response(5)}
	img := &fakeImage{}

	_, err := newPipeline(t, lang, img, t.TempDir()).Run(context.Background())
	require.ErrorContains(t, err, "at most 4")
	require.Empty(t, img.calls)
}

func TestRunNoImages(t *testing.T) {
	lang := &fakeLanguage{response: `{"images":[]}`}
	_, err := newPipeline(t, lang, &fakeImage{}, t.TempDir()).Run(context.Background())
	require.ErrorContains(t, err, "no images")
}

func TestRunParseError(t *testing.T) {
	lang := &fakeLanguage{response: `not json at all`}
	img := &fakeImage{}

	_, err := newPipeline(t, lang, img, t.TempDir()).Run(context.Background())
	var perr *parse.Error
	require.ErrorAs(t, err, &perr)
	require.Empty(t, img.calls)
}

func TestRunLanguageError(t *testing.T) {
	want := errors.New("provider down")
	lang := &fakeLanguage{err: want}
	img := &fakeImage{}

	_, err := newPipeline(t, lang, img, t.TempDir()).Run(context.Background())
	require.ErrorIs(t, err, want)
	require.Empty(t, img.calls)
}

func TestRunFailFast(t *testing.T) {
	lang := &fakeLanguage{response: response(3)}
	img := &fakeImage{errAt: 2}

	_, err := newPipeline(t, lang, img, t.TempDir()).Run(context.Background())
	require.ErrorContains(t, err, "render failed")
	// second call fails, third never happens
	require.Len(t, img.calls, 2)
}
