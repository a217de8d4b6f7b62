package handler_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/pmorgner/imagine/internal/handler"
	genimage "github.com/pmorgner/imagine/internal/image"
	"github.com/pmorgner/imagine/internal/language"
	"github.com/pmorgner/imagine/internal/pipeline"
	"github.com/pmorgner/imagine/internal/prompt"
	"github.com/pmorgner/imagine/internal/store"
	"github.com/samber/do"
	"github.com/stretchr/testify/require"
)

type fakeLanguage struct{}

func (*fakeLanguage) Generate(context.Context, language.Params) (string, error) {
	return `{"images":[
		{"prompt":"a cat","style":"s","colors":"c","date_relevance":"d"},
		{"prompt":"a dog","style":"s","colors":"c","date_relevance":"d"}
	]}`, nil
}

// fakeImage writes a real 300x200 PNG so normalization has bytes to work on.
type fakeImage struct{}

func (*fakeImage) Generate(_ context.Context, params genimage.Params) error {
	img := image.NewRGBA(image.Rect(0, 0, 300, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 300; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(params.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func newHandler(t *testing.T, output string) *handler.Handler {
	t.Helper()

	injector := do.New()
	do.ProvideValue[language.Generator](injector, &fakeLanguage{})
	do.ProvideValue[genimage.Generator](injector, &fakeImage{})
	do.ProvideNamedValue[string](injector, "output_dir", output)
	do.ProvideNamedValue[string](injector, "prompt_dir", t.TempDir())
	do.ProvideNamedValue[string](injector, "bucket", "")
	do.ProvideNamedValue[string](injector, "distribution", "")
	do.ProvideNamedValue[string](injector, "subreddit", "")
	do.ProvideNamedValue[string](injector, "base_url", "")
	do.Provide[*prompt.Templator](injector, prompt.NewTemplator)
	do.Provide[store.Uploader](injector, store.NewUploader)
	do.Provide[*pipeline.Pipeline](injector, pipeline.New)
	do.Provide[*handler.Handler](injector, handler.NewHandler)

	h, err := do.Invoke[*handler.Handler](injector)
	require.NoError(t, err)
	return h
}

func TestHandle(t *testing.T) {
	t.Chdir(t.TempDir())
	h := newHandler(t, t.TempDir())

	out, err := h.Handle(context.Background(), handler.Input{Date: "20260829"})
	require.NoError(t, err)
	require.Equal(t, "20260829", out.Date)
	require.Equal(t, []string{"20260829-alpha.png", "20260829-bravo.png"}, out.Keys)

	// without a bucket the uploader writes local files, dated plus latest
	for _, name := range []string{"20260829-alpha.png", "20260829-bravo.png", "latest-alpha.png", "latest-bravo.png"} {
		f, err := os.Open(name)
		require.NoError(t, err)
		img, err := png.Decode(f)
		require.NoError(t, f.Close())
		require.NoError(t, err)
		require.Equal(t, 150, img.Bounds().Dx())
		require.Equal(t, 150, img.Bounds().Dy())
	}
}

func TestHandleDefaultsDate(t *testing.T) {
	t.Chdir(t.TempDir())
	h := newHandler(t, t.TempDir())

	out, err := h.Handle(context.Background(), handler.Input{Width: 100, Height: 100})
	require.NoError(t, err)
	require.NotEmpty(t, out.Date)
	require.Len(t, out.Keys, 2)

	f, err := os.Open(out.Keys[0])
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 100, img.Bounds().Dx())
}
