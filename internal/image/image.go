package image

import "context"

type Params struct {
	Prompt string
	Path   string
}

// Generator renders a prompt to an image file at Params.Path, overwriting any
// existing file. Variants differ in how the provider returns image data (raw
// bytes behind a URL, base64 payloads, inline response parts) but all leave a
// single file at Path on success.
type Generator interface {
	Generate(context.Context, Params) error
}
