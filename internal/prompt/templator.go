// Package prompt renders the system and user prompts sent to the language
// model. Templates are read from the prompts/ directory when present so
// deployments can tune them without rebuilding; embedded defaults are used
// otherwise. The current date is the only template context value.
package prompt

import (
	"bytes"
	"context"
	"embed"
	"os"
	"path/filepath"
	"text/template"

	"github.com/pmorgner/imagine/internal/log"
	"github.com/samber/do"
)

//go:embed assets/daily-imagine-sys-prompt.tmpl assets/daily-imagine-user-prompt.tmpl
var assets embed.FS

const (
	systemTemplate = "daily-imagine-sys-prompt.tmpl"
	userTemplate   = "daily-imagine-user-prompt.tmpl"
)

type Params struct {
	CurrentDate string
}

type Templator struct {
	dir string
}

func NewTemplator(i *do.Injector) (*Templator, error) {
	dir := do.MustInvokeNamed[string](i, "prompt_dir")
	return &Templator{dir: dir}, nil
}

// Render returns the system and user prompts for the given ISO date.
func (t *Templator) Render(ctx context.Context, date string) (string, string, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("templator").With("dir", t.dir, "date", date)
	log.Info("rendering prompts")

	params := Params{CurrentDate: date}

	system, err := t.render(systemTemplate, params)
	if err != nil {
		return "", "", err
	}
	user, err := t.render(userTemplate, params)
	if err != nil {
		return "", "", err
	}
	return system, user, nil
}

func (t *Templator) render(name string, params Params) (string, error) {
	text, err := os.ReadFile(filepath.Join(t.dir, name))
	if err != nil {
		text, err = assets.ReadFile("assets/" + name)
		if err != nil {
			return "", err
		}
	}

	tmpl, err := template.New(name).Parse(string(text))
	if err != nil {
		return "", err
	}

	var data bytes.Buffer
	if err := tmpl.Execute(&data, params); err != nil {
		return "", err
	}
	return data.String(), nil
}
