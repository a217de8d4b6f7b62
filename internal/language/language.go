package language

import "context"

type Params struct {
	System string
	User   string
}

// Generator turns a system/user prompt pair into raw text. The response may or
// may not be well-formed JSON; callers run it through internal/parse. Provider
// errors propagate untouched, there are no retries here.
type Generator interface {
	Generate(context.Context, Params) (string, error)
}
