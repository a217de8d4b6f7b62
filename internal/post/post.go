package post

import "context"

type Params struct {
	Date string
	URL  string
}

// Poster announces a published gallery somewhere.
type Poster interface {
	Post(context.Context, Params) error
}
