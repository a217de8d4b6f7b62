package param

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/do"
)

type EnvFetcher struct{}

func NewEnvFetcher(i *do.Injector) (Fetcher, error) {
	return &EnvFetcher{}, nil
}

func (*EnvFetcher) Fetch(_ context.Context, name string) (string, error) {
	if v := os.Getenv(name); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s environment variable not set", name)
}
