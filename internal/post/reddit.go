package post

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/pmorgner/imagine/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/vartanbeno/go-reddit/v2/reddit"
)

type RedditPoster struct {
	client    *reddit.Client
	subreddit string
}

func NewRedditPoster(i *do.Injector) (Poster, error) {
	id, err := do.InvokeNamed[string](i, "reddit_client_id")
	if err != nil {
		return nil, err
	}
	secret, err := do.InvokeNamed[string](i, "reddit_client_secret")
	if err != nil {
		return nil, err
	}
	username, err := do.InvokeNamed[string](i, "reddit_username")
	if err != nil {
		return nil, err
	}
	password, err := do.InvokeNamed[string](i, "reddit_password")
	if err != nil {
		return nil, err
	}
	subreddit := do.MustInvokeNamed[string](i, "subreddit")

	info, _ := debug.ReadBuildInfo()
	setting := lo.FindOrElse(info.Settings, debug.BuildSetting{Value: "unknown"}, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	})

	client, err := reddit.NewClient(
		reddit.Credentials{ID: id, Secret: secret, Username: username, Password: password},
		reddit.WithUserAgent("web:imagine:"+setting.Value),
	)
	if err != nil {
		return nil, err
	}

	return &RedditPoster{client: client, subreddit: subreddit}, nil
}

func (p *RedditPoster) Post(ctx context.Context, params Params) error {
	log.FromContextOrDiscard(ctx).Info("posting to reddit", "subreddit", p.subreddit)
	_, _, err := p.client.Post.SubmitLink(ctx, reddit.SubmitLinkRequest{
		Subreddit:   p.subreddit,
		Title:       fmt.Sprintf("Daily Imagine - %s", params.Date),
		URL:         params.URL,
		SendReplies: lo.ToPtr(false),
	})
	return err
}
