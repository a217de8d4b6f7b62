package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gorilla/feeds"
	"github.com/pmorgner/imagine/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Generator builds an RSS feed over the published images in the bucket.
type Generator struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Generator(i *do.Injector) (*Generator, error) {
	client, err := do.Invoke[*s3.Client](i)
	if err != nil {
		return nil, err
	}
	return &Generator{
		client:  client,
		bucket:  do.MustInvokeNamed[string](i, "bucket"),
		baseURL: strings.TrimRight(do.MustInvokeNamed[string](i, "base_url"), "/"),
	}, nil
}

func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("feed").With("bucket", g.bucket)
	log.Info("generating rss feed")

	feed := feeds.Feed{
		Title:       "Daily Imagine",
		Description: "Daily AI generated images",
		Link:        &feeds.Link{Href: g.baseURL},
		Updated:     time.Now(),
	}

	pager := s3.NewListObjectsV2Paginator(g.client, &s3.ListObjectsV2Input{
		Bucket: &g.bucket,
	})

	items := make(chan *feeds.Item)
	defer close(items)

	go func(items <-chan *feeds.Item) {
		for i := range items {
			feed.Add(i)
		}
	}(items)

	group, ctx := errgroup.WithContext(ctx)
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		objs := lo.Filter(page.Contents, func(o s3types.Object, _ int) bool {
			return strings.HasSuffix(*o.Key, ".png") && !strings.HasPrefix(*o.Key, "latest")
		})

		for _, obj := range objs {
			obj := obj
			group.Go(func() error {
				out, err := g.client.HeadObject(ctx, &s3.HeadObjectInput{
					Bucket: &g.bucket,
					Key:    obj.Key,
				})
				if err != nil {
					return err
				}

				meta := out.Metadata
				items <- &feeds.Item{
					Title:   fmt.Sprintf("%s - %s", meta["date"], meta["slot"]),
					Link:    &feeds.Link{Href: fmt.Sprintf("%s/%s", g.baseURL, *obj.Key)},
					Updated: *out.LastModified,
				}
				return nil
			})
		}
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	feed.Sort(func(a, b *feeds.Item) bool {
		return a.Updated.Before(b.Updated)
	})
	rss, err := feed.ToRss()
	return []byte(rss), err
}
