package store

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/pmorgner/imagine/internal/log"
	"github.com/samber/do"
)

type Invalidator interface {
	Invalidate(context.Context, []string) error
}

type CloudFrontInvalidator struct {
	client       *cloudfront.Client
	distribution string
}

func NewCloudFrontInvalidator(i *do.Injector) (Invalidator, error) {
	client, err := do.Invoke[*cloudfront.Client](i)
	if err != nil {
		return nil, err
	}
	return &CloudFrontInvalidator{
		client:       client,
		distribution: do.MustInvokeNamed[string](i, "distribution"),
	}, nil
}

func (v *CloudFrontInvalidator) Invalidate(ctx context.Context, paths []string) error {
	log := log.FromContextOrDiscard(ctx).WithGroup("cloudfront").With("paths", paths, "distribution", v.distribution)
	log.Info("invalidating paths")

	_, err := v.client.CreateInvalidation(ctx, &cloudfront.CreateInvalidationInput{
		DistributionId: aws.String(v.distribution),
		InvalidationBatch: &cftypes.InvalidationBatch{
			CallerReference: aws.String(time.Now().UTC().Format("20060102150405")),
			Paths: &cftypes.Paths{
				Quantity: aws.Int32(int32(len(paths))),
				Items:    paths,
			},
		},
	})
	return err
}
