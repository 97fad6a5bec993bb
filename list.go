package qiniu

import (
	"context"

	"go.uber.org/zap"

	"github.com/forksen/forksen-qiniu/internal/operations/list"
	"github.com/forksen/forksen-qiniu/internal/validation"
	"github.com/forksen/forksen-qiniu/qntypes"
)

// ListFiles lists a single page of keys in bucket.
// Result holds the decoded page when the call succeeds.
func (c *Client) ListFiles(ctx context.Context, bucket string, opts ...qntypes.ListOption) *qntypes.ListResult {
	result := &qntypes.ListResult{}

	config, err := listConfig(bucket, opts...)
	if err != nil {
		result.Shadow(c.invalid(list.Op, err))
		return result
	}

	c.logger.Debug("listing keys", zap.String("op", list.Op), zap.String("bucket", bucket))

	page, err := c.lister.List(ctx, config)
	result.Shadow(c.finish(list.Op, c.result(list.Op, page.Response, err), err))
	if err == nil {
		result.Result = page.Info
	}
	return result
}

// Lister walks a bucket listing one page at a time.
type Lister struct {
	paginator *list.Paginator
	err       error
}

// NewLister creates a Lister over bucket. Invalid arguments are reported by
// the first call to Next.
func (c *Client) NewLister(bucket string, opts ...qntypes.ListOption) *Lister {
	config, err := listConfig(bucket, opts...)
	if err != nil {
		return &Lister{err: err}
	}
	return &Lister{paginator: c.lister.ListWithPaginator(config)}
}

// Next returns the items of the next page. It returns nil, nil once the
// listing is exhausted.
func (l *Lister) Next(ctx context.Context) ([]qntypes.ListItem, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.paginator.Next(ctx)
}

// Marker returns the marker the next page starts from. It is empty once the
// listing is exhausted.
func (l *Lister) Marker() string {
	if l.paginator == nil {
		return ""
	}
	return l.paginator.Marker()
}

// ListAll streams every key in bucket. Pages are fetched one after another.
// A failure is delivered as the last element before the channel closes.
// Callers that stop reading before the channel closes must cancel ctx, or the
// goroutine feeding the channel stays blocked.
func (c *Client) ListAll(ctx context.Context, bucket string, opts ...qntypes.ListOption) <-chan qntypes.ListItemResult {
	config, err := listConfig(bucket, opts...)
	if err != nil {
		ch := make(chan qntypes.ListItemResult, 1)
		ch <- qntypes.ListItemResult{Err: err}
		close(ch)
		return ch
	}
	return c.lister.ListAll(ctx, config)
}

func listConfig(bucket string, opts ...qntypes.ListOption) (*list.Config, error) {
	cfg := qntypes.ListOptionConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, err
	}
	if err := validation.ValidateListLimit(cfg.Limit); err != nil {
		return nil, err
	}

	return &list.Config{
		Bucket:    bucket,
		Prefix:    cfg.Prefix,
		Delimiter: cfg.Delimiter,
		Marker:    cfg.Marker,
		Limit:     cfg.Limit,
	}, nil
}
