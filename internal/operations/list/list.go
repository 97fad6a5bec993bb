package list

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/forksen/forksen-qiniu/auth"
	"github.com/forksen/forksen-qiniu/internal/operations"
	"github.com/forksen/forksen-qiniu/internal/transport"
	"github.com/forksen/forksen-qiniu/qntypes"
)

// Op names listing requests in diagnostics.
const Op = "list"

// DefaultLimit is the page size used when none is configured.
const DefaultLimit = 1000

// Endpoints locate the listing service.
type Endpoints struct {
	UseHTTPS bool
	RSFHost  string
}

// Config holds configuration for list operations.
type Config struct {
	Bucket    string
	Prefix    string
	Delimiter string
	Marker    string
	Limit     int
}

// Page is one listing response.
type Page struct {
	Response *transport.Response
	Info     *qntypes.ListInfo
}

// Lister handles listing of bucket keys.
type Lister struct {
	transport transport.Transport
	signer    auth.Signer
	endpoints Endpoints
}

// New creates a new Lister.
func New(t transport.Transport, signer auth.Signer, endpoints Endpoints) *Lister {
	return &Lister{
		transport: t,
		signer:    signer,
		endpoints: endpoints,
	}
}

// Request builds the listing request for one page.
func (l *Lister) Request(config *Config) operations.Request {
	q := url.Values{}
	q.Set("bucket", config.Bucket)
	if config.Marker != "" {
		q.Set("marker", config.Marker)
	}
	q.Set("limit", strconv.Itoa(pageSize(config)))
	if config.Prefix != "" {
		q.Set("prefix", config.Prefix)
	}
	if config.Delimiter != "" {
		q.Set("delimiter", config.Delimiter)
	}

	return operations.Request{
		Op:   Op,
		Kind: operations.KindPost,
		URL:  operations.Scheme(l.endpoints.UseHTTPS) + l.endpoints.RSFHost + "/list?" + q.Encode(),
	}
}

// List performs a single page listing. On an HTTP failure the response is
// returned together with the error.
func (l *Lister) List(ctx context.Context, config *Config) (*Page, error) {
	resp, err := operations.Send(ctx, l.transport, l.signer, l.Request(config))
	if err != nil {
		return &Page{Response: resp}, fmt.Errorf("list keys: %w", err)
	}

	var info qntypes.ListInfo
	if err := json.Unmarshal([]byte(resp.Text), &info); err != nil {
		return &Page{Response: resp}, fmt.Errorf("decode list response: %w", err)
	}

	return &Page{Response: resp, Info: &info}, nil
}

// ListWithPaginator creates a paginator for multi-page listing.
func (l *Lister) ListWithPaginator(config *Config) *Paginator {
	cfg := *config
	return &Paginator{
		lister:    l,
		config:    &cfg,
		firstPage: true,
	}
}

// ListAll streams every key under config. The channel is closed when the
// listing ends, fails or ctx is cancelled. A failure is delivered as the last
// element.
//
// A consumer that stops reading early must cancel ctx; otherwise the
// producing goroutine blocks for good once the channel buffer is full.
func (l *Lister) ListAll(ctx context.Context, config *Config) <-chan qntypes.ListItemResult {
	resultChan := make(chan qntypes.ListItemResult, 100)

	go func() {
		defer close(resultChan)

		paginator := l.ListWithPaginator(config)

		for paginator.HasMorePages() {
			if ctx.Err() != nil {
				return
			}

			page, err := paginator.NextPage(ctx)
			if err != nil {
				select {
				case resultChan <- qntypes.ListItemResult{Err: err}:
				case <-ctx.Done():
				}
				return
			}

			for _, item := range page.Items {
				select {
				case resultChan <- qntypes.ListItemResult{Item: item}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return resultChan
}

// Paginator walks the listing one page at a time.
type Paginator struct {
	lister    *Lister
	config    *Config
	firstPage bool
}

// HasMorePages returns true if there are more pages to fetch.
func (p *Paginator) HasMorePages() bool {
	return p.firstPage || p.config.Marker != ""
}

// Marker returns the marker the next page starts from.
func (p *Paginator) Marker() string {
	return p.config.Marker
}

// NextPage fetches the next page of results.
func (p *Paginator) NextPage(ctx context.Context) (*qntypes.ListInfo, error) {
	page, err := p.lister.List(ctx, p.config)
	if err != nil {
		return nil, fmt.Errorf("list keys page: %w", err)
	}

	p.firstPage = false
	p.config.Marker = page.Info.Marker

	return page.Info, nil
}

// Next returns the items of the next page, or nil once the listing is exhausted.
func (p *Paginator) Next(ctx context.Context) ([]qntypes.ListItem, error) {
	if !p.HasMorePages() {
		return nil, nil
	}
	info, err := p.NextPage(ctx)
	if err != nil {
		return nil, err
	}
	if info.Items == nil {
		return []qntypes.ListItem{}, nil
	}
	return info.Items, nil
}

// pageSize determines the page size for a request.
func pageSize(config *Config) int {
	if config.Limit > 0 && config.Limit <= DefaultLimit {
		return config.Limit
	}
	return DefaultLimit
}
