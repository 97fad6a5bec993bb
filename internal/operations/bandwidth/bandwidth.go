// Package bandwidth queries CDN bandwidth statistics.
package bandwidth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/forksen/forksen-qiniu/auth"
	"github.com/forksen/forksen-qiniu/internal/operations"
	"github.com/forksen/forksen-qiniu/internal/transport"
	"github.com/forksen/forksen-qiniu/qntypes"
)

// Op names bandwidth requests in diagnostics.
const Op = "bandwidth"

// Path is the bandwidth endpoint path on the fusion host.
const Path = "/v2/tune/bandwidth"

// Endpoints locate the fusion service.
type Endpoints struct {
	UseHTTPS   bool
	FusionHost string
}

// wireRequest is the JSON body of a bandwidth query.
type wireRequest struct {
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Granularity string `json:"granularity"`
	Domains     string `json:"domains"`
}

// Body encodes req. Domains are joined with ";".
func Body(req qntypes.BandwidthRequest) ([]byte, error) {
	body, err := json.Marshal(wireRequest{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Granularity: string(req.Granularity),
		Domains:     strings.Join(req.Domains, ";"),
	})
	if err != nil {
		return nil, fmt.Errorf("encode bandwidth request: %w", err)
	}
	return body, nil
}

// Querier issues bandwidth queries.
type Querier struct {
	transport transport.Transport
	signer    auth.Signer
	endpoints Endpoints
}

// New creates a Querier.
func New(t transport.Transport, signer auth.Signer, endpoints Endpoints) *Querier {
	return &Querier{
		transport: t,
		signer:    signer,
		endpoints: endpoints,
	}
}

// Request builds the query request.
func (q *Querier) Request(req qntypes.BandwidthRequest) (operations.Request, error) {
	body, err := Body(req)
	if err != nil {
		return operations.Request{}, err
	}
	return operations.Request{
		Op:   Op,
		Kind: operations.KindJSON,
		URL:  operations.Scheme(q.endpoints.UseHTTPS) + q.endpoints.FusionHost + Path,
		Body: body,
	}, nil
}

// Query sends req. On an HTTP failure the response is returned together with
// the error; a response that decodes is returned with its info even then.
func (q *Querier) Query(
	ctx context.Context,
	req qntypes.BandwidthRequest,
) (*transport.Response, *qntypes.BandwidthInfo, error) {
	r, err := q.Request(req)
	if err != nil {
		return nil, nil, err
	}

	resp, err := operations.Send(ctx, q.transport, q.signer, r)
	if err != nil {
		return resp, nil, fmt.Errorf("query bandwidth: %w", err)
	}

	var info qntypes.BandwidthInfo
	if err := json.Unmarshal([]byte(resp.Text), &info); err != nil {
		return resp, nil, fmt.Errorf("decode bandwidth response: %w", err)
	}
	return resp, &info, nil
}
