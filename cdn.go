package qiniu

import (
	"context"

	"go.uber.org/zap"

	"github.com/forksen/forksen-qiniu/internal/operations/bandwidth"
	"github.com/forksen/forksen-qiniu/internal/validation"
	"github.com/forksen/forksen-qiniu/qntypes"
)

// GetBandwidthData queries CDN bandwidth for the requested domains.
// Result holds the decoded series when the call succeeds.
func (c *Client) GetBandwidthData(ctx context.Context, req qntypes.BandwidthRequest) *qntypes.BandwidthResult {
	result := &qntypes.BandwidthResult{}

	if err := validation.ValidateBandwidthRequest(req); err != nil {
		result.Shadow(c.invalid(bandwidth.Op, err))
		return result
	}

	c.logger.Debug("querying bandwidth",
		zap.String("op", bandwidth.Op),
		zap.Strings("domains", req.Domains),
		zap.String("granularity", string(req.Granularity)),
	)

	resp, info, err := c.querier.Query(ctx, req)
	result.Shadow(c.finish(bandwidth.Op, c.result(bandwidth.Op, resp, err), err))
	if err == nil {
		result.Result = info
	}
	return result
}
