package qiniu

import (
	"context"
	stderrors "errors"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/forksen/forksen-qiniu/errors"
	"github.com/forksen/forksen-qiniu/fs"
	"github.com/forksen/forksen-qiniu/internal/normalize"
	"github.com/forksen/forksen-qiniu/internal/operations"
	"github.com/forksen/forksen-qiniu/internal/operations/fop"
	"github.com/forksen/forksen-qiniu/internal/transport"
	"github.com/forksen/forksen-qiniu/internal/validation"
	"github.com/forksen/forksen-qiniu/qntypes"
)

// Pfop submits a persistent operation on bucket/key. fops may hold several
// commands separated by ";". A successful result carries the persistent id.
func (c *Client) Pfop(
	ctx context.Context,
	bucket, key, fops string,
	opts ...qntypes.PfopOption,
) *qntypes.PfopResult {
	cfg := qntypes.PfopOptionConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	result := &qntypes.PfopResult{}

	if err := validatePfop(bucket, key, fops, cfg); err != nil {
		result.Shadow(c.invalid(fop.OpPfop, err))
		return result
	}

	result.Shadow(c.do(ctx, c.builder.Pfop(bucket, key, fops, cfg)))
	return result
}

// PfopMulti joins fops with ";" in order and submits them as one job.
func (c *Client) PfopMulti(
	ctx context.Context,
	bucket, key string,
	fops []string,
	opts ...qntypes.PfopOption,
) *qntypes.PfopResult {
	if err := validation.ValidateFops(fops); err != nil {
		result := &qntypes.PfopResult{}
		result.Shadow(c.invalid(fop.OpPfop, err))
		return result
	}
	return c.Pfop(ctx, bucket, key, fop.JoinFops(fops), opts...)
}

// Prefop queries the status of a persistent operation. The request is not signed.
func (c *Client) Prefop(ctx context.Context, persistentID string) *qntypes.PrefopResult {
	result := &qntypes.PrefopResult{}

	if err := validation.ValidatePersistentID(persistentID); err != nil {
		result.Shadow(c.invalid(fop.OpPrefop, err))
		return result
	}

	result.Shadow(c.do(ctx, c.builder.Prefop(persistentID)))
	return result
}

// Dfop runs a direct operation on uri. An http(s) URL is fetched by the
// service; anything else is treated as a local file and uploaded.
func (c *Client) Dfop(ctx context.Context, cmd, uri string, opts ...qntypes.DfopOption) *qntypes.HTTPResult {
	if err := validation.ValidateFop(cmd); err != nil {
		return c.invalid(fop.OpDfop, err)
	}

	switch src := validation.Classify(uri).(type) {
	case fop.URLSource:
		return c.DfopURL(ctx, cmd, src.URL)
	case fop.PathSource:
		return c.DfopData(ctx, cmd, src.Path, opts...)
	default:
		return c.invalid(fop.OpDfop, stderrors.New("unclassified dfop input"))
	}
}

// DfopURL runs a direct operation on a remote resource.
func (c *Client) DfopURL(ctx context.Context, cmd, resourceURL string) *qntypes.HTTPResult {
	if err := validation.ValidateFop(cmd); err != nil {
		return c.invalid(fop.OpDfop, err)
	}
	if !validation.IsValidURL(resourceURL) {
		return c.invalid(fop.OpDfop, stderrors.New("resource must be an absolute http or https url"))
	}

	return c.do(ctx, c.builder.DfopURL(cmd, resourceURL))
}

// DfopData runs a direct operation on the content of a local file.
// A path that is not an existing regular file yields CodeInvalidFile without
// any request being sent.
func (c *Client) DfopData(
	ctx context.Context,
	cmd, path string,
	opts ...qntypes.DfopOption,
) *qntypes.HTTPResult {
	cfg := qntypes.DfopOptionConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validation.ValidateFop(cmd); err != nil {
		return c.invalid(fop.OpDfop, err)
	}

	content, failed := c.readLocal(path)
	if failed != nil {
		return failed
	}

	contentType := ""
	if cfg.DetectContentType {
		contentType = mimetype.Detect(content).String()
	}

	return c.do(ctx, c.builder.DfopFile(cmd, filepath.Base(path), content, contentType))
}

// DfopText runs a direct operation on inline text.
func (c *Client) DfopText(ctx context.Context, cmd, text string) *qntypes.HTTPResult {
	if err := validation.ValidateFop(cmd); err != nil {
		return c.invalid(fop.OpDfop, err)
	}

	return c.do(ctx, c.builder.DfopText(cmd, text))
}

// DfopTextFile reads a local text file in full and runs DfopText on it.
// A path that is not an existing regular file yields CodeInvalidFile without
// any request being sent.
func (c *Client) DfopTextFile(ctx context.Context, cmd, path string) *qntypes.HTTPResult {
	if err := validation.ValidateFop(cmd); err != nil {
		return c.invalid(fop.OpDfop, err)
	}

	content, failed := c.readLocal(path)
	if failed != nil {
		return failed
	}

	return c.DfopText(ctx, cmd, string(content))
}

// readLocal reads a whole local file. On failure it returns the result to
// hand back to the caller instead of the content.
func (c *Client) readLocal(path string) ([]byte, *qntypes.HTTPResult) {
	content, err := readRegularFile(c.filesystem(), path)
	switch {
	case err == nil:
		return content, nil
	case errors.IsFileNotFound(err):
		c.logger.Warn("local file not found", zap.String("op", fop.OpDfop), zap.Error(err))
		return nil, normalize.Local(qntypes.CodeInvalidFile, "[dfop-error] File not found: "+path)
	default:
		return nil, c.local(fop.OpDfop, err)
	}
}

// readRegularFile reads path in full. A path that is missing or not a
// regular file yields ErrFileNotFound.
func readRegularFile(fsys fs.Filesystem, path string) ([]byte, error) {
	abs, err := fs.GetAbs(path)
	if err != nil {
		return nil, err
	}

	ok, err := fs.IsRegularFile(fsys, abs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewError(fop.OpDfop, errors.ErrFileNotFound).WithMessage(abs)
	}

	return fsys.ReadFile(abs)
}

// do sends req and normalizes the outcome.
func (c *Client) do(ctx context.Context, req operations.Request) *qntypes.HTTPResult {
	c.logger.Debug("dispatching request",
		zap.String("op", req.Op),
		zap.String("kind", req.Kind.String()),
		zap.String("url", req.URL),
	)

	resp, err := operations.Send(ctx, c.transport, c.signer, req)
	if req.Op == fop.OpPrefop {
		return c.finish(req.Op, c.statusResult(resp, err), err)
	}
	return c.finish(req.Op, c.result(req.Op, resp, err), err)
}

// result normalizes an outcome, reporting signing failures as CodeInvalidToken.
func (c *Client) result(op string, resp *transport.Response, err error) *qntypes.HTTPResult {
	var tokErr *operations.TokenError
	if stderrors.As(err, &tokErr) {
		return normalize.Local(qntypes.CodeInvalidToken, c.normalizer.Diagnostic(op, err))
	}
	return c.normalizer.Result(op, resp, err)
}

func (c *Client) statusResult(resp *transport.Response, err error) *qntypes.HTTPResult {
	var tokErr *operations.TokenError
	if stderrors.As(err, &tokErr) {
		return normalize.Local(qntypes.CodeInvalidToken, err.Error())
	}
	return c.normalizer.Status(resp, err)
}

// finish logs the outcome of op and returns result.
func (c *Client) finish(op string, result *qntypes.HTTPResult, err error) *qntypes.HTTPResult {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("code", result.Code),
		zap.Int("ref_code", result.RefCode),
	}
	if result.OK() {
		c.logger.Debug("request completed", fields...)
		return result
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	c.logger.Warn("request failed", fields...)
	return result
}

// invalid reports an argument rejected before any request was built.
func (c *Client) invalid(op string, err error) *qntypes.HTTPResult {
	c.logger.Warn("invalid argument", zap.String("op", op), zap.Error(err))
	return normalize.Local(qntypes.CodeInvalidArgument, "["+op+"-error] "+err.Error())
}

// local reports a client-side failure that happened before any request was sent.
func (c *Client) local(op string, err error) *qntypes.HTTPResult {
	c.logger.Warn("local failure", zap.String("op", op), zap.Error(err))
	return c.normalizer.Result(op, nil, err)
}

func validatePfop(bucket, key, fops string, cfg qntypes.PfopOptionConfig) error {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return err
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return err
	}
	if err := validation.ValidateFop(fops); err != nil {
		return err
	}
	return validation.ValidateNotifyURL(cfg.NotifyURL)
}
