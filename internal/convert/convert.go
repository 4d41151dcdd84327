// Package convert orchestrates one PDF → PDF/A conversion: decode,
// stage scratch files, invoke Ghostscript through the executor, validate
// and re-encode the output. Scratch files are always deleted before
// Convert returns, on every branch.
package convert

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/openpdfa/openpdfa/internal/executor"
	"github.com/openpdfa/openpdfa/internal/gs"
	"github.com/openpdfa/openpdfa/internal/metrics"
)

// Runner executes one external process per call.
type Runner interface {
	Run(ctx context.Context, req executor.Request) (executor.Result, error)
}

// ScratchFS is the scratch-file surface the orchestrator depends on.
type ScratchFS interface {
	CreatePath(ext string) string
	WriteFile(path string, data []byte) error
	ReadFile(path string) ([]byte, error)
	Exists(path string) bool
	Remove(path string)
}

// ResultCache caches converted output keyed by input digest.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte)
}

// Converter runs conversions against a resolved, immutable tool config.
type Converter struct {
	tool   *gs.Tool
	files  ScratchFS
	runner Runner
	cache  ResultCache // nil when caching is disabled
	logger *zap.SugaredLogger
}

// New creates a Converter. The tool config must already be resolved and
// is never mutated after this point.
func New(tool *gs.Tool, files ScratchFS, runner Runner, logger *zap.SugaredLogger) *Converter {
	return &Converter{tool: tool, files: files, runner: runner, logger: logger}
}

// SetCache enables the optional result cache.
func (c *Converter) SetCache(cache ResultCache) {
	c.cache = cache
}

// Convert transforms a base64-encoded PDF into its base64-encoded PDF/A
// variant. Failures are returned as *Error with a Kind from the taxonomy
// in errors.go; no lower-level error escapes this boundary.
func (c *Converter) Convert(ctx context.Context, input string) (string, error) {
	if input == "" {
		return "", &Error{Kind: KindInvalidInput, Message: "input document is empty"}
	}

	data, err := base64.StdEncoding.DecodeString(input)
	if err != nil {
		return "", &Error{Kind: KindInvalidInput, Message: "invalid base64 format"}
	}

	if c.cache != nil {
		if out, ok := c.cache.Get(ctx, c.cacheKey(data)); ok {
			metrics.CacheHitsTotal.Inc()
			return base64.StdEncoding.EncodeToString(out), nil
		}
	}

	inPath := c.files.CreatePath(".pdf")
	outPath := c.files.CreatePath(".pdf")
	defer c.files.Remove(inPath)
	defer c.files.Remove(outPath)

	if err := c.files.WriteFile(inPath, data); err != nil {
		c.logger.Errorw("failed to stage conversion input", "error", err)
		return "", &Error{Kind: KindUnexpected, Message: GenericFailureMessage}
	}

	res, err := c.runner.Run(ctx, executor.Request{
		Path:    c.tool.Path,
		Args:    BuildArgs(c.tool.BaseArgs, inPath, outPath),
		Timeout: c.tool.Timeout,
	})
	if err != nil {
		c.logger.Errorw("ghostscript invocation failed", "path", c.tool.Path, "error", err)
		return "", &Error{Kind: KindUnexpected, Message: GenericFailureMessage}
	}

	// Timeout is checked before the exit code: the sentinel code of a
	// killed run must never be read as a real exit status.
	if res.TimedOut {
		return "", &Error{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("conversion exceeded the %s timeout", c.tool.Timeout),
		}
	}
	if res.ExitCode != 0 {
		return "", &Error{
			Kind:    KindToolFailure,
			Message: fmt.Sprintf("ghostscript exited with code %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr)),
		}
	}
	if !c.files.Exists(outPath) {
		return "", &Error{
			Kind:    KindOutputMissing,
			Message: "ghostscript reported success but produced no output file",
		}
	}

	out, err := c.files.ReadFile(outPath)
	if err != nil {
		c.logger.Errorw("failed to read conversion output", "error", err)
		return "", &Error{Kind: KindUnexpected, Message: GenericFailureMessage}
	}

	if c.cache != nil {
		c.cache.Set(ctx, c.cacheKey(data), out)
	}

	return base64.StdEncoding.EncodeToString(out), nil
}

// BuildArgs appends the output and input paths to the configured base
// arguments. Output precedes input; this matches gs's CLI convention and
// the ordering is load-bearing.
func BuildArgs(base, inPath, outPath string) string {
	return strings.TrimRight(base, " \t") +
		fmt.Sprintf(` -sOutputFile="%s" "%s"`, outPath, inPath)
}

// cacheKey digests the decoded input together with the argument set so a
// config change invalidates cached results.
func (c *Converter) cacheKey(data []byte) string {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte(c.tool.BaseArgs))
	return "openpdfa:result:" + hex.EncodeToString(h.Sum(nil))
}
