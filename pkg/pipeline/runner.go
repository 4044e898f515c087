package pipeline

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/precice/config-format/pkg/cache"
	"github.com/precice/config-format/pkg/canon"
	errs "github.com/precice/config-format/pkg/errors"
	"github.com/precice/config-format/pkg/format"
	"github.com/precice/config-format/pkg/observability"
	"github.com/precice/config-format/pkg/xmltree"
)

// Runner formats documents with caching. Options are passed per call, so one
// Runner may serve concurrent callers with different options.
//
// The first cache.ErrUnavailable turns the cache off for the Runner's
// lifetime so an unreachable backend is paid for once, not once per file.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	cacheDown atomic.Bool
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// FormatBytes formats a document held in memory.
//
// A cache hit for the exact bytes under the same options returns Unchanged
// without parsing. Content found to be canonical is recorded in the cache.
func (r *Runner) FormatBytes(ctx context.Context, data []byte, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, errs.Wrap(errs.ErrCodeCanceled, err, "formatting canceled")
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	key := r.Keyer.FormatKey(cache.Hash(data), opts.keyOpts())
	hit := false
	if !r.cacheDown.Load() {
		var err error
		if _, hit, err = r.Cache.Get(ctx, key); err != nil {
			r.cacheFailed("cache lookup failed", err)
		}
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, "format")
		return Result{Output: data, Status: canon.Unchanged, Cached: true}, nil
	}
	observability.Cache().OnCacheMiss(ctx, "format")

	doc, err := xmltree.Parse(data)
	if err != nil {
		return Result{}, err
	}
	out, err := doc.Decl.Encode(format.Render(doc, opts.Options))
	if err != nil {
		return Result{}, err
	}

	res := Result{Output: out, Status: canon.Classify(data, string(out))}
	if res.Status == canon.Unchanged {
		r.remember(ctx, key, opts.TTL)
	}
	return res, nil
}

// remember marks a key as canonical. Cache failures only cost a re-parse
// next time, so they are logged and dropped.
func (r *Runner) remember(ctx context.Context, key string, ttl time.Duration) {
	if r.cacheDown.Load() {
		return
	}
	marker := []byte(time.Now().UTC().Format(time.RFC3339))
	if err := r.Cache.Set(ctx, key, marker, ttl); err != nil {
		r.cacheFailed("cache store failed", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "format", len(marker))
}

// cacheFailed logs a cache error. An unreachable backend latches the cache
// off; the warning is logged by whichever caller flips the latch.
func (r *Runner) cacheFailed(msg string, err error) {
	if !errors.Is(err, cache.ErrUnavailable) {
		r.Logger.Debug(msg, "error", err)
		return
	}
	if r.cacheDown.CompareAndSwap(false, true) {
		r.Logger.Warn("cache unavailable, disabled for this run", "error", err)
	}
}

// FormatFile formats one file in place, or only classifies it in check
// mode. The file keeps its permission bits.
func (r *Runner) FormatFile(ctx context.Context, path string, opts Options) canon.Outcome {
	start := time.Now()
	observability.Format().OnFileStart(ctx, path)

	res, err := r.formatFile(ctx, path, opts)
	out := canon.Outcome{
		Path:     path,
		Status:   res.Status,
		Cached:   res.Cached,
		Err:      err,
		Duration: time.Since(start),
	}
	if err != nil {
		out.Status = canon.Failed
	}

	observability.Format().OnFileComplete(ctx, path, out.Status.String(), out.Duration, err)
	r.Logger.Debug("formatted file",
		"path", path,
		"status", out.Status,
		"cached", out.Cached,
		"duration", out.Duration)
	return out
}

func (r *Runner) formatFile(ctx context.Context, path string, opts Options) (Result, error) {
	if err := errs.ValidatePath(path); err != nil {
		return Result{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, errs.Wrap(errs.ErrCodeSourceUnreadable, err, "unable to open file %q", path)
	}
	if info.IsDir() {
		return Result{}, errs.New(errs.ErrCodeSourceUnreadable, "%q is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, errs.Wrap(errs.ErrCodeSourceUnreadable, err, "unable to open file %q", path)
	}

	res, err := r.FormatBytes(ctx, data, opts)
	if err != nil {
		return Result{}, err
	}
	if res.Status != canon.Rewritten || opts.Check {
		return res, nil
	}

	if err := os.WriteFile(path, res.Output, info.Mode().Perm()); err != nil {
		return Result{}, errs.Wrap(errs.ErrCodeWriteFailed, err, "unable to write file %q", path)
	}
	return res, nil
}

// FormatFiles formats every path in order. A failure on one file never stops
// the batch. Once ctx is canceled the remaining files are reported as Failed.
func (r *Runner) FormatFiles(ctx context.Context, paths []string, opts Options) canon.Summary {
	start := time.Now()
	logger := r.Logger.With("run_id", uuid.NewString())
	logger.Debug("starting batch", "files", len(paths), "check", opts.Check)

	var summary canon.Summary
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			summary.Add(canon.Outcome{
				Path:   path,
				Status: canon.Failed,
				Err:    errs.Wrap(errs.ErrCodeCanceled, err, "skipped %q", path),
			})
			continue
		}
		summary.Add(r.FormatFile(ctx, path, opts))
	}

	elapsed := time.Since(start)
	rewritten, failed := summary.Count(canon.Rewritten), summary.Count(canon.Failed)
	observability.Format().OnBatchComplete(ctx, len(paths), rewritten, failed, elapsed)
	logger.Debug("batch complete",
		"files", len(paths),
		"rewritten", rewritten,
		"failed", failed,
		"duration", elapsed)
	return summary
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
