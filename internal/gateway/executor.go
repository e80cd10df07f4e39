// File: internal/gateway/executor.go
package gateway

import (
	"context"
	"errors"
	"ossgate/internal/errs"
	"ossgate/internal/metrics"
	"ossgate/internal/provider/endpoint"
	"ossgate/pkg/storage"
	"time"
)

// operation names one gateway call for logs, metrics and timeout messages
type operation struct {
	name string
	// Subject of the timeout message
	label string
}

var (
	opListObjects  = operation{name: "list_objects", label: "request"}
	opListBuckets  = operation{name: "list_buckets", label: "request"}
	opUpload       = operation{name: "upload", label: "upload"}
	opDownload     = operation{name: "download", label: "download"}
	opDelete       = operation{name: "delete", label: "delete"}
	opCreateFolder = operation{name: "create_folder", label: "create folder"}
)

type buildFunc func(ctx context.Context, cfg storage.Config) (storage.Client, error)

type opFunc[T any] func(ctx context.Context, client storage.Client) (T, error)

// Runs op against a client built from cfg. When the provider answers with an
// error carrying a corrected <Endpoint> whose region can be inferred, the client
// is rebuilt from a corrected copy of cfg and op is retried exactly once.
// Timeouts are terminal and never retried.
func attemptWithRecovery[T any](ctx context.Context, g *Gateway, op operation, cfg storage.Config, build buildFunc, timeout time.Duration, fn opFunc[T]) (T, error) {
	var zero T
	provider := cfg.Provider.String()
	log := g.logger.With("operation", op.name, "provider", provider)
	start := time.Now()

	result, err := attemptOnce(ctx, g, op, cfg, build, timeout, fn)
	if err == nil {
		g.metrics.ObserveOperation(op.name, provider, metrics.StatusSuccess, time.Since(start))
		return result, nil
	}
	if !recoverable(err) {
		g.finish(op, provider, start, err)
		return zero, err
	}

	found, ok := endpoint.ExtractEndpoint(err.Error())
	if !ok {
		g.finish(op, provider, start, err)
		return zero, err
	}
	region, ok := endpoint.InferRegion(cfg.Provider, found)
	if !ok {
		log.Warn("Redirect endpoint does not match the provider pattern", "endpoint", found)
		g.metrics.ObserveRecovery(provider, metrics.RecoveryNoRegion)
		g.finish(op, provider, start, err)
		return zero, err
	}

	corrected := cfg.WithCorrection(endpoint.EnsureScheme(found), region)
	log.Info("Provider redirected the request, retrying once", "endpoint", corrected.Endpoint, "region", region)

	client, err := build(ctx, corrected)
	if err != nil {
		g.metrics.ObserveRecovery(provider, metrics.RecoveryRebuildError)
		g.finish(op, provider, start, err)
		return zero, err
	}
	result, err = runObserved(ctx, g, op, provider, timeout, client, fn)
	if err != nil {
		g.metrics.ObserveRecovery(provider, metrics.RecoveryFailed)
		g.finish(op, provider, start, err)
		return zero, err
	}

	g.metrics.ObserveRecovery(provider, metrics.RecoveryRecovered)
	g.metrics.ObserveOperation(op.name, provider, metrics.StatusSuccess, time.Since(start))
	return result, nil
}

// Builds a client and runs op once under the timeout
func attemptOnce[T any](ctx context.Context, g *Gateway, op operation, cfg storage.Config, build buildFunc, timeout time.Duration, fn opFunc[T]) (T, error) {
	var zero T

	client, err := build(ctx, cfg)
	if err != nil {
		return zero, err
	}
	return runObserved(ctx, g, op, cfg.Provider.String(), timeout, client, fn)
}

func runObserved[T any](ctx context.Context, g *Gateway, op operation, provider string, timeout time.Duration, client storage.Client, fn opFunc[T]) (T, error) {
	result, err := runWithTimeout(ctx, op, timeout, client, fn)
	if errs.IsTimeout(err) {
		g.metrics.ObserveTimeout(op.name, provider)
	}
	return result, err
}

type outcome[T any] struct {
	value T
	err   error
}

// Bounds op by the timeout even if the client ignores its context. A timed-out
// op is abandoned and finishes into the buffered channel.
func runWithTimeout[T any](ctx context.Context, op operation, timeout time.Duration, client storage.Client, fn opFunc[T]) (T, error) {
	var zero T

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan outcome[T], 1)
	go func() {
		value, err := fn(attemptCtx, client)
		done <- outcome[T]{value: value, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil && attemptCtx.Err() != nil && errors.Is(out.err, attemptCtx.Err()) {
			return zero, deadlineError(ctx, op)
		}
		return out.value, out.err
	case <-attemptCtx.Done():
		select {
		case out := <-done:
			if out.err == nil {
				return out.value, nil
			}
		default:
		}
		return zero, deadlineError(ctx, op)
	}
}

func deadlineError(parent context.Context, op operation) error {
	if errors.Is(parent.Err(), context.Canceled) {
		return errs.Wrap(errs.KindCanceled, op.label+" canceled", parent.Err())
	}
	return errs.OperationTimeout(op.label)
}

// Only errors reported by the backend can carry a redirect
func recoverable(err error) bool {
	switch errs.KindOf(err) {
	case errs.KindTimeout, errs.KindCanceled, errs.KindConfig, errs.KindInvalidInput:
		return false
	default:
		return true
	}
}

func (g *Gateway) finish(op operation, provider string, start time.Time, err error) {
	status := metrics.StatusError
	if errs.IsTimeout(err) {
		status = metrics.StatusTimeout
	}
	g.metrics.ObserveOperation(op.name, provider, status, time.Since(start))
	g.logger.Debug("Operation failed", "operation", op.name, "provider", provider, "kind", errs.KindOf(err).String(), "error", err)
}
