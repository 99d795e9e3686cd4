// Package observability provides hooks for metrics and tracing of atlas runs.
//
// Consumers register hooks once at startup; the pipeline calls them around
// each stage. The defaults are no-ops, so nothing is recorded unless a hook is
// installed.
//
//	observability.SetPipelineHooks(&myHooks{})
//
// Libraries emit events through the registry:
//
//	observability.Pipeline().OnBuildStart(ctx, len(images), "grid")
//	res := atlas.Build(images, cfg)
//	observability.Pipeline().OnBuildComplete(ctx, res.Width, res.Height, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the atlas pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, imageCount int, duration time.Duration, err error)

	// Build events
	OnBuildStart(ctx context.Context, imageCount int, packing string)
	OnBuildComplete(ctx context.Context, width, height int, duration time.Duration, err error)

	// Export events
	OnExportStart(ctx context.Context, outputs []string)
	OnExportComplete(ctx context.Context, outputs []string, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                                {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnBuildStart(context.Context, int, string)                          {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration, error)    {}
func (NoopPipelineHooks) OnExportStart(context.Context, []string)                            {}
func (NoopPipelineHooks) OnExportComplete(context.Context, []string, time.Duration, error)   {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. A nil value is ignored.
// Call it once at startup before any pipeline runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the no-op hooks. Mostly useful in tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
