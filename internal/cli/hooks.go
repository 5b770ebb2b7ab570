package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelsheet/pkg/observability"
)

// logHooks reports cache and catalog events at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.CacheHooks = logHooks{}
	_ observability.StoreHooks = logHooks{}
)

func (h logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h logHooks) OnQuery(_ context.Context, op string) {
	h.logger.Debug("catalog query", "op", op)
}

func (h logHooks) OnQueryComplete(_ context.Context, op string, n int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("catalog query failed", "op", op, "error", err)
		return
	}
	h.logger.Debug("catalog query done", "op", op, "results", n, "took", d.Round(time.Millisecond))
}
