package cli

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sidx05/NewsHub/pkg/observability"
)

// installHooks registers the CLI's observability hooks. Request and
// cache activity is logged at debug level (visible with --verbose), and
// cache hits are recorded so list commands can report where their
// results came from.
func (c *CLI) installHooks() {
	observability.SetHTTPHooks(httpLogHooks{logger: c.Logger})
	observability.SetCacheHooks(cacheLogHooks{logger: c.Logger, hit: &c.cacheHit})
}

// httpLogHooks logs client HTTP activity.
type httpLogHooks struct {
	logger *log.Logger
}

func (h httpLogHooks) OnRequest(ctx context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "url", host+path)
}

func (h httpLogHooks) OnResponse(ctx context.Context, method, host, path string, status int, elapsed time.Duration) {
	h.logger.Debug("http response", "method", method, "url", host+path, "status", status, "elapsed", elapsed.Round(time.Millisecond))
}

func (h httpLogHooks) OnError(ctx context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "url", host+path, "err", err)
}

// cacheLogHooks logs cache activity and flags hits for the stats line.
type cacheLogHooks struct {
	logger *log.Logger
	hit    *atomic.Bool
}

func (h cacheLogHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.hit.Store(true)
	h.logger.Debug("cache hit", "key", keyType)
}

func (h cacheLogHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h cacheLogHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "key", keyType, "bytes", size)
}

// Ensure the CLI hooks satisfy the observability interfaces.
var (
	_ observability.HTTPHooks  = httpLogHooks{}
	_ observability.CacheHooks = cacheLogHooks{}
)
