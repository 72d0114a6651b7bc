package observability

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingCacheHooks struct {
	hits, misses, sets atomic.Int64
}

func (c *countingCacheHooks) OnCacheHit(context.Context, string)  { c.hits.Add(1) }
func (c *countingCacheHooks) OnCacheMiss(context.Context, string) { c.misses.Add(1) }
func (c *countingCacheHooks) OnCacheSet(context.Context, string)  { c.sets.Add(1) }

type countingHTTPHooks struct {
	requests, responses, errors atomic.Int64
}

func (c *countingHTTPHooks) OnRequest(context.Context, string, string, string) { c.requests.Add(1) }
func (c *countingHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
	c.responses.Add(1)
}
func (c *countingHTTPHooks) OnError(context.Context, string, string, string, error) {
	c.errors.Add(1)
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()

	hooks := &countingCacheHooks{}
	SetCacheHooks(hooks)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "search")
	Cache().OnCacheMiss(ctx, "search")
	Cache().OnCacheSet(ctx, "search")

	if hooks.hits.Load() != 1 || hooks.misses.Load() != 1 || hooks.sets.Load() != 1 {
		t.Errorf("hooks not invoked: hits=%d misses=%d sets=%d",
			hooks.hits.Load(), hooks.misses.Load(), hooks.sets.Load())
	}
}

func TestSetHTTPHooks(t *testing.T) {
	defer Reset()

	hooks := &countingHTTPHooks{}
	SetHTTPHooks(hooks)

	ctx := context.Background()
	HTTP().OnRequest(ctx, "GET", "api.github.com", "/search/repositories")
	HTTP().OnResponse(ctx, "GET", "api.github.com", "/search/repositories", 200, time.Millisecond)

	if hooks.requests.Load() != 1 || hooks.responses.Load() != 1 {
		t.Errorf("hooks not invoked: requests=%d responses=%d",
			hooks.requests.Load(), hooks.responses.Load())
	}
}

func TestSetHooks_NilIgnored(t *testing.T) {
	defer Reset()

	SetCacheHooks(nil)
	SetHTTPHooks(nil)

	// Defaults must survive a nil registration.
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("nil registration replaced the no-op cache hooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("nil registration replaced the no-op HTTP hooks")
	}
}

func TestReset(t *testing.T) {
	SetCacheHooks(&countingCacheHooks{})
	SetHTTPHooks(&countingHTTPHooks{})
	Reset()

	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() did not restore no-op cache hooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() did not restore no-op HTTP hooks")
	}
}
