package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnBuildStart(ctx, 10)
	p.OnLabelSkipped(ctx, "Kü1", "ENCODING_ERROR")
	p.OnBuildComplete(ctx, BuildStats{Records: 10, Placed: 9, Skipped: 1, Pages: 1}, time.Second, nil)
	p.OnRenderStart(ctx, []string{"pdf"})
	p.OnRenderComplete(ctx, []string{"pdf"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "raster")
	c.OnCacheMiss(ctx, "raster")
	c.OnCacheSet(ctx, "artifact", 1024)

	s := NoopStoreHooks{}
	s.OnQuery(ctx, "plants")
	s.OnQueryComplete(ctx, "plants", 3, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}
	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}
	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should keep the previous hooks")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	h := &testCacheHooks{}
	SetCacheHooks(h)
	ctx := context.Background()
	Cache().OnCacheHit(ctx, "raster")
	Cache().OnCacheHit(ctx, "raster")
	Cache().OnCacheMiss(ctx, "raster")

	if h.hits != 2 || h.misses != 1 {
		t.Errorf("hits=%d misses=%d, want 2 and 1", h.hits, h.misses)
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }

type testCacheHooks struct {
	mu           sync.Mutex
	hits, misses int
}

func (h *testCacheHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	h.hits++
	h.mu.Unlock()
}

func (h *testCacheHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	h.misses++
	h.mu.Unlock()
}

func (h *testCacheHooks) OnCacheSet(context.Context, string, int) {}

type testStoreHooks struct{ NoopStoreHooks }
