package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = (%v, %v, %v), want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "raster:a"); hit {
		t.Error("empty cache should miss")
	}
	if err := c.Set(ctx, "raster:a", []byte{1, 2, 3}, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "raster:a")
	if err != nil || !hit || string(data) != "\x01\x02\x03" {
		t.Errorf("Get = (%v, %v, %v), want hit with stored data", data, hit, err)
	}

	if err := c.Delete(ctx, "raster:a"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "raster:a"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "raster:a"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want silent miss", hit, err)
	}
}

func TestFileCacheStatsAndClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, size, err := c.Stats()
	if err != nil || n != 3 || size == 0 {
		t.Errorf("Stats = (%d, %d, %v), want 3 entries", n, size, err)
	}

	cleared, err := c.Clear()
	if err != nil || cleared != 3 {
		t.Errorf("Clear = (%d, %v), want 3", cleared, err)
	}
	if n, _, _ := c.Stats(); n != 0 {
		t.Errorf("Stats after Clear = %d entries, want 0", n)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	r1 := k.RasterKey("000001", RasterKeyOpts{Code: "datamatrix/m5/q10/s30/lanczos"})
	r2 := k.RasterKey("000001", RasterKeyOpts{Code: "qr/m5/q10/s30/lanczos"})
	r3 := k.RasterKey("000002", RasterKeyOpts{Code: "datamatrix/m5/q10/s30/lanczos"})
	if r1 == r2 || r1 == r3 {
		t.Error("payload and code options must both change the raster key")
	}
	if !strings.HasPrefix(r1, "raster:datamatrix/m5/q10/s30/lanczos:") {
		t.Errorf("RasterKey = %s, want raster:<options>: prefix", r1)
	}

	a1 := k.ArtifactKey("doc", ArtifactKeyOpts{Format: "pdf"})
	a2 := k.ArtifactKey("doc", ArtifactKeyOpts{Format: "png", PNGScale: 4})
	a3 := k.ArtifactKey("doc", ArtifactKeyOpts{Format: "png", PNGScale: 2})
	if a1 == a2 || a2 == a3 {
		t.Error("format and scale must change the artifact key")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "greenhouse:")
	key := scoped.RasterKey("000001", RasterKeyOpts{Code: "x"})
	if !strings.HasPrefix(key, "greenhouse:raster:x:") {
		t.Errorf("ScopedKeyer RasterKey should be prefixed: %s", key)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if got, want := nilInner.ArtifactKey("d", ArtifactKeyOpts{Format: "pdf"}), "p:"+NewDefaultKeyer().ArtifactKey("d", ArtifactKeyOpts{Format: "pdf"}); got != want {
		t.Errorf("nil inner keyer: %s, want %s", got, want)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func withFastBackoff(t *testing.T, attempts int) {
	t.Helper()
	saved := Backoff
	Backoff.Attempts = attempts
	Backoff.Delay = time.Millisecond
	t.Cleanup(func() { Backoff = saved })
}

func TestRetryWithBackoff(t *testing.T) {
	withFastBackoff(t, 3)
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("got err=%v after %d calls, want success after 2", err, calls)
	}

	calls = 0
	stop := errors.New("bad request")
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return stop
	})
	if err != stop || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d, want immediate return", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, ErrNetwork) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d, want ErrNetwork after 3", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	withFastBackoff(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrNetwork) })
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewRedisCacheErrors(t *testing.T) {
	withFastBackoff(t, 1)
	ctx := context.Background()

	if _, err := NewRedisCache(ctx, "not a url"); err == nil {
		t.Error("invalid url should fail")
	}
	// Port 1 is reserved and refuses connections.
	_, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0")
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("unreachable server: %v, want ErrNetwork", err)
	}
}
