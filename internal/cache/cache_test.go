package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/brainbang-lang/brainbang/internal/cache"
)

func openCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Open(filepath.Join(t.TempDir(), "artifacts.db"))
	if err != nil {
		t.Fatalf("failed to open cache: %s", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMissingArtifact(t *testing.T) {
	c := openCache(t)

	_, ok, err := c.Get(cache.Key("ent 5;"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if ok {
		t.Fatal("expected a miss for an empty cache")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c := openCache(t)

	key := cache.Key("ent 5;")
	if err := c.Put(key, "prog.bb", "[-]+++++"); err != nil {
		t.Fatalf("put failed: %s", err)
	}

	code, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("get failed: %s", err)
	}
	if !ok {
		t.Fatal("expected a hit after put")
	}
	if code != "[-]+++++" {
		t.Errorf("expected %q, got %q", "[-]+++++", code)
	}
}

func TestPutReplacesPreviousArtifact(t *testing.T) {
	c := openCache(t)

	key := cache.Key("inc;")
	if err := c.Put(key, "prog.bb", "+"); err != nil {
		t.Fatalf("put failed: %s", err)
	}
	if err := c.Put(key, "prog.bb", "++"); err != nil {
		t.Fatalf("second put failed: %s", err)
	}

	code, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if code != "++" {
		t.Errorf("expected replacement %q, got %q", "++", code)
	}
}

func TestDifferentSourcesGetDifferentKeys(t *testing.T) {
	if cache.Key("inc;") == cache.Key("dec;") {
		t.Fatal("distinct sources hashed to the same key")
	}
}

func TestPersistenceAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifacts.db")

	c1, err := cache.Open(path)
	if err != nil {
		t.Fatalf("failed to open cache: %s", err)
	}
	key := cache.Key("cellout;")
	if err := c1.Put(key, "prog.bb", "."); err != nil {
		t.Fatalf("put failed: %s", err)
	}
	c1.Close()

	c2, err := cache.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen cache: %s", err)
	}
	defer c2.Close()

	code, ok, err := c2.Get(key)
	if err != nil || !ok {
		t.Fatalf("artifact did not survive reopen: ok=%v err=%v", ok, err)
	}
	if code != "." {
		t.Errorf("expected %q, got %q", ".", code)
	}
}
