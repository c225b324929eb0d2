package driver_test

import (
	"testing"

	"schemac/internal/driver"
	"schemac/internal/project"
	"schemac/internal/schema"
)

func TestDiskCachePutGetRoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	var digest project.Digest
	digest[0] = 7
	set := schema.NodeSet{Root: schema.Node{ID: 42, Kind: schema.NodeStruct, Struct: schema.StructBody{DataWordCount: 1}}}

	if err := cache.Put(digest, schema.NodeID(42), set); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := cache.Get(digest)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.Root.ID != 42 || got.Root.Struct.DataWordCount != 1 {
		t.Fatalf("unexpected round-tripped node set: %+v", got)
	}
}

func TestDiskCacheMissOnUnknownDigest(t *testing.T) {
	cache, err := driver.OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	var digest project.Digest
	digest[0] = 9
	_, ok, err := cache.Get(digest)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected a miss for a digest never written")
	}
}

func TestDiskCacheClearRemovesEntries(t *testing.T) {
	cache, err := driver.OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	var digest project.Digest
	digest[0] = 1
	if err := cache.Put(digest, schema.NodeID(1), schema.NodeSet{}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if count, err := cache.Stats(); err != nil || count != 1 {
		t.Fatalf("Stats before clear = %d, %v, want 1, nil", count, err)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if count, err := cache.Stats(); err != nil || count != 0 {
		t.Fatalf("Stats after clear = %d, %v, want 0, nil", count, err)
	}
}
