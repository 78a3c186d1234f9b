package cache

import (
	"testing"

	"BlockyMesher/internal/geom"
	"BlockyMesher/internal/meshing"
)

func sampleResult() meshing.BuildResult {
	return meshing.BuildResult{
		Primitive: "TRIANGLES",
		Surfaces: []meshing.SurfaceOutput{
			{
				MaterialIndex: 0,
				Positions:     []geom.Vector3{{X: 1}},
				Indices:       []uint32{0},
			},
		},
	}
}

func TestCacheStoreThenGetHitsWithMatchingRevision(t *testing.T) {
	c := New(10, "")
	key := Key{ChunkX: 1, ChunkY: 2, ChunkZ: 3, LOD: 0}
	c.Store(key, 5, sampleResult())

	got, ok := c.Get(key, 5)
	if !ok {
		t.Fatal("expected a cache hit for the stored key and matching revision")
	}
	if len(got.Surfaces) != 1 || got.Surfaces[0].Positions[0].X != 1 {
		t.Errorf("got = %+v, want the stored result", got)
	}
}

func TestCacheGetMissesOnStaleRevision(t *testing.T) {
	c := New(10, "")
	key := Key{ChunkX: 1}
	c.Store(key, 5, sampleResult())

	if _, ok := c.Get(key, 6); ok {
		t.Error("expected a miss when the library revision has advanced past the cached entry")
	}
	if _, ok := c.Get(key, 5); ok {
		t.Error("a stale hit should evict the entry, so a repeat lookup at the stale revision also misses")
	}
}

func TestCacheGetReturnsIndependentClones(t *testing.T) {
	c := New(10, "")
	key := Key{ChunkX: 1}
	c.Store(key, 1, sampleResult())

	got1, _ := c.Get(key, 1)
	got1.Surfaces[0].Positions[0].X = 999

	got2, _ := c.Get(key, 1)
	if got2.Surfaces[0].Positions[0].X == 999 {
		t.Error("mutating one retrieved clone should not affect a later retrieval")
	}
}

func TestCacheEvictsOldestWhenOverCapacity(t *testing.T) {
	c := New(2, "")
	c.Store(Key{ChunkX: 1}, 1, sampleResult())
	c.Store(Key{ChunkX: 2}, 1, sampleResult())
	c.Store(Key{ChunkX: 3}, 1, sampleResult())

	if _, ok := c.Get(Key{ChunkX: 1}, 1); ok {
		t.Error("oldest entry should have been evicted once capacity was exceeded")
	}
	if _, ok := c.Get(Key{ChunkX: 3}, 1); !ok {
		t.Error("most recently stored entry should still be present")
	}
}

func TestCacheClearRemovesAllEntries(t *testing.T) {
	c := New(10, "")
	c.Store(Key{ChunkX: 1}, 1, sampleResult())
	c.Clear()

	if _, ok := c.Get(Key{ChunkX: 1}, 1); ok {
		t.Error("expected no entries after Clear")
	}
}

func TestKeyStringIsUniquePerComponent(t *testing.T) {
	a := Key{ChunkX: 1, ChunkY: 2, ChunkZ: 3, LOD: 0}
	b := Key{ChunkX: 1, ChunkY: 2, ChunkZ: 3, LOD: 1}
	if a.String() == b.String() {
		t.Errorf("distinct keys produced the same string: %q", a.String())
	}
}

func TestCacheWithoutDiskTierMissesAfterProcessRestart(t *testing.T) {
	// No dbPath means the disk tier is never opened; a miss stays a miss.
	c := New(10, "")
	if _, ok := c.Get(Key{ChunkX: 42}, 1); ok {
		t.Error("expected a miss on an empty in-memory-only cache")
	}
}
