// Package cache holds build results: a reader-writer-locked, clone-on-
// read/write in-memory map, plus an optional SQLite disk tier using a
// gob-encoded blob column.
package cache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"BlockyMesher/internal/geom"
	"BlockyMesher/internal/meshing"
	"BlockyMesher/internal/util"
)

// Key identifies one cached build result.
type Key struct {
	ChunkX, ChunkY, ChunkZ int32
	LOD                    uint8
}

func (k Key) String() string {
	return fmt.Sprintf("%d_%d_%d_%d", k.ChunkX, k.ChunkY, k.ChunkZ, k.LOD)
}

// CachedResult pairs a build output with the library revision it was
// built against, so a later write to the library can invalidate it
// cheaply without diffing the whole model table.
type CachedResult struct {
	Key             Key
	LibraryRevision uint64
	Result          meshing.BuildResult
}

func cloneSurfaces(in []meshing.SurfaceOutput) []meshing.SurfaceOutput {
	if in == nil {
		return nil
	}
	out := make([]meshing.SurfaceOutput, len(in))
	for i, s := range in {
		out[i] = meshing.SurfaceOutput{
			MaterialIndex: s.MaterialIndex,
			Positions:     append([]geom.Vector3(nil), s.Positions...),
			Normals:       append([]geom.Vector3(nil), s.Normals...),
			UVs:           append([]geom.Vector2(nil), s.UVs...),
			Colors:        append([]rl.Color(nil), s.Colors...),
			Tangents:      append([]float32(nil), s.Tangents...),
			Indices:       append([]uint32(nil), s.Indices...),
		}
	}
	return out
}

func cloneResult(r meshing.BuildResult) meshing.BuildResult {
	out := meshing.BuildResult{Primitive: r.Primitive, Surfaces: cloneSurfaces(r.Surfaces)}
	if r.CollisionSurface != nil {
		out.CollisionSurface = &meshing.CollisionOutput{
			Positions: append([]geom.Vector3(nil), r.CollisionSurface.Positions...),
			Indices:   append([]uint32(nil), r.CollisionSurface.Indices...),
		}
	}
	return out
}

// Cache is the reader-writer-locked in-memory tier plus an optional
// best-effort disk tier, each with its own lock.
type Cache struct {
	mu       sync.RWMutex
	entries  map[Key]CachedResult
	order    *util.ThreadSafeQueue[Key]
	capacity int

	dbMu sync.Mutex
	db   *gorm.DB
}

// New creates a cache with the given entry capacity. If dbPath is
// non-empty, a SQLite disk tier is opened; failure to open it disables
// the disk tier but never prevents the in-memory cache from working.
func New(capacity int, dbPath string) *Cache {
	c := &Cache{
		entries:  make(map[Key]CachedResult),
		order:    util.NewThreadSafeQueue[Key](),
		capacity: capacity,
	}
	if dbPath != "" {
		db, err := openDB(dbPath)
		if err != nil {
			log.Printf("[Cache] disk tier disabled: %v", err)
		} else {
			c.db = db
		}
	}
	return c
}

// Get returns a cloned cached result for key if present and built
// against the given library revision. A stale in-memory entry is
// evicted as a side effect of the lookup.
func (c *Cache) Get(key Key, libraryRevision uint64) (meshing.BuildResult, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		if entry.LibraryRevision == libraryRevision {
			return cloneResult(entry.Result), true
		}
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
	}

	if c.db == nil {
		return meshing.BuildResult{}, false
	}
	result, rev, found := c.loadDisk(key)
	if !found || rev != libraryRevision {
		return meshing.BuildResult{}, false
	}
	c.Store(key, rev, result)
	return result, true
}

// Store inserts or replaces a cached result, evicting the oldest entries
// FIFO-style once capacity is exceeded, and best-effort persists to disk
// when a disk tier is configured.
func (c *Cache) Store(key Key, libraryRevision uint64, result meshing.BuildResult) {
	entry := CachedResult{Key: key, LibraryRevision: libraryRevision, Result: cloneResult(result)}

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists {
		c.order.Push(key)
	}
	c.entries[key] = entry
	for len(c.entries) > c.capacity {
		oldest, ok := c.order.Pop()
		if !ok {
			break
		}
		delete(c.entries, oldest)
	}
	c.mu.Unlock()

	if c.db != nil {
		c.saveDisk(entry)
	}
}

// Clear empties the in-memory tier. The disk tier, if any, is untouched.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]CachedResult)
	c.order = util.NewThreadSafeQueue[Key]()
}

type resultRow struct {
	Key             string `gorm:"primaryKey"`
	LibraryRevision uint64
	Data            []byte
	UpdatedAt       time.Time
}

func openDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache: %w", err)
	}
	if err := db.AutoMigrate(&resultRow{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite cache: %w", err)
	}
	return db, nil
}

func (c *Cache) loadDisk(key Key) (meshing.BuildResult, uint64, bool) {
	c.dbMu.Lock()
	defer c.dbMu.Unlock()

	var row resultRow
	if err := c.db.First(&row, "key = ?", key.String()).Error; err != nil {
		return meshing.BuildResult{}, 0, false
	}
	var result meshing.BuildResult
	if err := gob.NewDecoder(bytes.NewReader(row.Data)).Decode(&result); err != nil {
		log.Printf("[Cache] disk decode failed for %s: %v", key, err)
		return meshing.BuildResult{}, 0, false
	}
	return result, row.LibraryRevision, true
}

func (c *Cache) saveDisk(entry CachedResult) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(entry.Result); err != nil {
		log.Printf("[Cache] disk encode failed for %s: %v", entry.Key, err)
		return
	}
	row := resultRow{Key: entry.Key.String(), LibraryRevision: entry.LibraryRevision, Data: buf.Bytes()}

	c.dbMu.Lock()
	defer c.dbMu.Unlock()
	if err := c.db.Save(&row).Error; err != nil {
		log.Printf("[Cache] disk write failed for %s: %v", entry.Key, err)
	}
}
