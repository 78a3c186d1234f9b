// Package worker runs a fixed pool of build goroutines behind
// requests/results channels and a pending-key dedup map, with per-request
// panic recovery so a baking-layer bug only drops one build instead of
// killing the worker goroutine.
package worker

import (
	"context"
	"log"
	"sync"

	"BlockyMesher/internal/cache"
	"BlockyMesher/internal/meshing"
)

// BuildRequest is one chunk's worth of work to mesh.
type BuildRequest struct {
	Key    cache.Key
	Block  *meshing.VoxelBlock
	Params meshing.BuildParams
}

// BuildResult is published on the pool's results channel once a request
// finishes, whether by a fresh build, a cache hit, or a recovered panic.
type BuildResult struct {
	Key    cache.Key
	Result meshing.BuildResult
	Err    error
}

// Pool runs a fixed number of worker goroutines, each with its own
// persistent Scratch threaded in explicitly, one per worker, never
// recreated per build.
type Pool struct {
	requests chan BuildRequest
	results  chan BuildResult
	stop     chan struct{}
	cache    *cache.Cache

	pendingMu sync.Mutex
	pending   map[cache.Key]struct{}
}

// NewPool starts workers goroutines pulling from an internally buffered
// request queue. cache may be nil to disable the result cache entirely.
func NewPool(workers int, c *cache.Cache) *Pool {
	p := &Pool{
		requests: make(chan BuildRequest, 2000),
		results:  make(chan BuildResult, 2000),
		stop:     make(chan struct{}),
		cache:    c,
		pending:  make(map[cache.Key]struct{}),
	}
	for i := 0; i < workers; i++ {
		go p.worker(meshing.NewScratch())
	}
	return p
}

// Enqueue submits a request, returning false without starting a build if
// a build for the same key is already pending or in flight, or if ctx is
// already done.
func (p *Pool) Enqueue(ctx context.Context, req BuildRequest) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}

	p.pendingMu.Lock()
	if _, exists := p.pending[req.Key]; exists {
		p.pendingMu.Unlock()
		return false
	}
	p.pending[req.Key] = struct{}{}
	p.pendingMu.Unlock()

	select {
	case p.requests <- req:
		return true
	case <-ctx.Done():
		p.dropPending(req.Key)
		return false
	default:
		p.dropPending(req.Key)
		return false
	}
}

// Results returns the channel finished builds are published on.
func (p *Pool) Results() <-chan BuildResult { return p.results }

// Stop signals all workers to exit after their current request.
func (p *Pool) Stop() { close(p.stop) }

func (p *Pool) dropPending(key cache.Key) {
	p.pendingMu.Lock()
	delete(p.pending, key)
	p.pendingMu.Unlock()
}

func (p *Pool) worker(scratch *meshing.Scratch) {
	for {
		select {
		case req := <-p.requests:
			p.process(req, scratch)
		case <-p.stop:
			return
		}
	}
}

// process runs one request. The recover is scoped to a single request
// rather than the whole worker loop, so a panic inside one build never
// takes the worker goroutine down with it.
func (p *Pool) process(req BuildRequest, scratch *meshing.Scratch) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] recovered in build worker: %v", r)
			p.dropPending(req.Key)
			p.results <- BuildResult{Key: req.Key, Result: meshing.BuildResult{Primitive: "TRIANGLES"}}
		}
	}()

	hasLibrary := req.Params.Library != nil

	if p.cache != nil && hasLibrary {
		if cached, ok := p.cache.Get(req.Key, req.Params.Library.Revision()); ok {
			p.dropPending(req.Key)
			p.results <- BuildResult{Key: req.Key, Result: cached}
			return
		}
	}

	result, err := meshing.Build(req.Block, req.Params, scratch)
	if err == nil && p.cache != nil && hasLibrary {
		p.cache.Store(req.Key, req.Params.Library.Revision(), result)
	}

	p.dropPending(req.Key)
	p.results <- BuildResult{Key: req.Key, Result: result, Err: err}
}
