package dxfview

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Paullovitt/dxf-3d-viewer/cache"
	"github.com/Paullovitt/dxf-3d-viewer/dxf"
	"github.com/Paullovitt/dxf-3d-viewer/entity"
	"github.com/Paullovitt/dxf-3d-viewer/internal/parallel"
	"github.com/Paullovitt/dxf-3d-viewer/numeric"
)

// CacheSource tells which tier satisfied a Parse call.
type CacheSource string

const (
	// SourceNone means the input was parsed from scratch.
	SourceNone CacheSource = "none"

	// SourceMemory means the memory tier had the result.
	SourceMemory CacheSource = "memory"

	// SourceDisk means the disk tier had the result.
	SourceDisk CacheSource = "disk"
)

// Result is the outcome of one Parse call with its provenance.
//
// Drawing is shared with the caches and possibly with concurrent callers;
// treat it as read-only.
type Result struct {
	Drawing   *Drawing    `json:"parsed"`
	Hash      string      `json:"fileHash"`
	FromCache bool        `json:"fromCache"`
	Source    CacheSource `json:"cacheSource"`

	// Requested is the mode the caller asked for; Executed is the mode
	// that actually ran after availability resolution.
	Requested Mode `json:"requestedMode"`
	Executed  Mode `json:"usedMode"`

	// Shared reports that this result was delivered to several concurrent
	// callers by the in-flight collapser.
	Shared bool `json:"shared"`

	// Elapsed is the wall time of the whole Parse call.
	Elapsed time.Duration `json:"elapsedNs"`
}

// Parser turns DXF bytes into normalized drawings, caching and dispatching
// as configured. Safe for concurrent use.
type Parser struct {
	cfg      Config
	reader   entity.Reader
	chordTol float64

	memory *cache.Memory[*Drawing]
	disk   *cache.Disk[*Drawing]

	flights singleflight.Group

	// Pools are created lazily on first use. Zero worker counts mean the
	// pool is disabled and its parses run synchronously.
	poolMu       sync.Mutex
	cpuPool      *parallel.Pool
	accelPool    *parallel.Pool
	cpuWorkers   int
	accelWorkers int
	closed       bool
}

// New creates a Parser. The disk tier directory is created eagerly so
// misconfiguration surfaces here rather than on the first parse.
func New(cfg Config) (*Parser, error) {
	disk, err := cache.NewDisk(cfg.cacheDir(), func(d *Drawing) bool { return d.Valid() })
	if err != nil {
		return nil, fmt.Errorf("dxfview: disk cache: %w", err)
	}

	reader := cfg.Reader
	if reader == nil {
		reader = dxf.NewReader()
	}

	resolve := func(configured int) int {
		if configured < 0 {
			return 0
		}
		if configured == 0 {
			return runtime.GOMAXPROCS(0)
		}
		return configured
	}

	budget := cfg.memoryBudget()
	p := &Parser{
		cfg:          cfg,
		reader:       reader,
		chordTol:     cfg.chordTolerance(),
		memory:       cache.NewMemory[*Drawing](budget),
		disk:         disk,
		cpuWorkers:   resolve(cfg.CPUWorkers),
		accelWorkers: resolve(cfg.AccelWorkers),
	}
	Logger().Info("parser ready",
		"cacheDir", disk.Dir(),
		"memoryBudgetMB", budget>>20,
		"cpuWorkers", p.cpuWorkers,
		"accelWorkers", p.accelWorkers)
	return p, nil
}

// Parse tessellates and normalizes data, consulting the cache tiers first.
//
// The requested mode downgrades to ModeCPU when no accelerated backend is
// registered. On a cache miss the work is dispatched to the pool serving
// the resolved mode; concurrent calls with the same content hash and
// resolved mode share one execution unless collapsing is disabled.
//
// Cancelling ctx abandons the wait but never the work: the parse runs to
// completion and still populates both cache tiers for the next caller.
func (p *Parser) Parse(ctx context.Context, data []byte, mode Mode) (*Result, error) {
	start := time.Now()

	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	requested := ParseMode(string(mode))
	resolved := p.resolveMode(requested)

	hash := cache.HashBytes(data)
	key := cache.Key{Schema: SchemaVersion, Version: ParserVersion, Hash: hash, Mode: string(resolved)}

	if d, ok := p.memory.Get(key); ok {
		return &Result{
			Drawing:   d,
			Hash:      hash,
			FromCache: true,
			Source:    SourceMemory,
			Requested: requested,
			Executed:  resolved,
			Elapsed:   time.Since(start),
		}, nil
	}

	if d, ok := p.disk.Load(key); ok {
		p.memory.Put(key, d, int64(d.ApproxSize()))
		return &Result{
			Drawing:   d,
			Hash:      hash,
			FromCache: true,
			Source:    SourceDisk,
			Requested: requested,
			Executed:  resolved,
			Elapsed:   time.Since(start),
		}, nil
	}

	if p.cfg.DisableSingleflight {
		res, err := p.parseMiss(ctx, data, key, resolved)
		if err != nil {
			return nil, err
		}
		out := *res
		out.Requested = requested
		out.Elapsed = time.Since(start)
		return &out, nil
	}

	ch := p.flights.DoChan(key.String(), func() (any, error) {
		// The flight outlives any single caller, so it must not inherit a
		// caller's cancellation.
		return p.parseMiss(context.Background(), data, key, resolved)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case flight := <-ch:
		if flight.Err != nil {
			return nil, flight.Err
		}
		// The flight result is shared between callers; copy before
		// filling per-caller fields.
		out := *flight.Val.(*Result)
		out.Requested = requested
		out.Shared = flight.Shared
		out.Elapsed = time.Since(start)
		return &out, nil
	}
}

// parseMiss runs one uncached parse on the pool serving mode, or inline
// when that pool is disabled or closed. Cancelling ctx abandons the wait;
// a dispatched job still runs and populates the caches.
func (p *Parser) parseMiss(ctx context.Context, data []byte, key cache.Key, mode Mode) (*Result, error) {
	type outcome struct {
		res *Result
		err error
	}
	ch := make(chan outcome, 1)
	job := func() {
		res, err := p.parseAndStore(data, key, mode)
		ch <- outcome{res, err}
	}

	if pool := p.poolFor(mode); pool == nil || !pool.Submit(job) {
		job()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-ch:
		return out.res, out.err
	}
}

// parseAndStore is the worker body: re-check the disk tier, parse, persist.
func (p *Parser) parseAndStore(data []byte, key cache.Key, mode Mode) (*Result, error) {
	// Another process sharing the cache directory may have stored the
	// record since the caller's check.
	if d, ok := p.disk.Load(key); ok {
		p.memory.Put(key, d, int64(d.ApproxSize()))
		return &Result{
			Drawing:   d,
			Hash:      key.Hash,
			FromCache: true,
			Source:    SourceDisk,
			Executed:  mode,
		}, nil
	}

	doc, err := p.readDocument(data)
	if err != nil {
		return nil, err
	}

	backend := p.backendFor(mode)
	contours := Collect(doc, p.chordTol, backend)
	drawing, err := Normalize(contours, backend)
	if err != nil {
		return nil, err
	}

	if err := p.disk.Store(key, drawing); err != nil {
		// A failed write only costs the next cold start.
		Logger().Warn("disk cache write failed", "key", key.String(), "error", err)
	}
	p.memory.Put(key, drawing, int64(drawing.ApproxSize()))

	return &Result{
		Drawing:  drawing,
		Hash:     key.Hash,
		Source:   SourceNone,
		Executed: mode,
	}, nil
}

// readDocument tries the strict read first, then the lenient repair path.
func (p *Parser) readDocument(data []byte) (entity.Document, error) {
	doc, err := p.reader.Read(data)
	if err == nil {
		return doc, nil
	}

	doc, rerr := p.reader.Recover(data)
	if rerr != nil {
		return nil, fmt.Errorf("dxfview: read document: %w", rerr)
	}
	Logger().Debug("document recovered after strict read failed", "readError", err)
	return doc, nil
}

// resolveMode maps the requested mode onto an available one.
func (p *Parser) resolveMode(requested Mode) Mode {
	if requested != ModeAccelerated {
		return ModeCPU
	}
	if _, ok := numeric.Accelerator(); ok {
		return ModeAccelerated
	}
	Logger().Warn("accelerated mode requested but no backend is registered, using cpu")
	return ModeCPU
}

// backendFor returns the numeric backend executing mode.
func (p *Parser) backendFor(mode Mode) numeric.Backend {
	if mode == ModeAccelerated {
		if b, ok := numeric.Accelerator(); ok {
			return b
		}
	}
	return numeric.Scalar()
}

// poolFor returns the pool serving mode, creating it on first use.
// Returns nil when the pool is disabled or the parser closed; callers then
// run the job inline.
func (p *Parser) poolFor(mode Mode) *parallel.Pool {
	p.poolMu.Lock()
	defer p.poolMu.Unlock()

	if p.closed {
		return nil
	}

	if mode == ModeAccelerated {
		if p.accelWorkers == 0 {
			return nil
		}
		if p.accelPool == nil {
			p.accelPool = parallel.NewPool(p.accelWorkers)
			Logger().Info("accelerated parse pool started", "workers", p.accelWorkers)
		}
		return p.accelPool
	}

	if p.cpuWorkers == 0 {
		return nil
	}
	if p.cpuPool == nil {
		p.cpuPool = parallel.NewPool(p.cpuWorkers)
		Logger().Info("cpu parse pool started", "workers", p.cpuWorkers)
	}
	return p.cpuPool
}

// Stats returns a snapshot of the parser's caches and pools.
func (p *Parser) Stats() Stats {
	_, accelAvail := numeric.Accelerator()

	p.poolMu.Lock()
	cpuWorkers, accelWorkers := p.cpuWorkers, p.accelWorkers
	p.poolMu.Unlock()

	return Stats{
		ParserVersion:        ParserVersion,
		SchemaVersion:        SchemaVersion,
		AcceleratedAvailable: accelAvail,
		CPUWorkers:           cpuWorkers,
		AccelWorkers:         accelWorkers,
		Memory:               p.memory.Stats(),
		CacheDir:             p.disk.Dir(),
	}
}

// Close shuts the worker pools down, letting queued parses finish. The
// parser stays usable afterwards; subsequent misses parse synchronously.
// Close is safe to call multiple times.
func (p *Parser) Close() {
	p.poolMu.Lock()
	cpu, accel := p.cpuPool, p.accelPool
	p.cpuPool, p.accelPool = nil, nil
	p.closed = true
	p.poolMu.Unlock()

	if cpu != nil {
		cpu.Close()
	}
	if accel != nil {
		accel.Close()
	}
}
