package dxfview

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Paullovitt/dxf-3d-viewer/cache"
	"github.com/Paullovitt/dxf-3d-viewer/entity"
	"github.com/Paullovitt/dxf-3d-viewer/tessellate"
)

// defaultTotalRAM is assumed when the caller provides no memory probe.
const defaultTotalRAM = 8 << 30

// defaultCacheDir is the disk tier root when none is configured.
var defaultCacheDir = filepath.Join(".cache", "parsed")

// Config carries the tunables of a Parser. The zero value is usable; every
// field falls back to its documented default.
type Config struct {
	// CPUWorkers sizes the pool serving cpu-mode parses. Zero selects
	// GOMAXPROCS. Negative disables the pool; those parses then run
	// synchronously in the calling goroutine.
	CPUWorkers int

	// AccelWorkers sizes the pool serving accelerated-mode parses, with
	// the same zero and negative semantics as CPUWorkers.
	AccelWorkers int

	// CacheDir is the disk tier root. Empty selects ".cache/parsed"
	// relative to the working directory.
	CacheDir string

	// TotalRAMBytes is the machine's total memory, used to size the memory
	// tier. The library performs no hardware detection; the composition
	// root probes and passes the value. Zero assumes 8 GiB.
	TotalRAMBytes uint64

	// RAMFraction is the share of TotalRAMBytes granted to the memory
	// tier. Zero selects cache.DefaultRAMFraction; the effective value is
	// clamped by cache.MemoryBudget.
	RAMFraction float64

	// RAMFloorMB is the minimum memory tier budget in MiB regardless of
	// the fraction. Zero selects cache.DefaultFloorMB.
	RAMFloorMB int

	// ChordTolerance bounds the chord deviation of tessellated curves.
	// Zero selects tessellate.DefaultChordTolerance.
	ChordTolerance float64

	// Reader decodes input bytes into a document. Nil selects the bundled
	// dxf reader.
	Reader entity.Reader

	// DisableSingleflight turns off collapsing of concurrent identical
	// parses. With collapsing on (the default), concurrent Parse calls for
	// the same content hash and resolved mode share one execution.
	DisableSingleflight bool
}

// ConfigFromEnv builds a Config from the DXF_* environment variables:
//
//	DXF_CPU_WORKERS        pool size for cpu parses (min 1)
//	DXF_ACCEL_WORKERS      pool size for accelerated parses (min 1)
//	DXF_CACHE_DIR          disk tier root
//	DXF_CACHE_RAM_FRACTION memory tier share of total RAM (0.05..0.95)
//	DXF_CACHE_RAM_MIN_MB   memory tier floor in MiB (min 64)
//	DXF_CHORD_TOLERANCE    tessellation chord tolerance (min 0.05)
//
// Unset or unparseable variables keep their defaults; set values are
// clamped to their documented ranges.
func ConfigFromEnv() Config {
	return Config{
		CPUWorkers:     envInt("DXF_CPU_WORKERS", 0, 1),
		AccelWorkers:   envInt("DXF_ACCEL_WORKERS", 0, 1),
		CacheDir:       strings.TrimSpace(os.Getenv("DXF_CACHE_DIR")),
		RAMFraction:    envFloat("DXF_CACHE_RAM_FRACTION", cache.DefaultRAMFraction, cache.MinRAMFraction, cache.MaxRAMFraction),
		RAMFloorMB:     envInt("DXF_CACHE_RAM_MIN_MB", cache.DefaultFloorMB, cache.MinFloorMB),
		ChordTolerance: envFloat("DXF_CHORD_TOLERANCE", tessellate.DefaultChordTolerance, tessellate.MinChordTolerance, 100),
	}
}

// envInt reads an integer variable. Unset or unparseable values return the
// default unchanged; parsed values are raised to min.
func envInt(name string, def, min int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	return v
}

// envFloat reads a float variable. Unset or unparseable values return the
// default unchanged; parsed values are clamped to [min, max].
func envFloat(name string, def, min, max float64) float64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func (c Config) chordTolerance() float64 {
	if c.ChordTolerance <= 0 {
		return tessellate.DefaultChordTolerance
	}
	return c.ChordTolerance
}

func (c Config) cacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	return defaultCacheDir
}

func (c Config) memoryBudget() int64 {
	total := c.TotalRAMBytes
	if total == 0 {
		total = defaultTotalRAM
	}
	fraction := c.RAMFraction
	if fraction == 0 {
		fraction = cache.DefaultRAMFraction
	}
	floor := c.RAMFloorMB
	if floor == 0 {
		floor = cache.DefaultFloorMB
	}
	return cache.MemoryBudget(total, fraction, floor)
}
