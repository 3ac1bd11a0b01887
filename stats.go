package dxfview

import "github.com/Paullovitt/dxf-3d-viewer/cache"

// Stats is a point-in-time snapshot of a Parser, the programmatic
// equivalent of a health probe.
type Stats struct {
	ParserVersion string `json:"parser"`
	SchemaVersion int    `json:"schema"`

	// AcceleratedAvailable reports whether an accelerated numeric backend
	// is registered right now.
	AcceleratedAvailable bool `json:"acceleratedAvailable"`

	// CPUWorkers and AccelWorkers are the resolved pool sizes; zero means
	// the pool is disabled and parses run synchronously.
	CPUWorkers   int `json:"cpuWorkers"`
	AccelWorkers int `json:"accelWorkers"`

	// Memory is the memory tier snapshot.
	Memory cache.MemoryStats `json:"memory"`

	// CacheDir is the disk tier root.
	CacheDir string `json:"cacheDir"`
}
