package vm

import "github.com/aeon-lang/aeonvm/heap"

// Config bounds a VM instance: worker/GC-thread pool sizes, per-process
// heap thresholds, and the compiled-code cache size.
type Config struct {
	Workers     int
	GCWorkers   int
	GCQueueSize int

	YoungBlockThreshold  int
	MatureBlockThreshold int
	PromotionAge         int

	CodeCacheSize int
}

// DefaultConfig returns sane defaults for a small, single-host VM.
func DefaultConfig() Config {
	return Config{
		Workers:              4,
		GCWorkers:            1,
		GCQueueSize:          64,
		YoungBlockThreshold:  heap.DefaultYoungBlockThreshold,
		MatureBlockThreshold: heap.DefaultMatureBlockThreshold,
		PromotionAge:         heap.DefaultPromotionAge,
		CodeCacheSize:        256,
	}
}
