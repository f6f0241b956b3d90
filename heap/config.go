package heap

import (
	"fmt"
	"math/bits"
)

const (
	// DefaultBaseBlockSize is the smallest buddy block's total size (order 0).
	DefaultBaseBlockSize = 128

	// DefaultMaxOrder is the highest buddy order; orderSize(DefaultMaxOrder)
	// is both the largest buddy block size and the mmap threshold.
	DefaultMaxOrder = 10

	// DefaultArenaBlocks is the number of MAX_ORDER blocks preallocated
	// into the arena at first use.
	DefaultArenaBlocks = 32

	// DefaultMaxRequestSize is the largest payload Allocate/Calloc will
	// ever attempt to satisfy, buddy or mmap path.
	DefaultMaxRequestSize = 100_000_000
)

// Config controls the block-size geometry of an Allocator. The zero value
// is not valid; use NewAllocator for spec defaults or NewAllocatorWithConfig
// for a customized allocator.
type Config struct {
	// BaseBlockSize is the order-0 total block size (header included).
	// Must be a power of two strictly greater than the header size.
	BaseBlockSize int
	// MaxOrder is the highest buddy order. orderSize(MaxOrder) is the
	// largest block the buddy path will ever hand out and therefore the
	// mmap threshold.
	MaxOrder int
	// ArenaBlocks is how many MAX_ORDER blocks the arena holds.
	ArenaBlocks int
	// MaxRequestSize caps n for Allocate/Calloc, buddy or mmap path.
	MaxRequestSize int
}

// DefaultConfig returns the spec's constants: 128-byte base block,
// MAX_ORDER=10 (128KiB mmap threshold), a 32-block arena, and a 1e8-byte
// request cap.
func DefaultConfig() Config {
	return Config{
		BaseBlockSize:  DefaultBaseBlockSize,
		MaxOrder:       DefaultMaxOrder,
		ArenaBlocks:    DefaultArenaBlocks,
		MaxRequestSize: DefaultMaxRequestSize,
	}
}

func (c Config) validate() error {
	if c.BaseBlockSize <= 0 || c.BaseBlockSize&(c.BaseBlockSize-1) != 0 {
		return fmt.Errorf("heap: BaseBlockSize must be a power of two, got %d", c.BaseBlockSize)
	}
	if c.BaseBlockSize <= headerSize {
		return fmt.Errorf("heap: BaseBlockSize must be > header size (%d), got %d", headerSize, c.BaseBlockSize)
	}
	if c.MaxOrder < 0 {
		return fmt.Errorf("heap: MaxOrder must be >= 0, got %d", c.MaxOrder)
	}
	if c.ArenaBlocks <= 0 {
		return fmt.Errorf("heap: ArenaBlocks must be > 0, got %d", c.ArenaBlocks)
	}
	if c.MaxRequestSize <= 0 {
		return fmt.Errorf("heap: MaxRequestSize must be > 0, got %d", c.MaxRequestSize)
	}
	return nil
}

// Allocator is a buddy-plus-mmap allocator. The zero value is not usable;
// construct with NewAllocator or NewAllocatorWithConfig.
//
// Allocator is not safe for concurrent use; see the package doc.
type Allocator struct {
	cfg            Config
	baseBlockShift int

	arena        []byte
	arenaBase    uintptr
	arenaReady   bool
	freeListHead []int64 // len == cfg.MaxOrder+1, -1 means empty

	mmapHead uintptr // address of first mmap header, 0 if none
	mmapTail uintptr

	freeBlocks uint64
	freeBytes  uint64
	usedBlocks uint64
	usedBytes  uint64
}

// NewAllocator creates an Allocator using the spec's default geometry
// (128-byte base block, MAX_ORDER=10, a 32-block arena, 1e8-byte request
// cap). The arena itself is not obtained until the first Allocate/Calloc
// call.
func NewAllocator() *Allocator {
	a, err := NewAllocatorWithConfig(DefaultConfig())
	if err != nil {
		// DefaultConfig is always valid; a failure here means header.go's
		// layout changed size without updating DefaultBaseBlockSize.
		panic(fmt.Sprintf("heap: invalid default config: %v", err))
	}
	return a
}

// NewAllocatorWithConfig creates an Allocator with a custom block-size
// geometry, validating it the way a constructor taking explicit block
// sizes should: up front, with a descriptive error, before any memory is
// touched.
func NewAllocatorWithConfig(cfg Config) (*Allocator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	a := &Allocator{
		cfg:            cfg,
		baseBlockShift: bits.TrailingZeros(uint(cfg.BaseBlockSize)),
		freeListHead:   make([]int64, cfg.MaxOrder+1),
	}
	for i := range a.freeListHead {
		a.freeListHead[i] = nilOffset
	}
	return a, nil
}
