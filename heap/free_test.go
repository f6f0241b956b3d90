package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeNoopsOnEmptyBlock(t *testing.T) {
	a := NewAllocator()
	a.Free(nil)
	a.Free([]byte{})
	assert.Equal(t, uint64(0), a.usedBlocks)
}

func TestFreeIsDoubleFreeSafe(t *testing.T) {
	a := NewAllocator()
	block := a.Allocate(50)
	require.NotNil(t, block)

	a.Free(block)
	usedAfterFirst := a.usedBlocks
	a.Free(block)
	assert.Equal(t, usedAfterFirst, a.usedBlocks, "double free must be a silent no-op")
}

func TestFreeInitOnlyBaseline(t *testing.T) {
	// spec §8 scenario 1.
	a := NewAllocator()
	block := a.Allocate(100)
	require.NotNil(t, block)
	a.Free(block)

	assert.Equal(t, uint64(DefaultArenaBlocks), a.freeBlocks)
	assert.Equal(t, uint64(DefaultArenaBlocks)*uint64(a.maxBlockSize()-headerSize), a.freeBytes)
	assert.Equal(t, uint64(0), a.usedBlocks)
	assert.Equal(t, uint64(0), a.usedBytes)
}

func TestFreeMergeRoundTrip(t *testing.T) {
	// spec §8 scenario 3: allocate four 50-byte blocks, free in reverse.
	a := NewAllocator()
	var blocks [][]byte
	for i := 0; i < 4; i++ {
		b := a.Allocate(50)
		require.NotNil(t, b)
		blocks = append(blocks, b)
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		a.Free(blocks[i])
	}

	assert.Equal(t, uint64(DefaultArenaBlocks), a.freeBlocks)
	assert.Equal(t, uint64(DefaultArenaBlocks)*uint64(a.maxBlockSize()-headerSize), a.freeBytes)
	assert.Equal(t, uint64(0), a.usedBlocks)
	assert.Equal(t, uint64(0), a.usedBytes)
	assert.NotEqual(t, nilOffset, a.freeListHead[a.cfg.MaxOrder])
}

func TestFreeDoesNotDisturbUnrelatedLiveBlocks(t *testing.T) {
	a := NewAllocator()
	p := a.Allocate(32)
	require.NotNil(t, p)
	for i := range p {
		p[i] = 0xAA
	}

	others := make([][]byte, 0, 8)
	for i := 0; i < 8; i++ {
		b := a.Allocate(32)
		require.NotNil(t, b)
		others = append(others, b)
	}
	for _, b := range others {
		a.Free(b)
	}

	for _, v := range p {
		assert.Equal(t, byte(0xAA), v)
	}
}
