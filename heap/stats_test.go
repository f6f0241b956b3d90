package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderSizeAccessor(t *testing.T) {
	assert.Equal(t, headerSize, HeaderSize())
}

func TestStatsAfterMixedWorkload(t *testing.T) {
	a := NewAllocator()
	b1 := a.Allocate(50)
	b2 := a.Allocate(150 * 1024)
	require.NotNil(t, b1)
	require.NotNil(t, b2)

	assert.Equal(t, a.freeBlocks+a.usedBlocks, a.NumAllocatedBlocks())
	assert.Equal(t, a.freeBytes+a.usedBytes, a.NumAllocatedBytes())
	assert.Equal(t, a.NumAllocatedBlocks()*uint64(headerSize), a.NumMetaDataBytes())

	a.Free(b1)
	a.Free(b2)

	assert.Equal(t, a.freeBlocks+a.usedBlocks, a.NumAllocatedBlocks())
	assert.Equal(t, uint64(0), a.NumAllocatedBytes()-a.freeBytes)
}
