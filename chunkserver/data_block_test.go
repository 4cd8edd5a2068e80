// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestBlock(t *testing.T, blockId int64, writeBufSize int) *Block {
	t.Helper()
	dir := t.TempDir() + "/"
	b := NewBlock(BlockMeta{BlockId: blockId}, dir, NewFileCache(16), writeBufSize)
	b.AddRef()
	t.Cleanup(b.DecRef)
	return b
}

func TestBlockOutOfOrderWrites(t *testing.T) {
	b := newTestBlock(t, 42, 4096)

	require.True(t, b.Write(1, 4, []byte("BBBB")))
	require.True(t, b.Write(0, 0, []byte("AAAA")))
	require.True(t, b.Write(2, 8, []byte("CCCC")))
	// is_last on seq 2.
	b.SetSliceNum(3)
	b.SetVersion(2)

	require.True(t, b.IsComplete())
	require.True(t, b.Close())
	require.False(t, b.Close())

	data, err := os.ReadFile(b.GetFilePath())
	require.NoError(t, err)
	require.Equal(t, "AAAABBBBCCCC", string(data))
	require.Equal(t, int64(2), b.GetVersion())
	require.Equal(t, int64(12), b.GetMeta().BlockSize)
}

func TestBlockDuplicateWriteIdempotent(t *testing.T) {
	b := newTestBlock(t, 7, 4096)
	require.True(t, b.Write(0, 0, []byte("AAAA")))
	size := b.Size()
	require.True(t, b.Write(0, 0, []byte("AAAA")))
	require.Equal(t, size, b.Size())
}

func TestBlockWritePastLast(t *testing.T) {
	b := newTestBlock(t, 8, 4096)
	require.True(t, b.Write(0, 0, []byte("AAAA")))
	b.SetSliceNum(1)
	require.False(t, b.Write(1, 4, []byte("BBBB")))
}

func TestBlockOffsetMismatchBreaks(t *testing.T) {
	b := newTestBlock(t, 9, 4096)
	require.True(t, b.Write(0, 0, []byte("AAAA")))
	// Released in order but the offset does not line up with the end.
	require.False(t, b.Write(1, 6, []byte("BBBB")))
	require.False(t, b.Write(2, 8, []byte("CCCC")))
	require.False(t, b.Close())
}

func TestBlockDeleted(t *testing.T) {
	b := newTestBlock(t, 10, 4096)
	require.True(t, b.Write(0, 0, []byte("AAAA")))
	require.True(t, b.SetDeleted())
	require.False(t, b.SetDeleted())
	require.False(t, b.Write(1, 4, []byte("BBBB")))
	_, err := b.Read(4, 0)
	require.Error(t, err)
}

func TestBlockReadDiskAndBuffer(t *testing.T) {
	// Small write buffer so part of the data is flushed and part is
	// still in memory.
	b := newTestBlock(t, 11, 6)
	require.True(t, b.Write(0, 0, []byte("AAAA")))
	require.True(t, b.Write(1, 4, []byte("BBBB")))
	require.Equal(t, int64(6), b.DiskUsed())
	require.Equal(t, int64(8), b.Size())

	data, err := b.Read(8, 0)
	require.NoError(t, err)
	require.Equal(t, "AAAABBBB", string(data))

	// Partial read across the disk/buffer boundary.
	data, err = b.Read(4, 5)
	require.NoError(t, err)
	require.Equal(t, "BBB", string(data))

	// Reads past the end return empty.
	data, err = b.Read(4, 100)
	require.NoError(t, err)
	require.Empty(t, data)
}
