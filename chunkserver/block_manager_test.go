// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Cloudxtreme/bfs-1/internal/config"
)

func newTestManager(t *testing.T, storePath string) *BlockManager {
	t.Helper()
	conf := config.DefaultConfig()
	conf.BlockStorePath = storePath
	conf.WriteBufSize = 4096
	conf.FileCacheSize = 16
	m, err := NewBlockManager(conf)
	require.NoError(t, err)
	require.NoError(t, m.LoadStorage())
	return m
}

func TestFindBlockCreate(t *testing.T) {
	m := newTestManager(t, t.TempDir())
	defer m.Close()

	block, _ := m.FindBlock(1, false)
	require.Nil(t, block)

	block, _ = m.FindBlock(1, true)
	require.NotNil(t, block)
	defer block.DecRef()

	// Registry entry and meta row exist together.
	metas, err := m.ListBlocks(0, 10)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	require.Equal(t, int64(1), metas[0].BlockId)
	require.Equal(t, int64(0), metas[0].Version)

	again, _ := m.FindBlock(1, false)
	require.Same(t, block, again)
	again.DecRef()
}

func TestCloseBlockPersistsMeta(t *testing.T) {
	m := newTestManager(t, t.TempDir())
	defer m.Close()

	block, _ := m.FindBlock(5, true)
	require.NotNil(t, block)
	defer block.DecRef()
	require.True(t, block.Write(0, 0, []byte("hello")))
	block.SetSliceNum(1)
	block.SetVersion(0)

	require.True(t, m.CloseBlock(block))
	// Sealing happens once.
	require.False(t, m.CloseBlock(block))

	metas, err := m.ListBlocks(5, 1)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	require.Equal(t, int64(5), metas[0].BlockSize)
}

func TestRemoveBlock(t *testing.T) {
	m := newTestManager(t, t.TempDir())
	defer m.Close()

	block, _ := m.FindBlock(3, true)
	require.NotNil(t, block)
	require.True(t, block.Write(0, 0, []byte("data")))
	block.SetSliceNum(1)
	require.True(t, m.CloseBlock(block))
	filePath := block.GetFilePath()
	block.DecRef()
	_, err := os.Stat(filePath)
	require.NoError(t, err)

	require.True(t, m.RemoveBlock(3))

	// Gone from registry, disk and meta store.
	found, _ := m.FindBlock(3, false)
	require.Nil(t, found)
	_, err = os.Stat(filePath)
	require.True(t, os.IsNotExist(err))
	metas, err := m.ListBlocks(3, 1)
	require.NoError(t, err)
	require.Empty(t, metas)

	require.False(t, m.RemoveBlock(3))
}

func TestRemoveBlockNeverWritten(t *testing.T) {
	m := newTestManager(t, t.TempDir())
	defer m.Close()

	block, _ := m.FindBlock(4, true)
	require.NotNil(t, block)
	block.DecRef()
	// No data file was ever flushed; the missing file is fine.
	require.True(t, m.RemoveBlock(4))
}

func TestLoadStorageRecovery(t *testing.T) {
	dir := t.TempDir()
	m := newTestManager(t, dir)

	block, _ := m.FindBlock(1, true)
	require.NotNil(t, block)
	require.True(t, block.Write(0, 0, []byte("abcd")))
	block.SetSliceNum(1)
	block.SetVersion(0)
	require.True(t, m.CloseBlock(block))
	block.DecRef()

	other, _ := m.FindBlock(2, true)
	require.NotNil(t, other)
	other.DecRef()

	require.True(t, m.SetNamespaceVersion(7))
	m.Close()

	reopened := newTestManager(t, dir)
	defer reopened.Close()
	require.Equal(t, int64(7), reopened.NamespaceVersion())

	metas, err := reopened.ListBlocks(0, 10)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	require.Equal(t, int64(1), metas[0].BlockId)
	require.Equal(t, int64(4), metas[0].BlockSize)
	require.Equal(t, int64(2), metas[1].BlockId)

	recovered, _ := reopened.FindBlock(1, false)
	require.NotNil(t, recovered)
	require.Equal(t, int64(4), recovered.GetMeta().BlockSize)
	recovered.DecRef()
}

func TestDiskPlacerPure(t *testing.T) {
	base := t.TempDir()
	a := base + "/a"
	b := base + "/b"
	require.NoError(t, os.MkdirAll(a, 0755))
	require.NoError(t, os.MkdirAll(b, 0755))

	placer, err := NewDiskPlacer(b + " , " + a + "," + a)
	require.NoError(t, err)
	// Trimmed, de-duplicated, sorted, trailing slash.
	require.Equal(t, []string{a + "/", b + "/"}, placer.StorePaths())

	other, err := NewDiskPlacer(a + "/," + b + "/")
	require.NoError(t, err)
	for id := int64(0); id < 100; id++ {
		require.Equal(t, placer.GetStorePath(id), other.GetStorePath(id))
	}
	require.Equal(t, placer.StorePaths()[0]+"meta/", placer.MetaDir())
}

func TestDiskPlacerNoUsablePath(t *testing.T) {
	_, err := NewDiskPlacer("/nonexistent-bfs-path-1,/nonexistent-bfs-path-2")
	require.Error(t, err)
}
