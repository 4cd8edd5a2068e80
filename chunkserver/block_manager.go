// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"os"
	"sync"

	"go.uber.org/atomic"

	"github.com/Cloudxtreme/bfs-1/internal/config"
	. "github.com/Cloudxtreme/bfs-1/internal/zaplog"
	"go.uber.org/zap"
)

// BlockManager owns the canonical reference to every live Block and
// keeps the in-memory registry and the meta store consistent. All
// other holders borrow references and must release them on every
// path.
type BlockManager struct {
	mu        sync.Mutex
	blockMap  map[int64]*Block
	metaStore *MetaStore
	placer    *DiskPlacer
	fileCache *FileCache

	namespaceVersion atomic.Int64
	diskQuota        int64
	writeBufSize     int
}

func NewBlockManager(conf *config.ChunkServerConfig) (*BlockManager, error) {
	placer, err := NewDiskPlacer(conf.BlockStorePath)
	if err != nil {
		return nil, err
	}
	return &BlockManager{
		blockMap:     make(map[int64]*Block),
		placer:       placer,
		fileCache:    NewFileCache(conf.FileCacheSize),
		diskQuota:    placer.DiskQuota(),
		writeBufSize: conf.WriteBufSize,
	}, nil
}

// LoadStorage opens the meta db under the first store path and
// rebuilds the registry from it. Any failure here is fatal for the
// process: a node without its meta store has no identity.
func (m *BlockManager) LoadStorage() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, err := NewMetaStore(m.placer.MetaDir())
	if err != nil {
		return err
	}
	m.metaStore = store
	m.namespaceVersion.Store(store.GetVersion())

	blockNum := 0
	from := int64(0)
	for {
		metas, err := store.Scan(from, 1000)
		if err != nil {
			return err
		}
		for _, meta := range metas {
			block := NewBlock(meta, m.placer.GetStorePath(meta.BlockId), m.fileCache, m.writeBufSize)
			block.AddRef()
			m.blockMap[meta.BlockId] = block
			gDataSize.Add(meta.BlockSize)
			blockNum++
		}
		if len(metas) < 1000 {
			break
		}
		from = metas[len(metas)-1].BlockId + 1
	}
	ZapLogger.Info("Load blocks",
		zap.Int("blocks", blockNum),
		zap.Int64("namespace_version", m.namespaceVersion.Load()))
	if m.namespaceVersion.Load() == 0 && blockNum > 0 {
		ZapLogger.Warn("Namespace version lost!")
	}
	m.diskQuota += gDataSize.Load()
	return nil
}

func (m *BlockManager) DiskQuota() int64 {
	return m.diskQuota
}

func (m *BlockManager) NamespaceVersion() int64 {
	return m.namespaceVersion.Load()
}

func (m *BlockManager) SetNamespaceVersion(version int64) bool {
	if err := m.metaStore.SetVersion(version); err != nil {
		ZapLogger.Warn("SetNamespaceVersion fail", zap.Error(err))
		return false
	}
	m.namespaceVersion.Store(version)
	ZapLogger.Info("Set namespace version", zap.Int64("version", version))
	return true
}

func (m *BlockManager) FileCache() *FileCache {
	return m.fileCache
}

// ListBlocks returns up to num metas in ascending id starting at
// offset, straight from the meta store.
func (m *BlockManager) ListBlocks(offset int64, num int) ([]BlockMeta, error) {
	return m.metaStore.Scan(offset, num)
}

// FindBlock looks a block up, optionally creating it. The returned
// handle carries one reference owned by the caller. syncTime is the
// microseconds spent persisting the fresh meta row on creation.
//
// The registry lock is dropped around the meta write: the sync may
// stall and must not block every other lookup. On persistence failure
// the fresh entry is rolled back and nil returned.
func (m *BlockManager) FindBlock(blockId int64, createIfMissing bool) (*Block, int64) {
	var block *Block
	var syncTime int64
	m.mu.Lock()
	gFindOps.Inc()
	if blk, ok := m.blockMap[blockId]; ok {
		block = blk
	} else if createIfMissing {
		meta := BlockMeta{BlockId: blockId, Version: 0, BlockSize: 0}
		block = NewBlock(meta, m.placer.GetStorePath(blockId), m.fileCache, m.writeBufSize)
		// One reference for the map.
		block.AddRef()
		m.blockMap[blockId] = block
		m.mu.Unlock()
		st, err := m.metaStore.PutMeta(meta)
		syncTime = st
		m.mu.Lock()
		if err != nil {
			ZapLogger.Warn("Write to meta fail", zap.Int64("block", blockId), zap.Error(err))
			delete(m.blockMap, blockId)
			block.DecRef()
			block = nil
		}
	}
	m.mu.Unlock()
	// One reference for the caller.
	if block != nil {
		block.AddRef()
	}
	return block, syncTime
}

// CloseBlock seals the block and persists the final meta. True only
// on the call that actually performed the seal.
func (m *BlockManager) CloseBlock(block *Block) bool {
	if !block.Close() {
		return false
	}
	meta := block.GetMeta()
	if _, err := m.metaStore.PutMeta(meta); err != nil {
		ZapLogger.Warn("Write to meta fail on close",
			zap.Int64("block", meta.BlockId), zap.Error(err))
		return false
	}
	return true
}

// RemoveBlock deletes a block: file cache eviction, unlink, meta row,
// then the map entry. A missing file is tolerated only when the block
// never flushed a byte. False when the block is unknown, someone else
// is already deleting it, or the meta delete failed (the map entry
// stays for a retry).
func (m *BlockManager) RemoveBlock(blockId int64) bool {
	var block *Block
	m.mu.Lock()
	blk, ok := m.blockMap[blockId]
	if !ok {
		m.mu.Unlock()
		ZapLogger.Info("Try to remove block that does not exist",
			zap.Int64("block", blockId))
		return false
	}
	if !blk.SetDeleted() {
		m.mu.Unlock()
		ZapLogger.Info("Block deleted by other thread", zap.Int64("block", blockId))
		return false
	}
	block = blk
	block.AddRef()
	m.mu.Unlock()

	du := block.DiskUsed()
	filePath := block.GetFilePath()
	m.fileCache.EraseFileCache(filePath)
	err := os.Remove(filePath)
	if err != nil && (!os.IsNotExist(err) || du > 0) {
		ZapLogger.Warn("Remove disk file fails",
			zap.Int64("block", blockId),
			zap.String("path", filePath),
			zap.Int64("bytes", du),
			zap.Error(err))
	} else {
		ZapLogger.Info("Remove disk file done",
			zap.Int64("block", blockId), zap.String("path", filePath))
	}
	if err == nil || os.IsNotExist(err) {
		gDataSize.Sub(du)
	}

	ret := false
	if err := m.metaStore.DeleteMeta(blockId); err == nil {
		ZapLogger.Info("Remove meta info done", zap.Int64("block", blockId))
		m.mu.Lock()
		delete(m.blockMap, blockId)
		m.mu.Unlock()
		// Drop the map's reference.
		block.DecRef()
		ret = true
	} else {
		ZapLogger.Warn("Remove meta info fails",
			zap.Int64("block", blockId), zap.Error(err))
	}
	block.DecRef()
	return ret
}

// BlockNum is the registry size, for reports.
func (m *BlockManager) BlockNum() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.blockMap))
}

// Close releases the registry and the meta store. Pools must be
// drained first.
func (m *BlockManager) Close() {
	m.mu.Lock()
	for id, block := range m.blockMap {
		delete(m.blockMap, id)
		block.DecRef()
	}
	m.mu.Unlock()
	if m.metaStore != nil {
		if err := m.metaStore.Close(); err != nil {
			ZapLogger.Warn("Close meta store fail", zap.Error(err))
		}
	}
}
