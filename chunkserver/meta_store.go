// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"

	"github.com/Cloudxtreme/bfs-1/internal/util"
	. "github.com/Cloudxtreme/bfs-1/internal/zaplog"
	"go.uber.org/zap"
)

// BlockMeta is the fixed width persistent descriptor of one block.
// It round-trips bytewise through the meta store.
type BlockMeta struct {
	BlockId   int64
	Version   int64
	BlockSize int64
}

const blockMetaSize = 24

func (m *BlockMeta) Encode() []byte {
	buf := make([]byte, blockMetaSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(m.BlockId))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(m.Version))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(m.BlockSize))
	return buf
}

func DecodeBlockMeta(buf []byte) (BlockMeta, error) {
	var m BlockMeta
	if len(buf) != blockMetaSize {
		return m, errors.Errorf("bad meta size %d", len(buf))
	}
	m.BlockId = int64(binary.LittleEndian.Uint64(buf[0:8]))
	m.Version = int64(binary.LittleEndian.Uint64(buf[8:16]))
	m.BlockSize = int64(binary.LittleEndian.Uint64(buf[16:24]))
	return m, nil
}

// versionKey sorts before every block key because it starts with
// eight NUL bytes while block keys are space padded decimals.
var versionKey = append(make([]byte, 8), []byte("version")...)

// blockIdKey renders the id decimal right-justified in 13 ASCII bytes,
// so byte order over keys equals numeric order over ids.
func blockIdKey(blockId int64) []byte {
	return []byte(fmt.Sprintf("%13d", blockId))
}

func parseBlockKey(key []byte) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(string(key)), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// MetaStore is the durable block_id -> BlockMeta mapping plus the
// namespace version, held in a pebble database under the first store
// path's meta/ subdirectory.
type MetaStore struct {
	db *pebble.DB

	versionMu sync.Mutex
}

func NewMetaStore(dir string) (*MetaStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open meta db %s", dir)
	}
	return &MetaStore{db: db}, nil
}

func (s *MetaStore) Close() error {
	return s.db.Close()
}

// GetVersion returns the persisted namespace version, 0 when unset.
func (s *MetaStore) GetVersion() int64 {
	s.versionMu.Lock()
	defer s.versionMu.Unlock()
	val, closer, err := s.db.Get(versionKey)
	if err != nil {
		return 0
	}
	defer closer.Close()
	if len(val) != 8 {
		ZapLogger.Warn("Namespace version entry corrupt", zap.Int("len", len(val)))
		return 0
	}
	return int64(binary.LittleEndian.Uint64(val))
}

func (s *MetaStore) SetVersion(version int64) error {
	s.versionMu.Lock()
	defer s.versionMu.Unlock()
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(version))
	if err := s.db.Set(versionKey, buf, pebble.Sync); err != nil {
		return errors.Wrap(err, "set namespace version")
	}
	return nil
}

// PutMeta persists meta and reports the elapsed microseconds so the
// write path can account for the sync.
func (s *MetaStore) PutMeta(meta BlockMeta) (int64, error) {
	start := util.GetMicros()
	err := s.db.Set(blockIdKey(meta.BlockId), meta.Encode(), pebble.Sync)
	elapsed := util.GetMicros() - start
	if err != nil {
		return elapsed, errors.Wrapf(err, "put meta #%d", meta.BlockId)
	}
	return elapsed, nil
}

func (s *MetaStore) DeleteMeta(blockId int64) error {
	if err := s.db.Delete(blockIdKey(blockId), pebble.Sync); err != nil {
		return errors.Wrapf(err, "delete meta #%d", blockId)
	}
	return nil
}

// Scan iterates metas in ascending block id starting at fromId, at
// most limit entries.
func (s *MetaStore) Scan(fromId int64, limit int) ([]BlockMeta, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: blockIdKey(fromId),
	})
	if err != nil {
		return nil, errors.Wrap(err, "meta iterator")
	}
	defer iter.Close()

	metas := make([]BlockMeta, 0, limit)
	for iter.First(); iter.Valid() && len(metas) < limit; iter.Next() {
		id, ok := parseBlockKey(iter.Key())
		if !ok {
			return nil, errors.Errorf("unknown meta key: %q", iter.Key())
		}
		meta, err := DecodeBlockMeta(iter.Value())
		if err != nil {
			return nil, errors.Wrapf(err, "decode meta #%d", id)
		}
		if meta.BlockId != id {
			return nil, errors.Errorf("meta key %d does not match body %d", id, meta.BlockId)
		}
		metas = append(metas, meta)
	}
	return metas, nil
}
