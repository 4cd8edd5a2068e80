// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	. "github.com/Cloudxtreme/bfs-1/internal/zaplog"
	"go.uber.org/zap"
)

const recvWindowSize = 100

// Block is the in-memory handle of one on-disk block. It is reference
// counted: the manager's map holds one reference, every operation
// borrows another and must release it on all paths. Appends flow
// through a sliding window so out-of-order packets land on disk in
// packet_seq order.
type Block struct {
	storePath string
	filePath  string

	mu           sync.Mutex
	meta         BlockMeta
	blockBuf     []byte
	diskFileSize int64
	file         *os.File
	sliceNum     int32
	finished     bool
	brokenErr    error

	recvWindow *slidingWindow

	deleted atomic.Bool
	refs    atomic.Int64

	fileCache    *FileCache
	writeBufSize int
}

func NewBlock(meta BlockMeta, storePath string, fileCache *FileCache, writeBufSize int) *Block {
	b := &Block{
		storePath:    storePath,
		filePath:     blockFilePath(storePath, meta.BlockId),
		meta:         meta,
		diskFileSize: meta.BlockSize,
		sliceNum:     -1,
		finished:     meta.Version > 0,
		fileCache:    fileCache,
		writeBufSize: writeBufSize,
	}
	b.recvWindow = newSlidingWindow(recvWindowSize, b.appendPacket)
	gBlocks.Inc()
	if !b.finished {
		gWritingBlocks.Inc()
	}
	return b
}

// blockFilePath spreads blocks over 1000 subdirectories of the store
// path, NNN/<block_id>.
func blockFilePath(storePath string, blockId int64) string {
	return fmt.Sprintf("%s%03d/%d", storePath, blockId%1000, blockId)
}

func (b *Block) Id() int64 {
	return b.meta.BlockId
}

func (b *Block) GetFilePath() string {
	return b.filePath
}

func (b *Block) GetMeta() BlockMeta {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.meta
}

// Size is bytes accepted so far, durable or still buffered.
func (b *Block) Size() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.diskFileSize + int64(len(b.blockBuf))
}

// DiskUsed is bytes actually flushed to the data file.
func (b *Block) DiskUsed() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.diskFileSize
}

func (b *Block) GetVersion() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.meta.Version
}

// SetVersion seals the version; called with the last packet_seq.
func (b *Block) SetVersion(version int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.meta.Version = version
}

// SetSliceNum declares the total packet count of the block.
func (b *Block) SetSliceNum(num int32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sliceNum = num
}

func (b *Block) AddRef() {
	b.refs.Inc()
}

// DecRef drops one reference; the last one closes descriptors and
// releases window buffers.
func (b *Block) DecRef() {
	if b.refs.Dec() == 0 {
		b.mu.Lock()
		if b.file != nil {
			b.file.Close()
			b.file = nil
		}
		if !b.finished {
			gWritingBlocks.Dec()
		}
		b.recvWindow.Drop()
		b.mu.Unlock()
		gBlocks.Dec()
	}
}

// SetDeleted wins at most once; the winner owns file removal.
func (b *Block) SetDeleted() bool {
	return b.deleted.CompareAndSwap(false, true)
}

func (b *Block) IsDeleted() bool {
	return b.deleted.Load()
}

// IsComplete is true once every declared packet has been applied.
func (b *Block) IsComplete() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sliceNum >= 0 && b.brokenErr == nil &&
		b.recvWindow.UpperBound() == b.sliceNum
}

// Write hands one packet to the block. Replayed packets answer true
// without changing state. False means the packet is unacceptable:
// past the declared last packet, outside the reorder window, or the
// block is broken or going away.
func (b *Block) Write(packetSeq int32, offset int64, data []byte) bool {
	if b.deleted.Load() {
		ZapLogger.Warn("Write to deleted block", zap.Int64("block", b.meta.BlockId))
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.brokenErr != nil {
		return false
	}
	if b.finished {
		// Replays after seal are idempotent successes.
		return packetSeq < b.recvWindow.UpperBound()
	}
	if b.sliceNum >= 0 && packetSeq >= b.sliceNum {
		ZapLogger.Warn("Write past last packet",
			zap.Int64("block", b.meta.BlockId),
			zap.Int32("seq", packetSeq),
			zap.Int32("slice_num", b.sliceNum))
		return false
	}

	// The release callback runs inline under b.mu.
	switch b.recvWindow.Add(packetSeq, offset, data) {
	case windowAddDuplicate:
		return true
	case windowAddOutOfRange:
		ZapLogger.Warn("Write out of window",
			zap.Int64("block", b.meta.BlockId),
			zap.Int32("seq", packetSeq),
			zap.Int64("offset", offset))
		return false
	}
	if b.brokenErr != nil {
		return false
	}
	gWriteBytes.Add(int64(len(data)))
	return true
}

// appendPacket is the window release callback, invoked in seq order
// with b.mu already held by Write.
func (b *Block) appendPacket(seq int32, offset int64, data []byte) {
	if b.brokenErr != nil {
		return
	}
	cur := b.diskFileSize + int64(len(b.blockBuf))
	if offset != cur {
		b.brokenErr = errors.Errorf("offset %d does not match block end %d", offset, cur)
		ZapLogger.Warn("Packet offset mismatch",
			zap.Int64("block", b.meta.BlockId),
			zap.Int32("seq", seq),
			zap.Int64("offset", offset),
			zap.Int64("end", cur))
		return
	}
	if err := b.appendLocked(data); err != nil {
		b.brokenErr = err
		ZapLogger.Warn("Append fail",
			zap.Int64("block", b.meta.BlockId), zap.Error(err))
		return
	}
	b.meta.BlockSize = b.diskFileSize + int64(len(b.blockBuf))
}

func (b *Block) appendLocked(data []byte) error {
	for len(data) > 0 {
		if b.blockBuf == nil {
			b.blockBuf = make([]byte, 0, b.writeBufSize)
		}
		room := cap(b.blockBuf) - len(b.blockBuf)
		if room == 0 {
			if err := b.flushLocked(); err != nil {
				return err
			}
			continue
		}
		n := room
		if len(data) < n {
			n = len(data)
		}
		b.blockBuf = append(b.blockBuf, data[:n]...)
		data = data[n:]
	}
	return nil
}

func (b *Block) flushLocked() error {
	if len(b.blockBuf) == 0 {
		return nil
	}
	if b.file == nil {
		dir := filepath.Dir(b.filePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "mkdir %s", dir)
		}
		f, err := os.OpenFile(b.filePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return errors.Wrapf(err, "open %s", b.filePath)
		}
		b.file = f
	}
	n, err := b.file.Write(b.blockBuf)
	if err != nil {
		return errors.Wrapf(err, "write %s", b.filePath)
	}
	b.diskFileSize += int64(n)
	gDataSize.Add(int64(n))
	b.blockBuf = b.blockBuf[:0]
	return nil
}

// Close flushes, syncs and seals the block. Only the first call
// returns true; the caller persists the sealed meta and sends the
// finish report exactly once.
func (b *Block) Close() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finished || b.brokenErr != nil {
		return false
	}
	if err := b.flushLocked(); err != nil {
		b.brokenErr = err
		ZapLogger.Warn("Close flush fail",
			zap.Int64("block", b.meta.BlockId), zap.Error(err))
		return false
	}
	if b.file != nil {
		if err := b.file.Sync(); err != nil {
			b.brokenErr = errors.Wrapf(err, "sync %s", b.filePath)
			return false
		}
		b.file.Close()
		b.file = nil
	}
	b.meta.BlockSize = b.diskFileSize
	b.finished = true
	gWritingBlocks.Dec()
	return true
}

// Read copies up to readLen bytes starting at offset into a fresh
// buffer. Only bytes appended before the call began are visible.
func (b *Block) Read(readLen int32, offset int64) ([]byte, error) {
	if b.deleted.Load() {
		return nil, errors.Errorf("block #%d deleted", b.meta.BlockId)
	}
	b.mu.Lock()
	diskSize := b.diskFileSize
	memBuf := append([]byte(nil), b.blockBuf...)
	b.mu.Unlock()

	total := diskSize + int64(len(memBuf))
	if readLen <= 0 || offset >= total {
		return []byte{}, nil
	}
	want := int64(readLen)
	if want > total-offset {
		want = total - offset
	}
	out := make([]byte, 0, want)

	if offset < diskSize {
		n := diskSize - offset
		if n > want {
			n = want
		}
		f, err := b.fileCache.GetFile(b.filePath)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", b.filePath)
		}
		part := make([]byte, n)
		if _, err := f.ReadAt(part, offset); err != nil {
			return nil, errors.Wrapf(err, "read %s", b.filePath)
		}
		out = append(out, part...)
		offset += n
	}
	if int64(len(out)) < want {
		memOff := offset - diskSize
		out = append(out, memBuf[memOff:memOff+(want-int64(len(out)))]...)
	}
	return out, nil
}
