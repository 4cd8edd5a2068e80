// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

const (
	windowAddOk         = 0
	windowAddDuplicate  = 1
	windowAddOutOfRange = -1
)

type windowPacket struct {
	offset int64
	data   []byte
}

// slidingWindow reorders out-of-order packets before they hit disk.
// The packet at the window base is released to the callback
// immediately, the rest buffer until the gap fills. Everything below
// base was already released, so it is a duplicate; everything at or
// above base+size does not fit and is refused.
//
// The window is not synchronized; the owning block serializes access
// under its own lock, which also keeps the callback ordered.
type slidingWindow struct {
	base     int32
	size     int32
	items    map[int32]windowPacket
	callback func(seq int32, offset int64, data []byte)
}

// newSlidingWindow's callback runs synchronously inside Add, in
// strictly ascending seq order.
func newSlidingWindow(size int32, callback func(seq int32, offset int64, data []byte)) *slidingWindow {
	return &slidingWindow{
		size:     size,
		items:    make(map[int32]windowPacket),
		callback: callback,
	}
}

func (w *slidingWindow) Add(seq int32, offset int64, data []byte) int {
	if seq < w.base {
		return windowAddDuplicate
	}
	if seq >= w.base+w.size {
		return windowAddOutOfRange
	}
	if _, ok := w.items[seq]; ok {
		return windowAddDuplicate
	}
	w.items[seq] = windowPacket{offset: offset, data: data}
	gBlockBuffers.Inc()
	gBuffersNew.Inc()
	for {
		pkt, ok := w.items[w.base]
		if !ok {
			break
		}
		delete(w.items, w.base)
		w.callback(w.base, pkt.offset, pkt.data)
		w.base++
		gBlockBuffers.Dec()
		gBuffersDelete.Inc()
	}
	return windowAddOk
}

// UpperBound is the next seq the window would release, i.e. the count
// of packets already handed to the callback.
func (w *slidingWindow) UpperBound() int32 {
	return w.base
}

// Buffered reports packets held for reordering.
func (w *slidingWindow) Buffered() int {
	return len(w.items)
}

// Drop releases the buffer accounting without delivering anything.
// Called when the owning block dies before the gaps fill.
func (w *slidingWindow) Drop() {
	n := int64(len(w.items))
	w.items = map[int32]windowPacket{}
	gBlockBuffers.Sub(n)
	gBuffersDelete.Add(n)
}
