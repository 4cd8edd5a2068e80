// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindowInOrder(t *testing.T) {
	var got []int32
	w := newSlidingWindow(10, func(seq int32, offset int64, data []byte) {
		got = append(got, seq)
	})
	require.Equal(t, windowAddOk, w.Add(0, 0, []byte("a")))
	require.Equal(t, windowAddOk, w.Add(1, 1, []byte("b")))
	require.Equal(t, []int32{0, 1}, got)
	require.Equal(t, int32(2), w.UpperBound())
	require.Equal(t, 0, w.Buffered())
}

func TestWindowReorders(t *testing.T) {
	var got []int32
	w := newSlidingWindow(10, func(seq int32, offset int64, data []byte) {
		got = append(got, seq)
	})
	require.Equal(t, windowAddOk, w.Add(2, 8, []byte("c")))
	require.Equal(t, windowAddOk, w.Add(1, 4, []byte("b")))
	require.Empty(t, got)
	require.Equal(t, 2, w.Buffered())
	require.Equal(t, windowAddOk, w.Add(0, 0, []byte("a")))
	require.Equal(t, []int32{0, 1, 2}, got)
	require.Equal(t, int32(3), w.UpperBound())
}

func TestWindowDuplicates(t *testing.T) {
	var got []int32
	w := newSlidingWindow(10, func(seq int32, offset int64, data []byte) {
		got = append(got, seq)
	})
	w.Add(0, 0, []byte("a"))
	require.Equal(t, windowAddDuplicate, w.Add(0, 0, []byte("a")))
	w.Add(2, 8, []byte("c"))
	require.Equal(t, windowAddDuplicate, w.Add(2, 8, []byte("c")))
	require.Equal(t, []int32{0}, got)
	w.Drop()
}

func TestWindowOutOfRange(t *testing.T) {
	w := newSlidingWindow(4, func(seq int32, offset int64, data []byte) {})
	require.Equal(t, windowAddOutOfRange, w.Add(4, 16, []byte("x")))
	w.Add(0, 0, []byte("a"))
	// Base slid to 1, seq 4 fits now.
	require.Equal(t, windowAddOk, w.Add(4, 16, []byte("x")))
	w.Drop()
}
