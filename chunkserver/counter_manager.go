// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"sync"

	"github.com/Cloudxtreme/bfs-1/internal/util"
)

// Counters is one interval snapshot. The op, byte and buffer counts
// are per-second rates; RpcDelay and DelayAll are mean per-rpc delays
// in milliseconds.
type Counters struct {
	FindOps       int64
	ReadOps       int64
	WriteOps      int64
	RefuseOps     int64
	WriteBytes    int64
	BuffersNew    int64
	BuffersDelete int64
	RpcDelay      int64
	DelayAll      int64
}

// CounterManager drains the interval counters once per gather and
// keeps the last snapshot for the status page.
type CounterManager struct {
	mu         sync.Mutex
	counters   Counters
	lastGather int64
}

func NewCounterManager() *CounterManager {
	cm := &CounterManager{lastGather: util.GetMicros()}
	return cm
}

func (cm *CounterManager) GatherCounters() {
	now := util.GetMicros()
	cm.mu.Lock()
	defer cm.mu.Unlock()
	interval := (now - cm.lastGather) / 1000000
	if interval <= 0 {
		interval = 1
	}
	cm.lastGather = now

	var c Counters
	c.FindOps = gFindOps.Swap(0) / interval
	c.ReadOps = gReadOps.Swap(0) / interval
	c.WriteOps = gWriteOps.Swap(0) / interval
	c.RefuseOps = gRefuseOps.Swap(0) / interval
	c.WriteBytes = gWriteBytes.Swap(0) / interval
	c.BuffersNew = gBuffersNew.Swap(0) / interval
	c.BuffersDelete = gBuffersDelete.Swap(0) / interval

	count := gRpcCount.Swap(0)
	if count == 0 {
		count = 1
	}
	c.RpcDelay = gRpcDelay.Swap(0) / count / 1000
	c.DelayAll = gRpcDelayAll.Swap(0) / count / 1000
	cm.counters = c
}

func (cm *CounterManager) GetCounters() Counters {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.counters
}
