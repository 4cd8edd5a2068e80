// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"go.uber.org/atomic"
)

// Process wide counters. They feed the status page and the periodic
// status log; correctness never depends on them.
var (
	gBlockBuffers  = atomic.NewInt64(0)
	gBuffersNew    = atomic.NewInt64(0)
	gBuffersDelete = atomic.NewInt64(0)
	gBlocks        = atomic.NewInt64(0)
	gWritingBlocks = atomic.NewInt64(0)
	gWritingBytes  = atomic.NewInt64(0)
	gFindOps       = atomic.NewInt64(0)
	gReadOps       = atomic.NewInt64(0)
	gWriteOps      = atomic.NewInt64(0)
	gWriteBytes    = atomic.NewInt64(0)
	gRefuseOps     = atomic.NewInt64(0)
	gRpcDelay      = atomic.NewInt64(0)
	gRpcDelayAll   = atomic.NewInt64(0)
	gRpcCount      = atomic.NewInt64(0)
	gDataSize      = atomic.NewInt64(0)
)
