// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Cloudxtreme/bfs-1/internal/config"
	"github.com/Cloudxtreme/bfs-1/internal/util"
	"github.com/Cloudxtreme/bfs-1/proto"
	"github.com/pkg/errors"
)

type fakeNameServer struct {
	mu          sync.Mutex
	heartbeats  []*proto.HeartBeatRequest
	reports     []*proto.BlockReportRequest
	pullReports []*proto.PullBlockReportRequest
}

func (f *fakeNameServer) HeartBeat(ctx context.Context, in *proto.HeartBeatRequest, opts ...grpc.CallOption) (*proto.HeartBeatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heartbeats = append(f.heartbeats, in)
	return &proto.HeartBeatResponse{NamespaceVersion: in.GetNamespaceVersion()}, nil
}

func (f *fakeNameServer) BlockReport(ctx context.Context, in *proto.BlockReportRequest, opts ...grpc.CallOption) (*proto.BlockReportResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, in)
	return &proto.BlockReportResponse{
		NamespaceVersion: in.GetNamespaceVersion(),
		ChunkserverId:    in.GetChunkserverId(),
	}, nil
}

func (f *fakeNameServer) PullBlockReport(ctx context.Context, in *proto.PullBlockReportRequest, opts ...grpc.CallOption) (*proto.PullBlockReportResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pullReports = append(f.pullReports, in)
	return &proto.PullBlockReportResponse{}, nil
}

func (f *fakeNameServer) finishReports(blockId int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.reports {
		if len(r.GetBlocks()) == 1 && !r.GetIsComplete() &&
			r.GetBlocks()[0].GetBlockId() == blockId &&
			r.GetBlocks()[0].GetVersion() == 0 {
			n++
		}
	}
	return n
}

type fakePeer struct {
	mu         sync.Mutex
	writeCalls int
	readCalls  int
	lastWrite  *proto.WriteBlockRequest
	writeFn    func(call int, in *proto.WriteBlockRequest) (*proto.WriteBlockResponse, error)
	readFn     func(call int, in *proto.ReadBlockRequest) (*proto.ReadBlockResponse, error)
}

func (f *fakePeer) WriteBlock(ctx context.Context, in *proto.WriteBlockRequest, opts ...grpc.CallOption) (*proto.WriteBlockResponse, error) {
	f.mu.Lock()
	call := f.writeCalls
	f.writeCalls++
	f.lastWrite = in
	f.mu.Unlock()
	return f.writeFn(call, in)
}

func (f *fakePeer) ReadBlock(ctx context.Context, in *proto.ReadBlockRequest, opts ...grpc.CallOption) (*proto.ReadBlockResponse, error) {
	f.mu.Lock()
	call := f.readCalls
	f.readCalls++
	f.mu.Unlock()
	return f.readFn(call, in)
}

func (f *fakePeer) GetBlockInfo(ctx context.Context, in *proto.GetBlockInfoRequest, opts ...grpc.CallOption) (*proto.GetBlockInfoResponse, error) {
	return &proto.GetBlockInfoResponse{Status: 404}, nil
}

func dialerFor(peers map[string]proto.ChunkServerClient) PeerDialer {
	return func(addr string) (proto.ChunkServerClient, func(), error) {
		peer, ok := peers[addr]
		if !ok {
			return nil, nil, errors.Errorf("no route to %s", addr)
		}
		return peer, func() {}, nil
	}
}

func newTestImpl(t *testing.T, peers map[string]proto.ChunkServerClient, mutate func(*config.ChunkServerConfig)) (*ChunkServerImpl, *fakeNameServer) {
	t.Helper()
	conf := config.DefaultConfig()
	conf.BlockStorePath = t.TempDir()
	conf.WorkThreadNum = 4
	conf.ReadThreadNum = 2
	conf.WriteThreadNum = 2
	conf.WriteBufSize = 4096
	conf.FileCacheSize = 16
	if mutate != nil {
		mutate(conf)
	}
	ns := &fakeNameServer{}
	impl, err := NewChunkServerImpl(conf, ns, dialerFor(peers))
	require.NoError(t, err)
	t.Cleanup(impl.Stop)
	return impl, ns
}

func writeReq(blockId int64, seq int32, offset int64, data string, last bool, chain ...string) *proto.WriteBlockRequest {
	return &proto.WriteBlockRequest{
		SequenceId:   util.GetMicros(),
		BlockId:      blockId,
		Databuf:      []byte(data),
		Offset:       offset,
		PacketSeq:    seq,
		IsLast:       last,
		Chunkservers: chain,
	}
}

func TestWriteBlockOutOfOrder(t *testing.T) {
	impl, ns := newTestImpl(t, nil, nil)
	ctx := context.Background()

	resp, err := impl.WriteBlock(ctx, writeReq(42, 1, 4, "BBBB", false))
	require.NoError(t, err)
	require.Equal(t, int32(0), resp.GetStatus())
	resp, err = impl.WriteBlock(ctx, writeReq(42, 0, 0, "AAAA", false))
	require.NoError(t, err)
	require.Equal(t, int32(0), resp.GetStatus())
	resp, err = impl.WriteBlock(ctx, writeReq(42, 2, 8, "CCCC", true))
	require.NoError(t, err)
	require.Equal(t, int32(0), resp.GetStatus())

	block, _ := impl.BlockManager().FindBlock(42, false)
	require.NotNil(t, block)
	data, err := os.ReadFile(block.GetFilePath())
	require.NoError(t, err)
	require.Equal(t, "AAAABBBBCCCC", string(data))
	require.Equal(t, int64(2), block.GetVersion())
	block.DecRef()

	// Sealed exactly once.
	require.Equal(t, 1, ns.finishReports(42))

	// Replays are idempotent and do not reseal.
	resp, err = impl.WriteBlock(ctx, writeReq(42, 1, 4, "BBBB", false))
	require.NoError(t, err)
	require.Equal(t, int32(0), resp.GetStatus())
	require.Equal(t, 1, ns.finishReports(42))
}

func TestWriteBlockFlowControl(t *testing.T) {
	impl, _ := newTestImpl(t, nil, func(conf *config.ChunkServerConfig) {
		conf.MaxPendingBuffers = 0
	})
	refusedBefore := gRefuseOps.Load()

	resp, err := impl.WriteBlock(context.Background(), writeReq(99, 0, 0, "AAAA", false))
	require.NoError(t, err)
	require.Equal(t, int32(500), resp.GetStatus())
	require.Equal(t, refusedBefore+1, gRefuseOps.Load())

	block, _ := impl.BlockManager().FindBlock(99, false)
	require.Nil(t, block)
}

func TestWriteBlockChainFailure(t *testing.T) {
	peerA := &fakePeer{
		writeFn: func(call int, in *proto.WriteBlockRequest) (*proto.WriteBlockResponse, error) {
			return &proto.WriteBlockResponse{Status: 700}, nil
		},
	}
	peerB := &fakePeer{
		writeFn: func(call int, in *proto.WriteBlockRequest) (*proto.WriteBlockResponse, error) {
			return &proto.WriteBlockResponse{}, nil
		},
	}
	impl, _ := newTestImpl(t, map[string]proto.ChunkServerClient{
		"peerA:8825": peerA,
		"peerB:8825": peerB,
	}, nil)

	resp, err := impl.WriteBlock(context.Background(),
		writeReq(50, 0, 0, "AAAA", false, "peerA:8825", "peerB:8825"))
	require.NoError(t, err)
	require.Equal(t, int32(700), resp.GetStatus())

	// The head of the chain was stripped before forwarding.
	peerA.mu.Lock()
	require.Equal(t, []string{"peerB:8825"}, peerA.lastWrite.GetChunkservers())
	peerA.mu.Unlock()

	// The local append never ran.
	block, _ := impl.BlockManager().FindBlock(50, false)
	require.Nil(t, block)
}

func TestWriteBlockChainTransient(t *testing.T) {
	peerA := &fakePeer{
		writeFn: func(call int, in *proto.WriteBlockRequest) (*proto.WriteBlockResponse, error) {
			if call < 3 {
				return nil, status.Error(codes.ResourceExhausted, "send buffer full")
			}
			return &proto.WriteBlockResponse{}, nil
		},
	}
	impl, _ := newTestImpl(t, map[string]proto.ChunkServerClient{
		"peerA:8825": peerA,
	}, nil)

	start := time.Now()
	resp, err := impl.WriteBlock(context.Background(),
		writeReq(51, 0, 0, "AAAA", true, "peerA:8825"))
	require.NoError(t, err)
	require.Equal(t, int32(0), resp.GetStatus())
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	peerA.mu.Lock()
	require.Equal(t, 4, peerA.writeCalls)
	peerA.mu.Unlock()

	// Exactly one local append happened after the chain succeeded.
	block, _ := impl.BlockManager().FindBlock(51, false)
	require.NotNil(t, block)
	require.Equal(t, int64(4), block.Size())
	block.DecRef()
}

func TestBlockReportStateMachine(t *testing.T) {
	impl, _ := newTestImpl(t, nil, nil)
	bm := impl.BlockManager()

	for _, id := range []int64{1, 2} {
		block, _ := bm.FindBlock(id, true)
		require.NotNil(t, block)
		block.DecRef()
	}
	require.True(t, bm.SetNamespaceVersion(7))
	impl.chunkserverId.Store(3)

	// Namespace reset: adopt version and id, keep the blocks.
	impl.handleBlockReportResponse(&proto.BlockReportResponse{
		NamespaceVersion: 9,
		ChunkserverId:    11,
	})
	require.Equal(t, int64(9), bm.NamespaceVersion())
	require.Equal(t, int32(11), impl.ChunkServerId())
	metas, err := bm.ListBlocks(0, 10)
	require.NoError(t, err)
	require.Len(t, metas, 2)

	// Replaying the same response changes nothing.
	impl.handleBlockReportResponse(&proto.BlockReportResponse{
		NamespaceVersion: 9,
		ChunkserverId:    11,
	})
	require.Equal(t, int64(9), bm.NamespaceVersion())
	require.Equal(t, int32(11), impl.ChunkServerId())

	// Rejoin after restart: unknown id adopts the server's.
	impl.chunkserverId.Store(kUnknownChunkServerId)
	impl.handleBlockReportResponse(&proto.BlockReportResponse{
		NamespaceVersion: 9,
		ChunkserverId:    5,
	})
	require.Equal(t, int32(5), impl.ChunkServerId())

	// The nameserver rejecting the identity keeps the old id.
	impl.handleBlockReportResponse(&proto.BlockReportResponse{
		NamespaceVersion: 9,
		ChunkserverId:    kUnknownChunkServerId,
	})
	require.Equal(t, int32(5), impl.ChunkServerId())

	// Nameserver restart reassigns.
	impl.handleBlockReportResponse(&proto.BlockReportResponse{
		NamespaceVersion: 9,
		ChunkserverId:    6,
	})
	require.Equal(t, int32(6), impl.ChunkServerId())
}

func TestSendBlockReportCursor(t *testing.T) {
	impl, ns := newTestImpl(t, nil, func(conf *config.ChunkServerConfig) {
		conf.BlockreportSize = 2
	})
	bm := impl.BlockManager()
	for _, id := range []int64{1, 2, 3, 4, 5} {
		block, _ := bm.FindBlock(id, true)
		require.NotNil(t, block)
		block.DecRef()
	}

	for i := 0; i < 4; i++ {
		impl.SendBlockReport()
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()
	require.GreaterOrEqual(t, len(ns.reports), 4)
	batch := func(i int) []int64 {
		var ids []int64
		for _, b := range ns.reports[i].GetBlocks() {
			ids = append(ids, b.GetBlockId())
		}
		return ids
	}
	require.Equal(t, []int64{1, 2}, batch(0))
	require.False(t, ns.reports[0].GetIsComplete())
	require.Equal(t, []int64{3, 4}, batch(1))
	require.False(t, ns.reports[1].GetIsComplete())
	require.Equal(t, []int64{5}, batch(2))
	require.True(t, ns.reports[2].GetIsComplete())
	// Cursor reset: the sweep starts over.
	require.Equal(t, []int64{1, 2}, batch(3))
}

func TestPullWithFailover(t *testing.T) {
	content := []byte("AAAABBBB")
	chunk := 4
	serveFrom := func(offset int64) *proto.ReadBlockResponse {
		if offset >= int64(len(content)) {
			return &proto.ReadBlockResponse{BlockVersion: 1}
		}
		end := offset + int64(chunk)
		if end > int64(len(content)) {
			end = int64(len(content))
		}
		return &proto.ReadBlockResponse{Databuf: content[offset:end], BlockVersion: 1}
	}
	peerA := &fakePeer{
		readFn: func(call int, in *proto.ReadBlockRequest) (*proto.ReadBlockResponse, error) {
			if call >= 1 {
				// Fails on the second chunk.
				return &proto.ReadBlockResponse{Status: 1}, nil
			}
			return serveFrom(in.GetOffset()), nil
		},
	}
	peerB := &fakePeer{
		readFn: func(call int, in *proto.ReadBlockRequest) (*proto.ReadBlockResponse, error) {
			return serveFrom(in.GetOffset()), nil
		},
	}
	impl, ns := newTestImpl(t, map[string]proto.ChunkServerClient{
		"A:8825": peerA,
		"B:8825": peerB,
	}, nil)

	impl.PullNewBlocks([]*proto.ReplicaInfo{{
		BlockId:            77,
		ChunkserverAddress: []string{"A:8825", "B:8825"},
	}})

	block, _ := impl.BlockManager().FindBlock(77, false)
	require.NotNil(t, block)
	require.Equal(t, int64(1), block.GetVersion())
	data, err := os.ReadFile(block.GetFilePath())
	require.NoError(t, err)
	require.Equal(t, string(content), string(data))
	block.DecRef()

	// B took over at the same offset.
	peerB.mu.Lock()
	require.GreaterOrEqual(t, peerB.readCalls, 2)
	peerB.mu.Unlock()

	ns.mu.Lock()
	defer ns.mu.Unlock()
	require.Len(t, ns.pullReports, 1)
	require.Equal(t, []int64{77}, ns.pullReports[0].GetBlocks())
}

func TestPullNoReachablePeer(t *testing.T) {
	impl, ns := newTestImpl(t, nil, nil)

	impl.PullNewBlocks([]*proto.ReplicaInfo{{
		BlockId:            78,
		ChunkserverAddress: []string{"gone1:8825", "gone2:8825"},
	}})

	block, _ := impl.BlockManager().FindBlock(78, false)
	require.Nil(t, block)
	ns.mu.Lock()
	defer ns.mu.Unlock()
	require.Len(t, ns.pullReports, 1)
	require.Equal(t, []int64{78}, ns.pullReports[0].GetBlocks())
}

func TestSendHeartbeat(t *testing.T) {
	impl, ns := newTestImpl(t, nil, nil)
	impl.SendHeartbeat()

	ns.mu.Lock()
	defer ns.mu.Unlock()
	require.Len(t, ns.heartbeats, 1)
	require.Equal(t, kUnknownChunkServerId, ns.heartbeats[0].GetChunkserverId())
}

func TestReadBlock(t *testing.T) {
	impl, _ := newTestImpl(t, nil, nil)
	ctx := context.Background()

	resp, err := impl.WriteBlock(ctx, writeReq(60, 0, 0, "hello world", true))
	require.NoError(t, err)
	require.Equal(t, int32(0), resp.GetStatus())

	read, err := impl.ReadBlock(ctx, &proto.ReadBlockRequest{
		BlockId:             60,
		Offset:              6,
		ReadLen:             64,
		RequireBlockVersion: true,
	})
	require.NoError(t, err)
	require.Equal(t, int32(0), read.GetStatus())
	require.Equal(t, "world", string(read.GetDatabuf()))
	require.Equal(t, int64(0), read.GetBlockVersion())

	missing, err := impl.ReadBlock(ctx, &proto.ReadBlockRequest{BlockId: 61, ReadLen: 8})
	require.NoError(t, err)
	require.Equal(t, int32(404), missing.GetStatus())
}

func TestGetBlockInfo(t *testing.T) {
	impl, _ := newTestImpl(t, nil, nil)
	ctx := context.Background()

	resp, err := impl.WriteBlock(ctx, writeReq(70, 0, 0, "abcd", true))
	require.NoError(t, err)
	require.Equal(t, int32(0), resp.GetStatus())

	info, err := impl.GetBlockInfo(ctx, &proto.GetBlockInfoRequest{BlockId: 70})
	require.NoError(t, err)
	require.Equal(t, int32(0), info.GetStatus())
	require.Equal(t, int64(4), info.GetBlockSize())

	missing, err := impl.GetBlockInfo(ctx, &proto.GetBlockInfoRequest{BlockId: 71})
	require.NoError(t, err)
	require.Equal(t, int32(404), missing.GetStatus())
}

func TestRemoveObsoleteBlocks(t *testing.T) {
	impl, _ := newTestImpl(t, nil, nil)
	bm := impl.BlockManager()
	for _, id := range []int64{80, 81} {
		block, _ := bm.FindBlock(id, true)
		require.NotNil(t, block)
		block.DecRef()
	}
	impl.RemoveObsoleteBlocks([]int64{80, 81, 82})
	for _, id := range []int64{80, 81} {
		block, _ := bm.FindBlock(id, false)
		require.Nil(t, block)
	}
}
