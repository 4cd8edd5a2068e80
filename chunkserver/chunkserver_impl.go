// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/atomic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/Cloudxtreme/bfs-1/internal/config"
	"github.com/Cloudxtreme/bfs-1/internal/threadpool"
	"github.com/Cloudxtreme/bfs-1/internal/util"
	. "github.com/Cloudxtreme/bfs-1/internal/zaplog"
	"github.com/Cloudxtreme/bfs-1/proto"
	"go.uber.org/zap"
)

const kUnknownChunkServerId = int32(-1)

const (
	heartbeatRpcTimeout = 15 * time.Second
	reportRpcTimeout    = 20 * time.Second
	writeNextRpcTimeout = 30 * time.Second
	pullReadRpcTimeout  = 15 * time.Second
)

// PeerDialer hands out a client stub for another data node. The
// returned func releases the connection.
type PeerDialer func(addr string) (proto.ChunkServerClient, func(), error)

// GrpcPeerDialer is the production dialer.
func GrpcPeerDialer() PeerDialer {
	return func(addr string) (proto.ChunkServerClient, func(), error) {
		conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, nil, err
		}
		return proto.NewChunkServerClient(conn), func() { conn.Close() }, nil
	}
}

// ChunkServerImpl is the data node: it serves block reads and
// pipelined replicated writes, pulls missing replicas from peers and
// reconciles its inventory with the nameserver.
type ChunkServerImpl struct {
	conf           *config.ChunkServerConfig
	dataServerAddr string

	blockManager   *BlockManager
	counterManager *CounterManager

	nameserver proto.NameServerClient
	dialPeer   PeerDialer

	workPool      *threadpool.Pool
	readPool      *threadpool.Pool
	writePool     *threadpool.Pool
	heartbeatPool *threadpool.Pool

	chunkserverId atomic.Int32

	// Block report cursor: last reported id, -1 restarts the sweep.
	lastReportBlockId int64
}

func NewChunkServerImpl(conf *config.ChunkServerConfig, nameserver proto.NameServerClient, dialPeer PeerDialer) (*ChunkServerImpl, error) {
	blockManager, err := NewBlockManager(conf)
	if err != nil {
		return nil, err
	}
	if err := blockManager.LoadStorage(); err != nil {
		return nil, err
	}
	s := &ChunkServerImpl{
		conf:              conf,
		dataServerAddr:    util.GetLocalHostName() + ":" + conf.ChunkServerPort,
		blockManager:      blockManager,
		counterManager:    NewCounterManager(),
		nameserver:        nameserver,
		dialPeer:          dialPeer,
		workPool:          threadpool.NewPool(conf.WorkThreadNum),
		readPool:          threadpool.NewPool(conf.ReadThreadNum),
		writePool:         threadpool.NewPool(conf.WriteThreadNum),
		heartbeatPool:     threadpool.NewPool(1),
		lastReportBlockId: -1,
	}
	s.chunkserverId.Store(kUnknownChunkServerId)
	return s, nil
}

// Start kicks the periodic loops: status log, block report, heartbeat.
func (s *ChunkServerImpl) Start() {
	s.workPool.AddTask(func() { s.LogStatus(true) })
	s.workPool.AddTask(s.SendBlockReport)
	s.heartbeatPool.AddTask(s.SendHeartbeat)
}

// Stop drains every pool, then tears down the registry.
func (s *ChunkServerImpl) Stop() {
	s.workPool.Stop(true)
	s.readPool.Stop(true)
	s.writePool.Stop(true)
	s.heartbeatPool.Stop(true)
	s.blockManager.Close()
	s.LogStatus(false)
}

func (s *ChunkServerImpl) BlockManager() *BlockManager {
	return s.blockManager
}

func (s *ChunkServerImpl) ChunkServerId() int32 {
	return s.chunkserverId.Load()
}

func (s *ChunkServerImpl) LogStatus(routine bool) {
	s.counterManager.GatherCounters()
	counters := s.counterManager.GetCounters()

	ZapLogger.Info("[Status]",
		zap.Int64("writing_blocks", gWritingBlocks.Load()),
		zap.Int64("blocks", gBlocks.Load()),
		zap.Int64("buffers", gBlockBuffers.Load()),
		zap.String("data", util.HumanReadableString(gDataSize.Load())),
		zap.Int64("find", counters.FindOps),
		zap.Int64("read", counters.ReadOps),
		zap.Int64("write", counters.WriteOps),
		zap.Int64("refused", counters.RefuseOps),
		zap.Float64("write_MBps", float64(counters.WriteBytes)/1024.0/1024),
		zap.Int64("rpc_delay_ms", counters.RpcDelay),
		zap.Int64("rpc_delay_all_ms", counters.DelayAll))
	publishMetrics(counters)
	if routine {
		s.workPool.DelayTask(time.Second, func() { s.LogStatus(true) })
	}
}

// SendHeartbeat reports liveness; a namespace mismatch in the answer
// is only logged, the block report loop owns the reconciliation.
func (s *ChunkServerImpl) SendHeartbeat() {
	request := &proto.HeartBeatRequest{
		ChunkserverId:    s.chunkserverId.Load(),
		ChunkserverAddr:  s.dataServerAddr,
		NamespaceVersion: s.blockManager.NamespaceVersion(),
		BlockNum:         gBlocks.Load(),
		DataSize:         gDataSize.Load(),
		Buffers:          gBlockBuffers.Load(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), heartbeatRpcTimeout)
	response, err := s.nameserver.HeartBeat(ctx, request)
	cancel()
	if err != nil {
		ZapLogger.Warn("Heart beat fail", zap.Error(err))
	} else if s.blockManager.NamespaceVersion() != response.GetNamespaceVersion() {
		ZapLogger.Info("Namespace version mismatch",
			zap.Int64("self", s.blockManager.NamespaceVersion()),
			zap.Int64("ns", response.GetNamespaceVersion()))
	}
	s.heartbeatPool.DelayTask(time.Duration(s.conf.HeartbeatInterval)*time.Second, s.SendHeartbeat)
}

// SendBlockReport sweeps the inventory in ascending id, one batch per
// cycle, and applies the nameserver's verdict: namespace adoption,
// id reassignment, obsolete deletions and new replica pulls.
//
// The cursor resets to -1 after a partial batch; blocks created below
// the cursor during a sweep surface on the next full sweep, which the
// report cadence tolerates.
func (s *ChunkServerImpl) SendBlockReport() {
	request := &proto.BlockReportRequest{
		ChunkserverId:    s.chunkserverId.Load(),
		ChunkserverAddr:  s.dataServerAddr,
		DiskQuota:        s.blockManager.DiskQuota(),
		NamespaceVersion: s.blockManager.NamespaceVersion(),
	}

	blocks, err := s.blockManager.ListBlocks(s.lastReportBlockId+1, s.conf.BlockreportSize)
	if err != nil {
		ZapLogger.Warn("List blocks for report fail", zap.Error(err))
		blocks = nil
	}
	for _, meta := range blocks {
		request.Blocks = append(request.Blocks, &proto.ReportBlockInfo{
			BlockId:   meta.BlockId,
			BlockSize: meta.BlockSize,
			Version:   meta.Version,
		})
	}
	if len(blocks) < s.conf.BlockreportSize {
		s.lastReportBlockId = -1
		request.IsComplete = true
	} else {
		request.IsComplete = false
		if len(blocks) > 0 {
			s.lastReportBlockId = blocks[len(blocks)-1].BlockId
		}
	}

	response, err := s.sendBlockReportRequest(request)
	if err != nil {
		ZapLogger.Warn("Block report fail", zap.Error(err))
	} else {
		s.handleBlockReportResponse(response)
	}
	s.workPool.DelayTask(time.Duration(s.conf.BlockreportInterval)*time.Second, s.SendBlockReport)
}

func (s *ChunkServerImpl) sendBlockReportRequest(request *proto.BlockReportRequest) (*proto.BlockReportResponse, error) {
	var response *proto.BlockReportResponse
	retryable := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), reportRpcTimeout)
		defer cancel()
		resp, err := s.nameserver.BlockReport(ctx, request)
		if err != nil {
			return err
		}
		response = resp
		return nil
	}
	notify := func(err error, t time.Duration) {
		ZapLogger.Warn("Block report retry", zap.Error(err), zap.Duration("after", t))
	}
	err := backoff.RetryNotify(retryable,
		backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), 2), notify)
	return response, err
}

func (s *ChunkServerImpl) handleBlockReportResponse(response *proto.BlockReportResponse) {
	if response.GetStatus() != 0 {
		// The nameserver disowned this node; running on is unsafe.
		ZapLogger.Fatal("Block report return",
			zap.Int32("status", response.GetStatus()))
	}
	newVersion := response.GetNamespaceVersion()
	if s.blockManager.NamespaceVersion() != newVersion {
		// NameSpace change, chunkserver considered empty.
		ZapLogger.Info("New namespace version",
			zap.Int64("version", newVersion),
			zap.Int32("chunkserver_id", response.GetChunkserverId()))
		if !s.blockManager.SetNamespaceVersion(newVersion) {
			ZapLogger.Fatal("Can not change namespace version")
		}
		s.chunkserverId.Store(response.GetChunkserverId())
	} else if s.chunkserverId.Load() == kUnknownChunkServerId &&
		response.GetChunkserverId() != kUnknownChunkServerId {
		// Chunkserver restart.
		s.chunkserverId.Store(response.GetChunkserverId())
		ZapLogger.Info("Reconnect to nameserver",
			zap.Int64("version", s.blockManager.NamespaceVersion()),
			zap.Int32("new_cs_id", s.chunkserverId.Load()))
	} else if response.GetChunkserverId() == kUnknownChunkServerId {
		// Namespace change, chunkserver has old blocks.
		ZapLogger.Info("Old chunkserver",
			zap.Int64("version", s.blockManager.NamespaceVersion()),
			zap.Int32("old_id", s.chunkserverId.Load()))
	} else if s.chunkserverId.Load() != response.GetChunkserverId() {
		// Nameserver restart, chunkserver id change.
		ZapLogger.Info("Chunkserver id change",
			zap.Int32("from", s.chunkserverId.Load()),
			zap.Int32("to", response.GetChunkserverId()))
		s.chunkserverId.Store(response.GetChunkserverId())
	}

	if len(response.GetObsoleteBlocks()) > 0 {
		obsolete := append([]int64(nil), response.GetObsoleteBlocks()...)
		s.writePool.AddTask(func() { s.RemoveObsoleteBlocks(obsolete) })
	}
	if len(response.GetNewReplicas()) > 0 {
		replicas := append([]*proto.ReplicaInfo(nil), response.GetNewReplicas()...)
		ZapLogger.Info("Block report done",
			zap.Int("replica_blocks", len(replicas)))
		s.writePool.AddTask(func() { s.PullNewBlocks(replicas) })
	}
}

// ReportFinish tells the nameserver about one just sealed block. Fire
// and forget with transport retries; version 0 marks the entry as a
// finish notice.
func (s *ChunkServerImpl) ReportFinish(block *Block) bool {
	request := &proto.BlockReportRequest{
		ChunkserverId:    s.chunkserverId.Load(),
		ChunkserverAddr:  s.dataServerAddr,
		NamespaceVersion: s.blockManager.NamespaceVersion(),
		IsComplete:       false,
		Blocks: []*proto.ReportBlockInfo{{
			BlockId:   block.Id(),
			BlockSize: block.Size(),
			Version:   0,
		}},
	}
	if _, err := s.sendBlockReportRequest(request); err != nil {
		ZapLogger.Warn("Report finish fail",
			zap.Int64("block", block.Id()), zap.Error(err))
		return false
	}
	ZapLogger.Info("Report finish to nameserver done",
		zap.Int64("block", block.Id()))
	return true
}

func (s *ChunkServerImpl) RemoveObsoleteBlocks(blocks []int64) {
	for _, blockId := range blocks {
		if !s.blockManager.RemoveBlock(blockId) {
			ZapLogger.Info("Remove block fail", zap.Int64("block", blockId))
		}
	}
}

// WriteBlock admits one packet of a pipelined write. Overloaded nodes
// answer 500 straight away; admitted packets go through the work pool
// for chain forwarding and the local sequenced append.
func (s *ChunkServerImpl) WriteBlock(ctx context.Context, request *proto.WriteBlockRequest) (*proto.WriteBlockResponse, error) {
	response := &proto.WriteBlockResponse{SequenceId: request.GetSequenceId()}

	// Flow control. The limit is a budget: a node already at it has
	// no room for this packet either.
	if gBlockBuffers.Load() >= s.conf.MaxPendingBuffers ||
		s.workPool.PendingNum() >= s.conf.MaxPendingBuffers {
		response.Status = 500
		ZapLogger.Warn("[WriteBlock] reject",
			zap.Int64("pending_buf", gBlockBuffers.Load()),
			zap.Int64("pending_req", s.workPool.PendingNum()),
			zap.Int64("block", request.GetBlockId()),
			zap.Int32("seq", request.GetPacketSeq()),
			zap.Int64("offset", request.GetOffset()),
			zap.Int("len", len(request.GetDatabuf())),
			zap.Int64("ts", request.GetSequenceId()))
		gRefuseOps.Inc()
		return response, nil
	}
	ZapLogger.Debug("[WriteBlock] dispatch",
		zap.Int64("block", request.GetBlockId()),
		zap.Int32("seq", request.GetPacketSeq()),
		zap.Int64("offset", request.GetOffset()),
		zap.Int("len", len(request.GetDatabuf())))
	response.Timestamp = append(response.Timestamp, util.GetMicros())

	done := make(chan struct{})
	if !s.workPool.AddTask(func() { s.dispatchWriteBlock(request, response, done) }) {
		response.Status = 500
		gRefuseOps.Inc()
		return response, nil
	}
	<-done
	return response, nil
}

// dispatchWriteBlock runs on the work pool: forward down the chain
// first if there is one, otherwise append locally.
func (s *ChunkServerImpl) dispatchWriteBlock(request *proto.WriteBlockRequest, response *proto.WriteBlockResponse, done chan struct{}) {
	response.Timestamp = append(response.Timestamp, util.GetMicros())
	ZapLogger.Info("[WriteBlock]",
		zap.Int64("block", request.GetBlockId()),
		zap.Int32("seq", request.GetPacketSeq()),
		zap.Int64("offset", request.GetOffset()),
		zap.Int("len", len(request.GetDatabuf())))

	if len(request.GetChunkservers()) > 0 {
		// New request for next chunkserver.
		nextRequest := &proto.WriteBlockRequest{
			SequenceId:   request.GetSequenceId(),
			BlockId:      request.GetBlockId(),
			Databuf:      request.GetDatabuf(),
			Offset:       request.GetOffset(),
			IsLast:       request.GetIsLast(),
			PacketSeq:    request.GetPacketSeq(),
			Chunkservers: append([]string(nil), request.GetChunkservers()[1:]...),
		}
		s.writeNext(request.GetChunkservers()[0], nextRequest, request, response, done)
	} else {
		s.localWriteBlock(request, response, done)
	}
}

// writeNext forwards the packet to the next replica without holding a
// pool thread for the round trip.
func (s *ChunkServerImpl) writeNext(nextServer string, nextRequest, request *proto.WriteBlockRequest, response *proto.WriteBlockResponse, done chan struct{}) {
	ZapLogger.Info("[WriteBlock] send to next",
		zap.Int64("block", request.GetBlockId()),
		zap.Int32("seq", request.GetPacketSeq()),
		zap.String("next", nextServer))
	go func() {
		stub, release, err := s.dialPeer(nextServer)
		if err != nil {
			s.writeNextCallback(nil, err, nextServer, nextRequest, request, response, done)
			return
		}
		defer release()
		ctx, cancel := context.WithTimeout(context.Background(), writeNextRpcTimeout)
		defer cancel()
		nextResponse, err := stub.WriteBlock(ctx, nextRequest)
		s.writeNextCallback(nextResponse, err, nextServer, nextRequest, request, response, done)
	}()
}

func (s *ChunkServerImpl) writeNextCallback(nextResponse *proto.WriteBlockResponse, err error, nextServer string, nextRequest, request *proto.WriteBlockRequest, response *proto.WriteBlockResponse, done chan struct{}) {
	// A full send buffer downstream is the one retryable failure.
	if err != nil && status.Code(err) == codes.ResourceExhausted {
		s.workPool.DelayTask(10*time.Millisecond, func() {
			s.writeNext(nextServer, nextRequest, request, response, done)
		})
		return
	}
	if err != nil || nextResponse.GetStatus() != 0 {
		ZapLogger.Warn("[WriteBlock] WriteNext fail",
			zap.String("next", nextServer),
			zap.Int64("block", request.GetBlockId()),
			zap.Int32("seq", request.GetPacketSeq()),
			zap.Int64("offset", request.GetOffset()),
			zap.Int32("status", nextResponse.GetStatus()),
			zap.Error(err))
		if nextResponse.GetStatus() != 0 {
			response.Status = nextResponse.GetStatus()
		} else {
			response.Status = int32(status.Code(err))
		}
		close(done)
		return
	}
	ZapLogger.Info("[WriteBlock] send to next done",
		zap.Int64("block", request.GetBlockId()),
		zap.Int32("seq", request.GetPacketSeq()))
	if !s.workPool.AddTask(func() { s.localWriteBlock(request, response, done) }) {
		// Shutting down; complete upstream so the handler can return.
		response.Status = 500
		close(done)
	}
}

// localWriteBlock applies the packet to the local replica and
// completes the rpc.
func (s *ChunkServerImpl) localWriteBlock(request *proto.WriteBlockRequest, response *proto.WriteBlockResponse, done chan struct{}) {
	defer close(done)
	blockId := request.GetBlockId()
	databuf := request.GetDatabuf()
	offset := request.GetOffset()
	packetSeq := request.GetPacketSeq()

	findStart := util.GetMicros()
	block, syncTime := s.blockManager.FindBlock(blockId, true)
	if block == nil {
		ZapLogger.Warn("[WriteBlock] block not found", zap.Int64("block", blockId))
		response.Status = 8404
		return
	}

	writeStart := util.GetMicros()
	if !block.Write(packetSeq, offset, databuf) {
		block.DecRef()
		response.Status = 812
		return
	}
	writeEnd := util.GetMicros()
	if request.GetIsLast() {
		block.SetSliceNum(packetSeq + 1)
		block.SetVersion(int64(packetSeq))
	}

	// If complete, close the block; only the closing call reports.
	reportStart := writeEnd
	if block.IsComplete() && s.blockManager.CloseBlock(block) {
		ZapLogger.Info("[WriteBlock] block finish",
			zap.Int64("block", blockId), zap.Int64("size", block.Size()))
		reportStart = util.GetMicros()
		s.ReportFinish(block)
	}

	timeEnd := util.GetMicros()
	recvTime := int64(0)
	dispatchTime := int64(0)
	if len(response.Timestamp) >= 2 {
		recvTime = (response.Timestamp[0] - request.GetSequenceId()) / 1000
		dispatchTime = (response.Timestamp[1] - response.Timestamp[0]) / 1000
	}
	ZapLogger.Info("[WriteBlock] done",
		zap.Int64("block", blockId),
		zap.Int32("seq", packetSeq),
		zap.Int64("offset", offset),
		zap.Int("len", len(databuf)),
		zap.Int64("recv_ms", recvTime),
		zap.Int64("dispatch_ms", dispatchTime),
		zap.Int64("find_ms", (writeStart-findStart-syncTime)/1000),
		zap.Int64("sync_ms", syncTime/1000),
		zap.Int64("write_ms", (writeEnd-writeStart)/1000),
		zap.Int64("close_ms", (reportStart-writeEnd)/1000),
		zap.Int64("report_ms", (timeEnd-reportStart)/1000))
	if len(response.Timestamp) >= 1 {
		gRpcDelay.Add(response.Timestamp[0] - request.GetSequenceId())
		gRpcDelayAll.Add(timeEnd - request.GetSequenceId())
		gRpcCount.Inc()
	}
	gWriteOps.Inc()
	block.DecRef()
}

// ReadBlock serves a slice of a block, optionally with its version.
func (s *ChunkServerImpl) ReadBlock(ctx context.Context, request *proto.ReadBlockRequest) (*proto.ReadBlockResponse, error) {
	response := &proto.ReadBlockResponse{SequenceId: request.GetSequenceId()}
	response.Timestamp = append(response.Timestamp, util.GetMicros())
	done := make(chan struct{})
	if !s.readPool.AddTask(func() {
		defer close(done)
		s.doReadBlock(request, response)
	}) {
		response.Status = 882
		return response, nil
	}
	<-done
	return response, nil
}

func (s *ChunkServerImpl) doReadBlock(request *proto.ReadBlockRequest, response *proto.ReadBlockResponse) {
	blockId := request.GetBlockId()
	offset := request.GetOffset()
	readLen := request.GetReadLen()

	findStart := util.GetMicros()
	block, _ := s.blockManager.FindBlock(blockId, false)
	if block == nil {
		response.Status = 404
		ZapLogger.Warn("ReadBlock not found",
			zap.Int64("block", blockId),
			zap.Int64("offset", offset),
			zap.Int32("len", readLen))
		return
	}
	defer block.DecRef()

	readStart := util.GetMicros()
	data, err := block.Read(readLen, offset)
	readEnd := util.GetMicros()
	if err != nil {
		response.Status = 882
		ZapLogger.Warn("ReadBlock fail",
			zap.Int64("block", blockId),
			zap.Int64("offset", offset),
			zap.Int32("len", readLen),
			zap.Error(err))
		return
	}
	response.Databuf = data
	if request.GetRequireBlockVersion() {
		response.BlockVersion = block.GetVersion()
	}
	ZapLogger.Info("ReadBlock",
		zap.Int64("block", blockId),
		zap.Int64("offset", offset),
		zap.Int32("len", readLen),
		zap.Int("return", len(data)),
		zap.Int64("find_ms", (readStart-findStart)/1000),
		zap.Int64("read_ms", (readEnd-readStart)/1000))
	gReadOps.Inc()
}

// GetBlockInfo answers the sealed size of a block.
func (s *ChunkServerImpl) GetBlockInfo(ctx context.Context, request *proto.GetBlockInfoRequest) (*proto.GetBlockInfoResponse, error) {
	response := &proto.GetBlockInfoResponse{SequenceId: request.GetSequenceId()}
	response.Timestamp = append(response.Timestamp, util.GetMicros())
	done := make(chan struct{})
	if !s.readPool.AddTask(func() {
		defer close(done)
		blockId := request.GetBlockId()
		block, _ := s.blockManager.FindBlock(blockId, false)
		if block == nil {
			response.Status = 404
			ZapLogger.Warn("GetBlockInfo not found", zap.Int64("block", blockId))
			return
		}
		response.BlockSize = block.GetMeta().BlockSize
		ZapLogger.Info("GetBlockInfo",
			zap.Int64("block", blockId),
			zap.Int64("size", response.BlockSize))
		block.DecRef()
	}) {
		response.Status = 404
		return response, nil
	}
	<-done
	return response, nil
}
