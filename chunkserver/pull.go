// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"

	. "github.com/Cloudxtreme/bfs-1/internal/zaplog"
	"github.com/Cloudxtreme/bfs-1/proto"
	"go.uber.org/zap"
)

const pullReadLen = 256 * 1024

// PullNewBlocks fetches every block the nameserver assigned to this
// node from its peer replicas, then reports the whole batch back,
// successes and failures alike; the nameserver decides what to do
// with the failures.
func (s *ChunkServerImpl) PullNewBlocks(newReplicas []*proto.ReplicaInfo) {
	reportRequest := &proto.PullBlockReportRequest{
		SequenceId:    0,
		ChunkserverId: s.chunkserverId.Load(),
	}
	for _, replica := range newReplicas {
		blockId := replica.GetBlockId()
		block, _ := s.blockManager.FindBlock(blockId, true)
		if block == nil {
			ZapLogger.Warn("Can't create block for pull", zap.Int64("block", blockId))
			continue
		}
		ZapLogger.Info("Start pull",
			zap.Int64("block", blockId),
			zap.Strings("peers", replica.GetChunkserverAddress()))
		success := s.pullBlock(block, replica.GetChunkserverAddress())
		block.DecRef()
		if !success {
			s.blockManager.RemoveBlock(blockId)
		}
		reportRequest.Blocks = append(reportRequest.Blocks, blockId)
	}

	s.sendPullBlockReport(reportRequest)
}

// pullBlock streams one block into the local replica. seq counts the
// pull's own stream, not any peer state, so switching peers mid
// stream is invisible to the destination block as long as offset is
// right. Peer failures rotate through the list; coming back around
// to the starting peer ends the pull as failed.
func (s *ChunkServerImpl) pullBlock(block *Block, addrs []string) bool {
	blockId := block.Id()

	var stub proto.ChunkServerClient
	var release func()
	initIndex := 0
	for ; initIndex < len(addrs); initIndex++ {
		st, rel, err := s.dialPeer(addrs[initIndex])
		if err == nil {
			stub, release = st, rel
			break
		}
		ZapLogger.Warn("Dial peer fail",
			zap.String("peer", addrs[initIndex]), zap.Error(err))
	}
	if stub == nil {
		ZapLogger.Warn("Can't connect to any chunkservers for pull block",
			zap.Int64("block", blockId))
		return false
	}
	defer func() {
		if release != nil {
			release()
		}
	}()

	seq := int64(-1)
	offset := int64(0)
	preIndex := initIndex
	for {
		seq++
		request := &proto.ReadBlockRequest{
			SequenceId:          seq,
			BlockId:             blockId,
			Offset:              offset,
			ReadLen:             pullReadLen,
			RequireBlockVersion: true,
		}
		ctx, cancel := context.WithTimeout(context.Background(), pullReadRpcTimeout)
		response, err := stub.ReadBlock(ctx, request)
		cancel()
		if err != nil || response.GetStatus() != 0 {
			// Try another chunkserver from the same offset; the
			// stream seq stays put.
			seq--
			if release != nil {
				release()
				release = nil
			}
			stub = nil
			for stub == nil {
				preIndex = (preIndex + 1) % len(addrs)
				if preIndex == initIndex {
					return false
				}
				ZapLogger.Info("Change src chunkserver for pull",
					zap.String("peer", addrs[preIndex]),
					zap.Int64("block", blockId))
				st, rel, derr := s.dialPeer(addrs[preIndex])
				if derr != nil {
					ZapLogger.Warn("Dial peer fail",
						zap.String("peer", addrs[preIndex]), zap.Error(derr))
					continue
				}
				stub, release = st, rel
			}
			continue
		}
		databuf := response.GetDatabuf()
		if len(databuf) > 0 {
			if !block.Write(int32(seq), offset, databuf) {
				return false
			}
		} else {
			// Empty reply marks end of block.
			block.SetSliceNum(int32(seq))
			block.SetVersion(response.GetBlockVersion())
		}
		if block.IsComplete() && s.blockManager.CloseBlock(block) {
			ZapLogger.Info("Pull block finish", zap.Int64("block", blockId))
			return true
		}
		offset += int64(len(databuf))
	}
}

func (s *ChunkServerImpl) sendPullBlockReport(request *proto.PullBlockReportRequest) {
	retryable := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), pullReadRpcTimeout)
		defer cancel()
		_, err := s.nameserver.PullBlockReport(ctx, request)
		return err
	}
	notify := func(err error, t time.Duration) {
		ZapLogger.Warn("Pull block report retry", zap.Error(err), zap.Duration("after", t))
	}
	err := backoff.RetryNotify(retryable,
		backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), 2), notify)
	if err != nil {
		ZapLogger.Warn("Report pull finish fail",
			zap.Int32("chunkserver_id", s.chunkserverId.Load()), zap.Error(err))
		return
	}
	ZapLogger.Info("Report pull finish done",
		zap.Int("blocks", len(request.GetBlocks())))
}
