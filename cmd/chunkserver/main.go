// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package main

import (
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Cloudxtreme/bfs-1/chunkserver"
	"github.com/Cloudxtreme/bfs-1/internal/config"
	. "github.com/Cloudxtreme/bfs-1/internal/zaplog"
	"github.com/Cloudxtreme/bfs-1/proto"
	"go.uber.org/zap"
)

var (
	flagConfig              = flag.String("config", "", "ini config file, section [chunkserver]")
	flagBlockStorePath      = flag.String("block_store_path", "", "comma separated store directories")
	flagNameserver          = flag.String("nameserver", "", "nameserver host")
	flagNameserverPort      = flag.String("nameserver_port", "", "nameserver port")
	flagChunkServerPort     = flag.String("chunkserver_port", "", "listen port")
	flagHeartbeatInterval   = flag.Int("heartbeat_interval", 0, "heartbeat interval, seconds")
	flagBlockreportInterval = flag.Int("blockreport_interval", 0, "block report interval, seconds")
	flagBlockreportSize     = flag.Int("blockreport_size", 0, "blocks per report batch")
	flagWriteBufSize        = flag.Int("write_buf_size", 0, "block write buffer bytes")
	flagMaxPendingBuffers   = flag.Int64("chunkserver_max_pending_buffers", 0, "flow control limit")
	flagWorkThreadNum       = flag.Int("chunkserver_work_thread_num", 0, "work pool threads")
	flagReadThreadNum       = flag.Int("chunkserver_read_thread_num", 0, "read pool threads")
	flagWriteThreadNum      = flag.Int("chunkserver_write_thread_num", 0, "write pool threads")
	flagFileCacheSize       = flag.Int("chunkserver_file_cache_size", 0, "open file cache entries")
)

func applyFlags(conf *config.ChunkServerConfig) {
	if *flagBlockStorePath != "" {
		conf.BlockStorePath = *flagBlockStorePath
	}
	if *flagNameserver != "" {
		conf.Nameserver = *flagNameserver
	}
	if *flagNameserverPort != "" {
		conf.NameserverPort = *flagNameserverPort
	}
	if *flagChunkServerPort != "" {
		conf.ChunkServerPort = *flagChunkServerPort
	}
	if *flagHeartbeatInterval > 0 {
		conf.HeartbeatInterval = *flagHeartbeatInterval
	}
	if *flagBlockreportInterval > 0 {
		conf.BlockreportInterval = *flagBlockreportInterval
	}
	if *flagBlockreportSize > 0 {
		conf.BlockreportSize = *flagBlockreportSize
	}
	if *flagWriteBufSize > 0 {
		conf.WriteBufSize = *flagWriteBufSize
	}
	if *flagMaxPendingBuffers > 0 {
		conf.MaxPendingBuffers = *flagMaxPendingBuffers
	}
	if *flagWorkThreadNum > 0 {
		conf.WorkThreadNum = *flagWorkThreadNum
	}
	if *flagReadThreadNum > 0 {
		conf.ReadThreadNum = *flagReadThreadNum
	}
	if *flagWriteThreadNum > 0 {
		conf.WriteThreadNum = *flagWriteThreadNum
	}
	if *flagFileCacheSize > 0 {
		conf.FileCacheSize = *flagFileCacheSize
	}
}

func main() {
	flag.Parse()
	conf := config.LoadConfig(*flagConfig)
	applyFlags(conf)

	nsConn, err := grpc.Dial(conf.NameserverAddr(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		ZapLogger.Fatal("Dial nameserver fail",
			zap.String("addr", conf.NameserverAddr()), zap.Error(err))
	}
	defer nsConn.Close()
	nameserver := proto.NewNameServerClient(nsConn)

	impl, err := chunkserver.NewChunkServerImpl(conf, nameserver, chunkserver.GrpcPeerDialer())
	if err != nil {
		ZapLogger.Fatal("ChunkServer init fail", zap.Error(err))
	}

	lis, err := net.Listen("tcp", ":"+conf.ChunkServerPort)
	if err != nil {
		ZapLogger.Fatal("Listen fail",
			zap.String("port", conf.ChunkServerPort), zap.Error(err))
	}
	grpcServer := grpc.NewServer()
	proto.RegisterChunkServerServer(grpcServer, impl)

	// Console and metrics on the next port.
	port, _ := strconv.Atoi(conf.ChunkServerPort)
	mux := http.NewServeMux()
	impl.RegisterWeb(mux)
	httpServer := &http.Server{
		Addr:    ":" + strconv.Itoa(port+1),
		Handler: mux,
	}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ZapLogger.Warn("Status page serve fail", zap.Error(err))
		}
	}()

	impl.Start()
	ZapLogger.Info("ChunkServer start",
		zap.String("port", conf.ChunkServerPort),
		zap.String("store", conf.BlockStorePath))

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		ZapLogger.Info("ChunkServer shutting down")
		grpcServer.GracefulStop()
	}()

	if err := grpcServer.Serve(lis); err != nil {
		ZapLogger.Warn("Serve fail", zap.Error(err))
	}
	httpServer.Close()
	impl.Stop()
}
