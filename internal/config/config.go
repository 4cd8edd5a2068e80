// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package config

import (
	"gopkg.in/ini.v1"

	. "github.com/Cloudxtreme/bfs-1/internal/zaplog"
	"go.uber.org/zap"
)

// ChunkServerConfig carries every runtime knob of the data node.
// Values come from compiled-in defaults, then the [chunkserver]
// section of an ini file, then command line flags (applied by main).
type ChunkServerConfig struct {
	// Comma separated list of store directories.
	BlockStorePath string

	Nameserver      string
	NameserverPort  string
	ChunkServerPort string

	// Intervals in seconds; BlockreportSize is blocks per report batch.
	HeartbeatInterval   int
	BlockreportInterval int
	BlockreportSize     int

	WriteBufSize      int
	MaxPendingBuffers int64

	WorkThreadNum  int
	ReadThreadNum  int
	WriteThreadNum int

	FileCacheSize int
}

func DefaultConfig() *ChunkServerConfig {
	return &ChunkServerConfig{
		BlockStorePath:      "./data",
		Nameserver:          "127.0.0.1",
		NameserverPort:      "8828",
		ChunkServerPort:     "8825",
		HeartbeatInterval:   5,
		BlockreportInterval: 10,
		BlockreportSize:     2000,
		WriteBufSize:        256 * 1024,
		MaxPendingBuffers:   10240,
		WorkThreadNum:       10,
		ReadThreadNum:       10,
		WriteThreadNum:      10,
		FileCacheSize:       1000,
	}
}

// LoadConfig overlays the ini file at path onto the defaults. A missing
// file is not an error: flags may carry the whole configuration.
func LoadConfig(path string) *ChunkServerConfig {
	conf := DefaultConfig()
	if path == "" {
		return conf
	}
	f, err := ini.Load(path)
	if err != nil {
		ZapLogger.Warn("Config file not loaded, using defaults",
			zap.String("path", path), zap.Error(err))
		return conf
	}
	sec := f.Section("chunkserver")
	conf.BlockStorePath = sec.Key("block_store_path").MustString(conf.BlockStorePath)
	conf.Nameserver = sec.Key("nameserver").MustString(conf.Nameserver)
	conf.NameserverPort = sec.Key("nameserver_port").MustString(conf.NameserverPort)
	conf.ChunkServerPort = sec.Key("chunkserver_port").MustString(conf.ChunkServerPort)
	conf.HeartbeatInterval = sec.Key("heartbeat_interval").MustInt(conf.HeartbeatInterval)
	conf.BlockreportInterval = sec.Key("blockreport_interval").MustInt(conf.BlockreportInterval)
	conf.BlockreportSize = sec.Key("blockreport_size").MustInt(conf.BlockreportSize)
	conf.WriteBufSize = sec.Key("write_buf_size").MustInt(conf.WriteBufSize)
	conf.MaxPendingBuffers = sec.Key("chunkserver_max_pending_buffers").MustInt64(conf.MaxPendingBuffers)
	conf.WorkThreadNum = sec.Key("chunkserver_work_thread_num").MustInt(conf.WorkThreadNum)
	conf.ReadThreadNum = sec.Key("chunkserver_read_thread_num").MustInt(conf.ReadThreadNum)
	conf.WriteThreadNum = sec.Key("chunkserver_write_thread_num").MustInt(conf.WriteThreadNum)
	conf.FileCacheSize = sec.Key("chunkserver_file_cache_size").MustInt(conf.FileCacheSize)
	return conf
}

func (c *ChunkServerConfig) NameserverAddr() string {
	return c.Nameserver + ":" + c.NameserverPort
}
