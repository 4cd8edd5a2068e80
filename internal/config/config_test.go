// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	conf := LoadConfig("")
	require.Equal(t, DefaultConfig(), conf)

	conf = LoadConfig(t.TempDir() + "/absent.ini")
	require.Equal(t, DefaultConfig(), conf)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := t.TempDir() + "/bfs.ini"
	content := `[chunkserver]
block_store_path = /data1,/data2
nameserver = ns.example.com
nameserver_port = 8100
chunkserver_port = 8200
heartbeat_interval = 3
blockreport_interval = 30
blockreport_size = 500
write_buf_size = 1048576
chunkserver_max_pending_buffers = 2048
chunkserver_work_thread_num = 8
chunkserver_read_thread_num = 6
chunkserver_write_thread_num = 4
chunkserver_file_cache_size = 100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	conf := LoadConfig(path)
	require.Equal(t, "/data1,/data2", conf.BlockStorePath)
	require.Equal(t, "ns.example.com", conf.Nameserver)
	require.Equal(t, "ns.example.com:8100", conf.NameserverAddr())
	require.Equal(t, "8200", conf.ChunkServerPort)
	require.Equal(t, 3, conf.HeartbeatInterval)
	require.Equal(t, 30, conf.BlockreportInterval)
	require.Equal(t, 500, conf.BlockreportSize)
	require.Equal(t, 1048576, conf.WriteBufSize)
	require.Equal(t, int64(2048), conf.MaxPendingBuffers)
	require.Equal(t, 8, conf.WorkThreadNum)
	require.Equal(t, 6, conf.ReadThreadNum)
	require.Equal(t, 4, conf.WriteThreadNum)
	require.Equal(t, 100, conf.FileCacheSize)
}
