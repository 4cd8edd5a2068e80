// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Cloudxtreme/bfs-1/internal/util"
)

var (
	promBlocks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bfs_chunkserver_blocks",
		Help: "Number of blocks in the registry.",
	})
	promDataSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bfs_chunkserver_data_size_bytes",
		Help: "Bytes stored on disk.",
	})
	promBuffers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bfs_chunkserver_block_buffers",
		Help: "Write buffers pending in sliding windows.",
	})
	promWriteOps = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bfs_chunkserver_write_qps",
		Help: "Write operations per second, last interval.",
	})
	promReadOps = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bfs_chunkserver_read_qps",
		Help: "Read operations per second, last interval.",
	})
	promWriteBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bfs_chunkserver_write_bytes_per_sec",
		Help: "Write throughput, last interval.",
	})
	promRefuseOps = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bfs_chunkserver_refused_qps",
		Help: "Writes refused by flow control per second, last interval.",
	})
)

func publishMetrics(c Counters) {
	promBlocks.Set(float64(gBlocks.Load()))
	promDataSize.Set(float64(gDataSize.Load()))
	promBuffers.Set(float64(gBlockBuffers.Load()))
	promWriteOps.Set(float64(c.WriteOps))
	promReadOps.Set(float64(c.ReadOps))
	promWriteBytes.Set(float64(c.WriteBytes))
	promRefuseOps.Set(float64(c.RefuseOps))
}

// WebService renders the console table, the same numbers the status
// log carries. /metrics next to it serves the prometheus view.
func (s *ChunkServerImpl) WebService(w http.ResponseWriter, r *http.Request) {
	counters := s.counterManager.GetCounters()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><head><title>BFS console</title></head><body>")
	fmt.Fprint(w, "<h1>ChunkServer</h1>")
	fmt.Fprint(w, "<table border=1><tr><td>Block number</td><td>Data size</td>"+
		"<td>Write(QPS)</td><td>Write(Speed)</td><td>Read(QPS)</td>"+
		"<td>Buffers(new/delete)</td></tr>")
	fmt.Fprintf(w, "<tr><td>%d</td><td>%s</td><td>%d</td><td>%s/S</td><td>%d</td><td>%d(%d/%d)</td></tr>",
		gBlocks.Load(),
		util.HumanReadableString(gDataSize.Load()),
		counters.WriteOps,
		util.HumanReadableString(counters.WriteBytes),
		counters.ReadOps,
		gBlockBuffers.Load(), counters.BuffersNew, counters.BuffersDelete)
	fmt.Fprint(w, "</table></body></html>")
}

// RegisterWeb wires the console and the metrics endpoint onto mux.
func (s *ChunkServerImpl) RegisterWeb(mux *http.ServeMux) {
	mux.HandleFunc("/", s.WebService)
	mux.Handle("/metrics", promhttp.Handler())
}
