// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package util

import (
	"fmt"
	"os"
	"time"
)

// GetMicros is the process-wide clock for rpc latency accounting.
// Sequence ids on the wire are client-side micros from the same epoch.
func GetMicros() int64 {
	return time.Now().UnixMicro()
}

func GetLocalHostName() string {
	host, err := os.Hostname()
	if err != nil {
		return "127.0.0.1"
	}
	return host
}

// HumanReadableString renders a byte count like "1.50 GB".
func HumanReadableString(size int64) string {
	const (
		kKiB = int64(1024)
		kMiB = 1024 * kKiB
		kGiB = 1024 * kMiB
		kTiB = 1024 * kGiB
		kPiB = 1024 * kTiB
	)
	neg := ""
	if size < 0 {
		neg = "-"
		size = -size
	}
	switch {
	case size >= kPiB:
		return fmt.Sprintf("%s%.2f PB", neg, float64(size)/float64(kPiB))
	case size >= kTiB:
		return fmt.Sprintf("%s%.2f TB", neg, float64(size)/float64(kTiB))
	case size >= kGiB:
		return fmt.Sprintf("%s%.2f GB", neg, float64(size)/float64(kGiB))
	case size >= kMiB:
		return fmt.Sprintf("%s%.2f MB", neg, float64(size)/float64(kMiB))
	case size >= kKiB:
		return fmt.Sprintf("%s%.2f KB", neg, float64(size)/float64(kKiB))
	}
	return fmt.Sprintf("%s%d B", neg, size)
}
