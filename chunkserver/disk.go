// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/Cloudxtreme/bfs-1/internal/util"
	. "github.com/Cloudxtreme/bfs-1/internal/zaplog"
	"go.uber.org/zap"
)

// DiskPlacer pins every block id to one of the configured store paths.
// The list is normalized once at startup, so placement is a pure
// function of the id and survives restarts.
type DiskPlacer struct {
	storePaths []string
	diskQuota  int64
}

// NewDiskPlacer parses the comma separated store path list, drops the
// paths whose statfs fails and de-duplicates the rest. At least one
// usable path is required.
func NewDiskPlacer(storePath string) (*DiskPlacer, error) {
	var paths []string
	var diskQuota int64
	for _, p := range strings.Split(storePath, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasSuffix(p, "/") {
			p += "/"
		}
		var fs unix.Statfs_t
		if err := unix.Statfs(p, &fs); err != nil {
			ZapLogger.Warn("Stat store_path fail, ignore it",
				zap.String("path", p), zap.Error(err))
			continue
		}
		diskSize := int64(fs.Blocks) * fs.Bsize
		userQuota := int64(fs.Bavail) * fs.Bsize
		superQuota := int64(fs.Bfree) * fs.Bsize
		ZapLogger.Info("Use store path",
			zap.String("path", p),
			zap.Int64("block", fs.Bsize),
			zap.String("disk", util.HumanReadableString(diskSize)),
			zap.String("available", util.HumanReadableString(superQuota)),
			zap.String("quota", util.HumanReadableString(userQuota)))
		diskQuota += userQuota
		paths = append(paths, p)
	}
	sort.Strings(paths)
	dedup := paths[:0]
	for i, p := range paths {
		if i == 0 || p != paths[i-1] {
			dedup = append(dedup, p)
		}
	}
	paths = dedup
	if len(paths) == 0 {
		return nil, fmt.Errorf("no usable store path in %q", storePath)
	}
	ZapLogger.Info("Store path used", zap.Int("count", len(paths)))
	return &DiskPlacer{storePaths: paths, diskQuota: diskQuota}, nil
}

// GetStorePath places a block id onto its store path.
func (d *DiskPlacer) GetStorePath(blockId int64) string {
	return d.storePaths[int(uint64(blockId)%uint64(len(d.storePaths)))]
}

// MetaDir is where the meta store lives, always under the first path.
func (d *DiskPlacer) MetaDir() string {
	return d.storePaths[0] + "meta/"
}

// DiskQuota is the startup sum of available bytes; the block manager
// adds the on-disk data size after recovery.
func (d *DiskPlacer) DiskQuota() int64 {
	return d.diskQuota
}

func (d *DiskPlacer) StorePaths() []string {
	return d.storePaths
}
