package drives

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KennethL27/personal-cloud-service/internal/storage"
	"github.com/shirou/gopsutil/v4/disk"
	"golang.org/x/sync/errgroup"
)

const (
	excludedFSType   = "apfs"
	usageConcurrency = 8
)

type MountedDrive struct {
	Device      string `json:"device"`
	Mountpoint  string `json:"mountpoint"`
	Fstype      string `json:"fstype"`
	Opts        string `json:"opts"`
	Total       string `json:"total"`
	Used        string `json:"used"`
	Free        string `json:"free"`
	PercentUsed string `json:"percent_used"`
}

// ListMounted returns every mounted volume whose usage could be read.
// APFS system volumes and partitions that fail the usage probe are skipped.
func ListMounted(ctx context.Context, probe Probe) ([]MountedDrive, error) {
	partitions, err := probe.Partitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}

	results := make([]*MountedDrive, len(partitions))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(usageConcurrency)
	for index, partition := range partitions {
		if strings.EqualFold(partition.Fstype, excludedFSType) {
			continue
		}
		index, partition := index, partition
		group.Go(func() error {
			drive, err := describePartition(groupCtx, probe, partition)
			if err != nil {
				slog.Debug("skip partition", "mountpoint", partition.Mountpoint, "error", err)
				return nil
			}
			results[index] = &drive
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	drives := make([]MountedDrive, 0, len(results))
	for _, drive := range results {
		if drive != nil {
			drives = append(drives, *drive)
		}
	}
	return drives, nil
}

func describePartition(ctx context.Context, probe Probe, partition disk.PartitionStat) (MountedDrive, error) {
	usage, err := probe.Usage(ctx, partition.Mountpoint)
	if err != nil {
		return MountedDrive{}, err
	}
	if usage == nil {
		return MountedDrive{}, fmt.Errorf("no usage reported for %s", partition.Mountpoint)
	}

	total, err := storage.FormatBytes(float64(usage.Total))
	if err != nil {
		return MountedDrive{}, err
	}
	used, err := storage.FormatBytes(float64(usage.Used))
	if err != nil {
		return MountedDrive{}, err
	}
	free, err := storage.FormatBytes(float64(usage.Free))
	if err != nil {
		return MountedDrive{}, err
	}

	return MountedDrive{
		Device:      partition.Device,
		Mountpoint:  partition.Mountpoint,
		Fstype:      partition.Fstype,
		Opts:        strings.Join(partition.Opts, ","),
		Total:       total,
		Used:        used,
		Free:        free,
		PercentUsed: fmt.Sprintf("%.1f%%", usage.UsedPercent),
	}, nil
}
