package drives

import (
	"context"

	"github.com/shirou/gopsutil/v4/disk"
)

// Probe reports mounted partitions and their usage.
type Probe interface {
	Partitions(ctx context.Context) ([]disk.PartitionStat, error)
	Usage(ctx context.Context, mountpoint string) (*disk.UsageStat, error)
}

type systemProbe struct{}

func SystemProbe() Probe {
	return systemProbe{}
}

func (systemProbe) Partitions(ctx context.Context) ([]disk.PartitionStat, error) {
	return disk.PartitionsWithContext(ctx, false)
}

func (systemProbe) Usage(ctx context.Context, mountpoint string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, mountpoint)
}
