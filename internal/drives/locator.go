package drives

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/KennethL27/personal-cloud-service/internal/storage"
	"github.com/spf13/afero"
)

var ErrUnsupportedPlatform = errors.New("unsupported platform for drive discovery")

var defaultMountBases = map[string]string{
	"darwin": "/Volumes",
	"linux":  "/media/pi",
}

type LocatorOptions struct {
	// GOOS defaults to runtime.GOOS.
	GOOS string
	// MountBase overrides the platform mount parent on darwin and linux.
	MountBase string
	// Index selects which mounted entry is the external drive.
	Index int
	Fs    afero.Fs
	Probe Probe
}

// Locator finds the designated external drive root.
type Locator struct {
	goos      string
	mountBase string
	index     int
	fs        afero.Fs
	probe     Probe
}

func NewLocator(opts LocatorOptions) (*Locator, error) {
	goos := strings.TrimSpace(opts.GOOS)
	if goos == "" {
		goos = runtime.GOOS
	}

	locator := &Locator{
		goos:  goos,
		index: opts.Index,
		fs:    opts.Fs,
		probe: opts.Probe,
	}
	if locator.index < 0 {
		return nil, fmt.Errorf("drive index must not be negative, got %d", locator.index)
	}
	if locator.fs == nil {
		locator.fs = afero.NewOsFs()
	}
	if locator.probe == nil {
		locator.probe = SystemProbe()
	}

	switch goos {
	case "darwin", "linux":
		locator.mountBase = defaultMountBases[goos]
		if base := strings.TrimSpace(opts.MountBase); base != "" {
			locator.mountBase = base
		}
	case "windows":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
	return locator, nil
}

// Locate returns the external drive root, or false when none qualifies.
func (locator *Locator) Locate(ctx context.Context) (string, bool) {
	if locator.goos == "windows" {
		return locator.locateRemovable(ctx)
	}
	return locator.locateUnderMountBase()
}

func (locator *Locator) locateUnderMountBase() (string, bool) {
	entries, err := afero.ReadDir(locator.fs, locator.mountBase)
	if err != nil {
		slog.Debug("mount base unavailable", "path", locator.mountBase, "error", err)
		return "", false
	}

	candidates := make([]string, 0, len(entries))
	for _, entry := range entries {
		candidate := filepath.Join(locator.mountBase, entry.Name())
		if storage.IsHidden(candidate) {
			continue
		}
		// Volumes may be symlinks, so follow them.
		info, err := locator.fs.Stat(candidate)
		if err != nil || !info.IsDir() {
			continue
		}
		candidates = append(candidates, candidate)
	}
	sort.Strings(candidates)

	if locator.index >= len(candidates) {
		return "", false
	}
	return candidates[locator.index], true
}

func (locator *Locator) locateRemovable(ctx context.Context) (string, bool) {
	partitions, err := locator.probe.Partitions(ctx)
	if err != nil {
		slog.Debug("partition enumeration unavailable", "error", err)
		return "", false
	}
	for _, partition := range partitions {
		if isRemovable(partition.Mountpoint, partition.Opts) {
			return partition.Mountpoint, true
		}
	}
	return "", false
}

func hasRemovableOpt(opts []string) bool {
	for _, opt := range opts {
		if strings.Contains(strings.ToLower(opt), "removable") {
			return true
		}
	}
	return false
}
