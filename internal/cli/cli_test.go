package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KennethL27/personal-cloud-service/internal/db"
	"github.com/KennethL27/personal-cloud-service/internal/services"
	"github.com/shirou/gopsutil/v4/disk"
)

func TestRunShareCommandCreatesGuest(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli-share.db")

	var out bytes.Buffer
	if err := RunShareCommand(dbPath, " Guest@Example.com ", "Guest", "/media/pi/usb/guest", &out); err != nil {
		t.Fatalf("RunShareCommand returned error: %v", err)
	}
	if !strings.Contains(out.String(), "guest@example.com") {
		t.Fatalf("expected guest email in output, got %q", out.String())
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer db.Close(database)

	repos := db.NewRepositories(database)
	directory := services.NewDirectoryService(repos.Users, repos.UserSettings)
	root, err := directory.ResolveRoot("guest@example.com")
	if err != nil {
		t.Fatalf("resolve guest root: %v", err)
	}
	if root != "/media/pi/usb/guest" {
		t.Fatalf("expected stored root, got %q", root)
	}
}

func TestRunShareCommandValidatesInput(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "cli-share-invalid.db")
	tests := []struct {
		name  string
		email string
		path  string
	}{
		{name: "missing email", email: "", path: "/media/pi/usb"},
		{name: "malformed email", email: "not-an-email", path: "/media/pi/usb"},
		{name: "missing path", email: "guest@example.com", path: " "},
	}

	for _, test := range tests {
		if err := RunShareCommand(dbPath, test.email, "Guest", test.path, &bytes.Buffer{}); err == nil {
			t.Fatalf("%s: expected error", test.name)
		}
	}
}

type fixedLocator struct {
	root string
}

func (locator fixedLocator) Locate(context.Context) (string, bool) {
	return locator.root, locator.root != ""
}

type tableProbe struct {
	partitions []disk.PartitionStat
	usage      map[string]*disk.UsageStat
}

func (probe tableProbe) Partitions(context.Context) ([]disk.PartitionStat, error) {
	return probe.partitions, nil
}

func (probe tableProbe) Usage(_ context.Context, mountpoint string) (*disk.UsageStat, error) {
	if usage, ok := probe.usage[mountpoint]; ok {
		return usage, nil
	}
	return nil, errors.New("unreadable")
}

func TestRunDrivesCommandPrintsRootAndVolumes(t *testing.T) {
	t.Parallel()

	probe := tableProbe{
		partitions: []disk.PartitionStat{
			{Device: "/dev/sda1", Mountpoint: "/media/pi/usb", Fstype: "exfat"},
			{Device: "/dev/disk1s1", Mountpoint: "/", Fstype: "apfs"},
		},
		usage: map[string]*disk.UsageStat{
			"/media/pi/usb": {Total: 1024, Used: 256, Free: 768, UsedPercent: 25},
			"/":             {Total: 1024, Used: 256, Free: 768, UsedPercent: 25},
		},
	}

	var out bytes.Buffer
	if err := RunDrivesCommand(context.Background(), fixedLocator{root: "/media/pi/usb"}, probe, &out); err != nil {
		t.Fatalf("RunDrivesCommand returned error: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "External drive: /media/pi/usb") {
		t.Fatalf("expected external drive line, got %q", output)
	}
	if !strings.Contains(output, "/dev/sda1") || !strings.Contains(output, "25.0%") {
		t.Fatalf("expected exfat volume row, got %q", output)
	}
	if strings.Contains(output, "/dev/disk1s1") {
		t.Fatalf("expected apfs volume to be skipped, got %q", output)
	}
}

func TestRunDrivesCommandWithoutDrives(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := RunDrivesCommand(context.Background(), fixedLocator{}, tableProbe{}, &out); err != nil {
		t.Fatalf("RunDrivesCommand returned error: %v", err)
	}
	if !strings.Contains(out.String(), "External drive: none") || !strings.Contains(out.String(), "No mounted drives found.") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
