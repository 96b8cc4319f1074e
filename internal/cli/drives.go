package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/KennethL27/personal-cloud-service/internal/drives"
)

type DriveLocator interface {
	Locate(ctx context.Context) (string, bool)
}

// RunDrivesCommand prints the located external drive root followed by the
// mounted volumes and their usage.
func RunDrivesCommand(ctx context.Context, locator DriveLocator, probe drives.Probe, out io.Writer) error {
	if root, ok := locator.Locate(ctx); ok {
		fmt.Fprintf(out, "External drive: %s\n", root)
	} else {
		fmt.Fprintln(out, "External drive: none")
	}

	mounted, err := drives.ListMounted(ctx, probe)
	if err != nil {
		return fmt.Errorf("list mounted drives: %w", err)
	}
	if len(mounted) == 0 {
		fmt.Fprintln(out, "No mounted drives found.")
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "\nDEVICE\tMOUNTPOINT\tFSTYPE\tTOTAL\tUSED\tFREE\tUSE%")
	for _, drive := range mounted {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			drive.Device, drive.Mountpoint, orDash(drive.Fstype),
			drive.Total, drive.Used, drive.Free, drive.PercentUsed)
	}
	return writer.Flush()
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
