package main

import (
	"github.com/KennethL27/personal-cloud-service/internal/cli"
	"github.com/KennethL27/personal-cloud-service/internal/config"
	"github.com/KennethL27/personal-cloud-service/internal/drives"
	"github.com/spf13/cobra"
)

var drivesCmd = &cobra.Command{
	Use:   "drives",
	Short: "Show the external drive root and mounted volumes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadWithOptions(config.LoadOptions{})
		if err != nil {
			return err
		}

		probe := drives.SystemProbe()
		locator, err := drives.NewLocator(drives.LocatorOptions{
			MountBase: cfg.DriveMountBase,
			Index:     cfg.DriveIndex,
			Probe:     probe,
		})
		if err != nil {
			return err
		}
		return cli.RunDrivesCommand(cmd.Context(), locator, probe, cmd.OutOrStdout())
	},
}
