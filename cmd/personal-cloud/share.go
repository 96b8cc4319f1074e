package main

import (
	"github.com/KennethL27/personal-cloud-service/internal/cli"
	"github.com/KennethL27/personal-cloud-service/internal/config"
	"github.com/spf13/cobra"
)

var shareFlags struct {
	email string
	name  string
	path  string
}

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Grant guest access to a folder without going through the API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadWithOptions(config.LoadOptions{})
		if err != nil {
			return err
		}
		return cli.RunShareCommand(cfg.DBPath, shareFlags.email, shareFlags.name, shareFlags.path, cmd.OutOrStdout())
	},
}

func init() {
	shareCmd.Flags().StringVar(&shareFlags.email, "email", "", "guest email address")
	shareCmd.Flags().StringVar(&shareFlags.name, "name", "", "guest display name")
	shareCmd.Flags().StringVar(&shareFlags.path, "path", "", "root folder the guest may access")
	_ = shareCmd.MarkFlagRequired("email")
	_ = shareCmd.MarkFlagRequired("path")
}
