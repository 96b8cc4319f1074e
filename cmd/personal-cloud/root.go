package main

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/KennethL27/personal-cloud-service/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "personal-cloud",
	Short:             "Personal cloud file-sharing server for locally attached drives.",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrapLogging,
}

var commandPath atomic.Value

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, drivesCmd, shareCmd)
}

func bootstrapLogging(cmd *cobra.Command, _ []string) error {
	name := commandName(cmd)
	commandPath.Store(name)
	_, err := logging.BootstrapFromEnv(logging.BootstrapOptions{Command: name, Writer: os.Stderr})
	return err
}

// commandName drops the root command from the cobra command path.
func commandName(cmd *cobra.Command) string {
	path := strings.TrimSpace(cmd.CommandPath())
	if _, rest, found := strings.Cut(path, " "); found {
		return rest
	}
	return path
}

func currentCommandPath() string {
	if name, ok := commandPath.Load().(string); ok {
		return name
	}
	return ""
}
