package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/KennethL27/personal-cloud-service/internal/logging"
)

func main() {
	code := runMain(Execute, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
}

func runMain(execute func() error, stderr io.Writer) int {
	if err := execute(); err != nil {
		return exitCodeForError(err, stderr)
	}
	return 0
}

func exitCodeForError(err error, stderr io.Writer) int {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, "canceled")
		return 130
	}

	cfg, cfgErr := logging.LoadConfigFromEnv()
	if cfgErr != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logging.NewLogger(cfg, stderr, currentCommandPath()).Error("command failed", "exit_code", 1, "error", err)
	return 1
}
