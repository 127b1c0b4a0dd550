package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/dosewatch/dosewatch/internal/daemon"
	"github.com/dosewatch/dosewatch/pkg/logger"
)

// runDaemon runs dosewatchd in the foreground until interrupted.
func runDaemon(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		printRuntimeErr(ctx, "daemon", "load_config", err)
		return nil
	}

	lg := logger.NewStandardLogger(log.New(os.Stderr, "dosewatchd ", log.LstdFlags))
	defer lg.Close()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := daemon.NewRunner(cfg, lg, currentBuildArgs.Version)
	if err := runner.Run(runCtx); err != nil && runCtx.Err() == nil {
		printRuntimeErr(ctx, "daemon", "run", err)
	}
	return nil
}
