// dosewatchd runs the reminder daemon directly, without the CLI wrapper.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dosewatch/dosewatch/internal/config"
	"github.com/dosewatch/dosewatch/internal/daemon"
	"github.com/dosewatch/dosewatch/pkg/logger"
)

var version = "dev"

func main() {
	cfg, err := config.Load(os.Getenv("DOSEWATCH_CONFIG"))
	if err != nil {
		fmt.Println("dosewatchd:", err.Error())
		os.Exit(1)
	}

	lg := logger.NewStandardLogger(log.New(os.Stderr, "dosewatchd ", log.LstdFlags))
	defer lg.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := daemon.NewRunner(cfg, lg, version)
	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Println("dosewatchd:", err.Error())
		os.Exit(1)
	}
}
