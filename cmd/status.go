package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"
)

func status(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := dialDaemon()
	if err != nil {
		printRuntimeErr(ctx, "status", "dial_daemon", err)
		return nil
	}
	defer client.Close()

	bg := context.Background()
	version, err := client.Version(bg)
	if err != nil {
		printRuntimeErr(ctx, "status", "get_version", err)
		return nil
	}
	settings, err := client.Settings(bg)
	if err != nil {
		printRuntimeErr(ctx, "status", "get_settings", err)
		return nil
	}
	st, err := client.SchedulerStatus(bg)
	if err != nil {
		printRuntimeErr(ctx, "status", "get_status", err)
		return nil
	}

	fmt.Printf("dosewatchd %s\n", version)
	if settings.Enabled {
		fmt.Printf("reminders: enabled at %v\n", settings.Times)
	} else {
		fmt.Println("reminders: disabled")
	}
	fmt.Printf("scheduler: generation %d, %d armed timer(s)\n", st.Generation, len(st.Armed))
	for _, timer := range st.Armed {
		fmt.Printf("  %-14s fires %s\n", timer.Kind, timer.FiresAt.Local().Format("Mon 15:04:05"))
	}
	return nil
}

func stopDaemon(ctx *cli.Context) error {
	client, err := dialDaemon()
	if err != nil {
		printRuntimeErr(ctx, "stop", "dial_daemon", err)
		return nil
	}
	defer client.Close()
	if err := client.Shutdown(context.Background()); err != nil {
		printRuntimeErr(ctx, "stop", "shutdown", err)
		return nil
	}
	fmt.Println("Daemon stopped.")
	return nil
}
