package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

func pending(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := dialDaemon()
	if err != nil {
		printRuntimeErr(ctx, "pending", "dial_daemon", err)
		return nil
	}
	defer client.Close()

	reminders, err := client.Pending(context.Background())
	if err != nil {
		printRuntimeErr(ctx, "pending", "get_pending", err)
		return nil
	}
	if len(reminders) == 0 {
		fmt.Println("dosewatch: no pending doses, well done")
		return nil
	}
	fmt.Printf("You have %d pending dose(s):\n\n", len(reminders))
	printSchedules(reminders)
	return nil
}

func sweep(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := dialDaemon()
	if err != nil {
		printRuntimeErr(ctx, "sweep", "dial_daemon", err)
		return nil
	}
	defer client.Close()

	res, err := client.Sweep(context.Background())
	if err != nil {
		printRuntimeErr(ctx, "sweep", "run_sweep", err)
		return nil
	}
	if res.UpdatedCount == 0 {
		fmt.Println("No stale doses found.")
		return nil
	}
	fmt.Printf("Marked %d stale dose(s) as missed.\n", res.UpdatedCount)
	return nil
}

func printSchedules(reminders []medtrack.PendingReminder) {
	for _, r := range reminders {
		fmt.Printf("  %-12s %-10s %-9s %-7s [%s]\n",
			r.Course.PillName,
			r.Schedule.Date,
			r.Schedule.TimeSlot,
			r.Schedule.Status,
			r.Schedule.ID,
		)
	}
}
