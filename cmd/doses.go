package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

func take(ctx *cli.Context) error {
	return markDose(ctx, "take", medtrack.StatusTaken)
}

func miss(ctx *cli.Context) error {
	return markDose(ctx, "miss", medtrack.StatusMissed)
}

// markDose records a manual take/miss, then nudges the daemon to re-query
// pending doses and re-arm its timers. A daemon that is not running only
// costs the nudge, not the status change.
func markDose(ctx *cli.Context, cmd string, status medtrack.PillStatus) error {
	scheduleID := ctx.Args().First()
	if scheduleID == "" {
		return printErrWithCmdHelp(ctx, errors.New("no schedule id provided"))
	}
	if scheduleID == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	api, err := apiClient()
	if err != nil {
		printRuntimeErr(ctx, cmd, "load_config", err)
		return nil
	}
	bg := context.Background()
	if err := api.UpdateScheduleStatus(bg, scheduleID, status); err != nil {
		printRuntimeErr(ctx, cmd, "update_status", err)
		return nil
	}
	fmt.Printf("Dose %s marked %s.\n", scheduleID, status)

	client, err := dialDaemon()
	if err != nil {
		fmt.Println("dosewatch: daemon not reachable, reminders will catch up on their own")
		return nil
	}
	defer client.Close()
	if n, err := client.Refresh(bg); err == nil {
		fmt.Printf("Reminder timers refreshed (%d pending).\n", n)
	}
	return nil
}

func today(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	api, err := apiClient()
	if err != nil {
		printRuntimeErr(ctx, "today", "load_config", err)
		return nil
	}
	schedules, err := api.TodaySchedules(context.Background())
	if err != nil {
		printRuntimeErr(ctx, "today", "get_today", err)
		return nil
	}
	if len(schedules) == 0 {
		fmt.Println("dosewatch: nothing scheduled today")
		return nil
	}
	fmt.Println("Today's doses:")
	printSchedules(schedules)
	return nil
}
