package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"
)

func history(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := dialDaemon()
	if err != nil {
		printRuntimeErr(ctx, "history", "dial_daemon", err)
		return nil
	}
	defer client.Close()

	entries, err := client.History(context.Background(), historyLimit)
	if err != nil {
		printRuntimeErr(ctx, "history", "get_history", err)
		return nil
	}
	if len(entries) == 0 {
		fmt.Println("dosewatch: no notifications delivered yet")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-14s %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Tag, e.Body)
	}
	return nil
}
