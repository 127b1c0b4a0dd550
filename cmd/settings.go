package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/dosewatch/dosewatch/pkg/dosecli"
)

func enable(ctx *cli.Context) error {
	return setEnabled(ctx, "enable", true)
}

func disable(ctx *cli.Context) error {
	return setEnabled(ctx, "disable", false)
}

func setEnabled(ctx *cli.Context, cmd string, enabled bool) error {
	client, err := dialDaemon()
	if err != nil {
		printRuntimeErr(ctx, cmd, "dial_daemon", err)
		return nil
	}
	defer client.Close()
	settings, err := client.SetEnabled(context.Background(), enabled)
	if err != nil {
		printRuntimeErr(ctx, cmd, "update_settings", err)
		return nil
	}
	if settings.Enabled {
		fmt.Printf("Reminders enabled at %v.\n", settings.Times)
	} else {
		fmt.Println("Reminders disabled.")
	}
	return nil
}

// times lists the reminder times, or adds/removes one.
func times(ctx *cli.Context) error {
	args := ctx.Args()
	if args.First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := dialDaemon()
	if err != nil {
		printRuntimeErr(ctx, "times", "dial_daemon", err)
		return nil
	}
	defer client.Close()

	bg := context.Background()
	settings, err := client.Settings(bg)
	if err != nil {
		printRuntimeErr(ctx, "times", "get_settings", err)
		return nil
	}

	switch args.First() {
	case "":
		printTimes(settings)
		return nil
	case "add", "remove":
		value := args.Get(1)
		if value == "" {
			return printErrWithCmdHelp(ctx, errors.New("no time provided"))
		}
		next, err := editTimes(settings.Times, args.First(), value)
		if err != nil {
			return printErrWithCmdHelp(ctx, err)
		}
		updated, err := client.UpdateSettings(bg, dosecli.UpdateSettingsParams{Times: next})
		if err != nil {
			printRuntimeErr(ctx, "times", "update_settings", err)
			return nil
		}
		printTimes(updated)
		return nil
	default:
		return printErrWithCmdHelp(ctx, fmt.Errorf("unknown subcommand %q", args.First()))
	}
}

// editTimes applies one add or remove to the "HH:MM" list.
func editTimes(current []string, op, value string) ([]string, error) {
	switch op {
	case "add":
		for _, t := range current {
			if t == value {
				return nil, fmt.Errorf("time %s already configured", value)
			}
		}
		return append(append([]string{}, current...), value), nil
	case "remove":
		out := make([]string, 0, len(current))
		for _, t := range current {
			if t != value {
				out = append(out, t)
			}
		}
		if len(out) == len(current) {
			return nil, fmt.Errorf("time %s is not configured", value)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown subcommand %q", op)
}

func printTimes(s *dosecli.Settings) {
	if len(s.Times) == 0 {
		fmt.Println("No reminder times configured.")
		return
	}
	fmt.Println("Reminder times:")
	for _, t := range s.Times {
		fmt.Printf("  %s\n", t)
	}
	if !s.Enabled {
		fmt.Println("(reminders are currently disabled)")
	}
}
