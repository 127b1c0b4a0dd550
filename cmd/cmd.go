package cmd

import (
	"fmt"

	"github.com/urfave/cli"
)

// BuildArgs carries build-time metadata injected by the linker.
type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

var currentBuildArgs BuildArgs

// Execute runs the dosewatch CLI.
func Execute(args []string, bArgs BuildArgs) error {
	currentBuildArgs = bArgs
	app := cli.App{
		Name:                  "DoseWatch",
		HelpName:              "dosewatch",
		Usage:                 "A medication reminder daemon and client.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "dosewatch <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          usageErrorCallback,
		Flags:                 globalFlags,
		Commands: []cli.Command{
			{
				Name:               "daemon",
				Usage:              "run the reminder daemon in the foreground",
				Action:             runDaemon,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        DaemonDescription,
			},
			{
				Name:   "stop",
				Usage:  "shut down the running daemon",
				Action: stopDaemon,
			},
			{
				Name:               "status",
				Aliases:            []string{"s"},
				Usage:              "show daemon state and armed timers",
				Action:             status,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        StatusDescription,
			},
			{
				Name:   "enable",
				Usage:  "turn reminder notifications on",
				Action: enable,
			},
			{
				Name:   "disable",
				Usage:  "turn reminder notifications off",
				Action: disable,
			},
			{
				Name:               "times",
				Aliases:            []string{"t"},
				Usage:              "list or change reminder times",
				Action:             times,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        TimesDescription,
			},
			{
				Name:               "pending",
				Aliases:            []string{"p"},
				Usage:              "list doses still waiting to be taken",
				Action:             pending,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        PendingDescription,
			},
			{
				Name:               "sweep",
				Usage:              "mark stale pending doses as missed now",
				Action:             sweep,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        SweepDescription,
			},
			{
				Name:               "take",
				Usage:              "mark a dose as taken",
				Action:             take,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        TakeDescription,
			},
			{
				Name:               "miss",
				Usage:              "mark a dose as missed",
				Action:             miss,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        MissDescription,
			},
			{
				Name:               "today",
				Usage:              "list today's doses",
				Action:             today,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        TodayDescription,
			},
			{
				Name:               "courses",
				Aliases:            []string{"c"},
				Usage:              "manage medication courses",
				Action:             coursesList,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        CoursesDescription,
				Subcommands: []cli.Command{
					{
						Name:   "add",
						Usage:  "create a course",
						Action: coursesAdd,
						Flags:  courseAddFlags,
					},
					{
						Name:   "remove",
						Usage:  "delete a course and its schedules",
						Action: coursesRemove,
					},
				},
			},
			{
				Name:               "appointments",
				Aliases:            []string{"a"},
				Usage:              "manage doctor appointments",
				Action:             appointmentsList,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        AppointmentsDescription,
				Subcommands: []cli.Command{
					{
						Name:   "add",
						Usage:  "create an appointment",
						Action: appointmentsAdd,
						Flags:  apptAddFlags,
					},
					{
						Name:   "done",
						Usage:  "mark an appointment as completed",
						Action: appointmentsDone,
					},
					{
						Name:   "remove",
						Usage:  "delete an appointment",
						Action: appointmentsRemove,
					},
				},
			},
			{
				Name:               "adherence",
				Usage:              "show adherence statistics",
				Action:             adherence,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        AdherenceDescription,
			},
			{
				Name:               "history",
				Usage:              "show recently delivered notifications",
				Action:             history,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        HistoryDescription,
				Flags:              historyFlags,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints the installed version of dosewatch",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             getVersion,
			},
		},
		Action:                 status,
		UseShortOptionHandling: true,
		HideHelp:               true,
		HideVersion:            true,
	}
	return app.Run(args)
}
