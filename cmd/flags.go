package cmd

import "github.com/urfave/cli"

var (
	configPath   string
	historyLimit int

	courseName   string
	courseDosage string
	courseDays   int
	courseSlots  string
	courseStart  string
	apptDoctor   string
	apptDate     string
	apptTime     string
	apptPurpose  string
	apptNotes    string
)

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "config, C",
		Usage:       "path to the dosewatch config file",
		Destination: &configPath,
	},
}

var historyFlags = []cli.Flag{
	cli.IntFlag{
		Name:        "limit, n",
		Usage:       "maximum number of entries to show (default: 20)",
		Destination: &historyLimit,
	},
}

var courseAddFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "name, m",
		Usage:       "medication name (required)",
		Destination: &courseName,
	},
	cli.StringFlag{
		Name:        "dosage, d",
		Usage:       "dosage description, e.g. 10mg (required)",
		Destination: &courseDosage,
	},
	cli.IntFlag{
		Name:        "days, t",
		Usage:       "course duration in days (required)",
		Destination: &courseDays,
	},
	cli.StringFlag{
		Name:        "slots, s",
		Usage:       "comma separated slots: Morning,Afternoon,Night (required)",
		Destination: &courseSlots,
	},
	cli.StringFlag{
		Name:        "start",
		Usage:       "start date YYYY-MM-DD (default: today)",
		Destination: &courseStart,
	},
}

var apptAddFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "doctor, d",
		Usage:       "doctor name (required)",
		Destination: &apptDoctor,
	},
	cli.StringFlag{
		Name:        "date",
		Usage:       "appointment date YYYY-MM-DD (required)",
		Destination: &apptDate,
	},
	cli.StringFlag{
		Name:        "time",
		Usage:       "appointment time HH:MM:SS (required)",
		Destination: &apptTime,
	},
	cli.StringFlag{
		Name:        "purpose, p",
		Usage:       "visit purpose",
		Destination: &apptPurpose,
	},
	cli.StringFlag{
		Name:        "notes",
		Usage:       "free form notes",
		Destination: &apptNotes,
	},
}
