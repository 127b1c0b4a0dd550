package cmd

const DESCRIPTION = `
DoseWatch keeps an eye on your medication plan. It runs a small
background daemon that fires desktop reminders at your configured
times, marks stale doses as missed once a day, and gives you a
command line view of courses, schedules and appointments.
`

const (
	DaemonDescription = `The daemon command runs the dosewatch daemon in the
foreground. It arms the reminder timers, serves the control
socket for this CLI and streams alerts to web clients.

Example:
        dosewatch daemon

`
	StatusDescription = `The status command shows the daemon version, whether
reminders are enabled and every armed timer with its next
fire time.

Example:
        dosewatch status

`
	TimesDescription = `The times command manages the reminder times. Without
arguments it lists the configured times; add and remove
change the set. Times use the 24h HH:MM form.

Example:
        dosewatch times
        dosewatch times add 08:30
        dosewatch times remove 18:00

`
	PendingDescription = `The pending command lists every dose that is still
waiting to be taken, as the reminder daemon sees it.

Example:
        dosewatch pending

`
	SweepDescription = `The sweep command runs the missed-dose reconciliation
immediately instead of waiting for the nightly run. Doses
from previous days that are still pending get marked missed.

Example:
        dosewatch sweep

`
	TakeDescription = `The take command marks one dose as taken, then tells the
daemon to refresh its reminder timers.

Example:
        dosewatch take <schedule-id>

`
	MissDescription = `The miss command marks one dose as missed, then tells the
daemon to refresh its reminder timers.

Example:
        dosewatch miss <schedule-id>

`
	TodayDescription = `The today command lists today's doses with their slot and
status.

Example:
        dosewatch today

`
	CoursesDescription = `The courses command lists your medication courses. The add
and remove subcommands create and delete courses.

Example:
        dosewatch courses
        dosewatch courses add --name Lisinopril --dosage 10mg --days 30 --slots Morning,Night
        dosewatch courses remove <course-id>

`
	AppointmentsDescription = `The appointments command lists upcoming doctor visits. The
add, done and remove subcommands manage them.

Example:
        dosewatch appointments
        dosewatch appointments add --doctor "Dr. Rao" --date 2026-09-10 --time 14:30:00
        dosewatch appointments done <appointment-id>

`
	AdherenceDescription = `The adherence command shows overall and per-period adherence
statistics plus a progress bar for every active course.

Example:
        dosewatch adherence

`
	HistoryDescription = `The history command lists recently delivered notifications,
newest first.

Example:
        dosewatch history --limit 20

`
)
