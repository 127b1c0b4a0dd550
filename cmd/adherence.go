package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

func adherence(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	api, err := apiClient()
	if err != nil {
		printRuntimeErr(ctx, "adherence", "load_config", err)
		return nil
	}
	bg := context.Background()

	overview, err := api.AnalyticsOverview(bg)
	if err != nil {
		printRuntimeErr(ctx, "adherence", "get_overview", err)
		return nil
	}
	fmt.Printf("Weekly adherence:  %5.1f%%  (%d/%d taken)\n",
		overview.WeeklyAdherence, overview.WeeklyStats.Taken, overview.WeeklyStats.Total)
	fmt.Printf("Monthly adherence: %5.1f%%  (%d/%d taken)\n",
		overview.MonthlyAdherence, overview.MonthlyStats.Taken, overview.MonthlyStats.Total)
	fmt.Printf("Active courses: %d, upcoming appointments: %d\n\n",
		overview.ActiveCourses, overview.UpcomingAppointments)

	courses, err := api.Courses(bg)
	if err != nil {
		printRuntimeErr(ctx, "adherence", "get_courses", err)
		return nil
	}
	if len(courses) == 0 {
		return nil
	}
	renderCourseBars(bg, api, courses)
	return nil
}

// renderCourseBars draws one completed progress bar per course, filled to
// the taken-pill count. Courses whose progress cannot be fetched are
// skipped rather than failing the overview.
func renderCourseBars(ctx context.Context, api *medtrack.Client, courses []medtrack.PillCourse) {
	p := mpb.New(mpb.WithWidth(40))
	barStyle := mpb.BarStyle().Lbound("╢").Filler("█").Tip("█").Padding("░").Rbound("╟")

	for _, c := range courses {
		cp, err := api.CourseProgress(ctx, c.ID)
		if err != nil || cp.TotalPills == 0 {
			continue
		}
		name := c.PillName
		bar := p.New(int64(cp.TotalPills),
			barStyle,
			mpb.PrependDecorators(
				decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DindentRight}),
			),
			mpb.AppendDecorators(
				decor.Any(func(decor.Statistics) string {
					return fmt.Sprintf("%d taken / %d missed", cp.TakenPills, cp.MissedPills)
				}),
			),
		)
		bar.IncrBy(cp.TakenPills)
		bar.SetTotal(int64(cp.TotalPills), true)
	}
	p.Wait()
}
