package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

func coursesList(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	api, err := apiClient()
	if err != nil {
		printRuntimeErr(ctx, "courses", "load_config", err)
		return nil
	}
	courses, err := api.Courses(context.Background())
	if err != nil {
		printRuntimeErr(ctx, "courses", "get_courses", err)
		return nil
	}
	if len(courses) == 0 {
		fmt.Println("dosewatch: no courses found")
		return nil
	}
	fmt.Println("Your medication courses:")
	for _, c := range courses {
		fmt.Printf("  %-12s %-8s starts %s for %d day(s) at %s [%s]\n",
			c.PillName,
			c.CourseName,
			c.StartDate,
			c.DurationDays,
			joinSlots(c.TimeSlots),
			c.ID,
		)
	}
	return nil
}

func coursesAdd(ctx *cli.Context) error {
	if courseName == "" || courseDosage == "" || courseDays <= 0 || courseSlots == "" {
		return printErrWithCmdHelp(ctx, errors.New("name, dosage, days and slots are required"))
	}
	slots, err := parseSlots(courseSlots)
	if err != nil {
		return printErrWithCmdHelp(ctx, err)
	}
	start := courseStart
	if start == "" {
		start = medtrack.DateOf(time.Now())
	}
	api, err := apiClient()
	if err != nil {
		printRuntimeErr(ctx, "courses", "load_config", err)
		return nil
	}
	course, err := api.CreateCourse(context.Background(), medtrack.NewPillCourse{
		CourseName:   courseDosage,
		PillName:     courseName,
		TimeSlots:    slots,
		StartDate:    start,
		DurationDays: courseDays,
	})
	if err != nil {
		printRuntimeErr(ctx, "courses", "create_course", err)
		return nil
	}
	fmt.Printf("Course created: %s (%s) [%s]\n", course.PillName, course.CourseName, course.ID)
	return nil
}

func coursesRemove(ctx *cli.Context) error {
	courseID := ctx.Args().First()
	if courseID == "" {
		return printErrWithCmdHelp(ctx, errors.New("no course id provided"))
	}
	api, err := apiClient()
	if err != nil {
		printRuntimeErr(ctx, "courses", "load_config", err)
		return nil
	}
	if err := api.DeleteCourse(context.Background(), courseID); err != nil {
		printRuntimeErr(ctx, "courses", "delete_course", err)
		return nil
	}
	fmt.Println("Course deleted.")
	return nil
}

// parseSlots converts "Morning,Night" into service slot values.
func parseSlots(s string) ([]medtrack.TimeSlot, error) {
	valid := map[string]medtrack.TimeSlot{
		"morning":   medtrack.SlotMorning,
		"afternoon": medtrack.SlotAfternoon,
		"night":     medtrack.SlotNight,
	}
	var out []medtrack.TimeSlot
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		slot, ok := valid[strings.ToLower(part)]
		if !ok {
			return nil, fmt.Errorf("unknown slot %q (want Morning, Afternoon or Night)", part)
		}
		out = append(out, slot)
	}
	if len(out) == 0 {
		return nil, errors.New("no slots provided")
	}
	return out, nil
}

func joinSlots(slots []medtrack.TimeSlot) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}
