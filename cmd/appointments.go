package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

func appointmentsList(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	api, err := apiClient()
	if err != nil {
		printRuntimeErr(ctx, "appointments", "load_config", err)
		return nil
	}
	appts, err := api.UpcomingAppointments(context.Background())
	if err != nil {
		printRuntimeErr(ctx, "appointments", "get_appointments", err)
		return nil
	}
	if len(appts) == 0 {
		fmt.Println("dosewatch: no upcoming appointments")
		return nil
	}
	fmt.Println("Upcoming appointments:")
	for _, a := range appts {
		line := fmt.Sprintf("  %s %s  %s", a.AppointmentDate, a.AppointmentTime, a.DoctorName)
		if a.Purpose != "" {
			line += " (" + a.Purpose + ")"
		}
		fmt.Printf("%s [%s]\n", line, a.ID)
	}
	return nil
}

func appointmentsAdd(ctx *cli.Context) error {
	if apptDoctor == "" || apptDate == "" || apptTime == "" {
		return printErrWithCmdHelp(ctx, errors.New("doctor, date and time are required"))
	}
	api, err := apiClient()
	if err != nil {
		printRuntimeErr(ctx, "appointments", "load_config", err)
		return nil
	}
	appt, err := api.CreateAppointment(context.Background(), medtrack.NewAppointment{
		DoctorName:      apptDoctor,
		AppointmentDate: apptDate,
		AppointmentTime: apptTime,
		Purpose:         apptPurpose,
		Notes:           apptNotes,
	})
	if err != nil {
		printRuntimeErr(ctx, "appointments", "create_appointment", err)
		return nil
	}
	fmt.Printf("Appointment with %s on %s at %s created [%s].\n",
		appt.DoctorName, appt.AppointmentDate, appt.AppointmentTime, appt.ID)
	return nil
}

func appointmentsDone(ctx *cli.Context) error {
	apptID := ctx.Args().First()
	if apptID == "" {
		return printErrWithCmdHelp(ctx, errors.New("no appointment id provided"))
	}
	api, err := apiClient()
	if err != nil {
		printRuntimeErr(ctx, "appointments", "load_config", err)
		return nil
	}
	if err := api.CompleteAppointment(context.Background(), apptID, true); err != nil {
		printRuntimeErr(ctx, "appointments", "complete_appointment", err)
		return nil
	}
	fmt.Println("Appointment marked completed.")
	return nil
}

func appointmentsRemove(ctx *cli.Context) error {
	apptID := ctx.Args().First()
	if apptID == "" {
		return printErrWithCmdHelp(ctx, errors.New("no appointment id provided"))
	}
	api, err := apiClient()
	if err != nil {
		printRuntimeErr(ctx, "appointments", "load_config", err)
		return nil
	}
	if err := api.DeleteAppointment(context.Background(), apptID); err != nil {
		printRuntimeErr(ctx, "appointments", "delete_appointment", err)
		return nil
	}
	fmt.Println("Appointment deleted.")
	return nil
}
