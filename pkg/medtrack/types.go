// Package medtrack is the typed client for the med-tracker REST API, the
// external service that owns courses, daily schedules, appointments, and
// adherence analytics. The reminder daemon only reads snapshots of pending
// events from it and triggers the auto-mark-missed reconciliation; all
// medication state is owned by the service.
package medtrack

import "time"

// TimeSlot is a named part of the day a dose belongs to.
type TimeSlot string

// Time slots recognized by the service.
const (
	SlotMorning   TimeSlot = "Morning"
	SlotAfternoon TimeSlot = "Afternoon"
	SlotNight     TimeSlot = "Night"
)

// PillStatus is the lifecycle state of a single scheduled dose.
type PillStatus string

// Dose statuses. A pending dose becomes taken or missed exactly once;
// the daily sweep converts stale pending doses to missed server-side.
const (
	StatusPending PillStatus = "pending"
	StatusTaken   PillStatus = "taken"
	StatusMissed  PillStatus = "missed"
)

// Wire layouts used by the service for calendar dates and times of day.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// DateOf formats t as a service calendar date in t's location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// PillCourse is a recurring medication course.
type PillCourse struct {
	ID           string     `json:"id"`
	CourseName   string     `json:"course_name"`
	PillName     string     `json:"pill_name"`
	TimeSlots    []TimeSlot `json:"time_slots"`
	StartDate    string     `json:"start_date"`
	DurationDays int        `json:"duration_days"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewPillCourse is the creation payload for a course. The service generates
// the ID and expands the course into per-day schedules.
type NewPillCourse struct {
	CourseName   string     `json:"course_name"`
	PillName     string     `json:"pill_name"`
	TimeSlots    []TimeSlot `json:"time_slots"`
	StartDate    string     `json:"start_date"`
	DurationDays int        `json:"duration_days"`
}

// DailySchedule is one dose of one course on one calendar date.
type DailySchedule struct {
	ID        string     `json:"id"`
	CourseID  string     `json:"course_id"`
	Date      string     `json:"date"`
	TimeSlot  TimeSlot   `json:"time_slot"`
	Status    PillStatus `json:"status"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PendingReminder pairs a not-yet-resolved schedule with its course so a
// reminder can be rendered without a second lookup.
type PendingReminder struct {
	Schedule DailySchedule `json:"schedule"`
	Course   PillCourse    `json:"course"`
}

// EventID returns the identifier of the underlying schedule entry.
func (p PendingReminder) EventID() string {
	return p.Schedule.ID
}

// Label returns the display name used in reminder notifications.
func (p PendingReminder) Label() string {
	return p.Course.PillName
}

// DueOn reports whether this reminder is an outstanding dose for the given
// calendar date.
func (p PendingReminder) DueOn(date string) bool {
	return p.Schedule.Date == date && p.Schedule.Status == StatusPending
}

// Appointment is a doctor appointment tracked alongside medication.
type Appointment struct {
	ID              string    `json:"id"`
	DoctorName      string    `json:"doctor_name"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Purpose         string    `json:"purpose"`
	Notes           string    `json:"notes"`
	Completed       bool      `json:"completed"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewAppointment is the creation payload for an appointment.
type NewAppointment struct {
	DoctorName      string `json:"doctor_name"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Purpose         string `json:"purpose"`
	Notes           string `json:"notes"`
}

// SweepResult is the outcome of an auto-mark-missed reconciliation pass.
// The operation is idempotent: a second call with no new stale doses
// reports UpdatedCount zero.
type SweepResult struct {
	Message      string `json:"message"`
	UpdatedCount int    `json:"updated_count"`
}

// CourseProgress is the per-course adherence summary.
type CourseProgress struct {
	CourseID            string  `json:"course_id"`
	TotalPills          int     `json:"total_pills"`
	TakenPills          int     `json:"taken_pills"`
	MissedPills         int     `json:"missed_pills"`
	PendingPills        int     `json:"pending_pills"`
	ProgressPercentage  float64 `json:"progress_percentage"`
	AdherencePercentage float64 `json:"adherence_percentage"`
}

// PeriodStats aggregates dose outcomes over a reporting window.
type PeriodStats struct {
	Taken  int `json:"taken"`
	Missed int `json:"missed"`
	Total  int `json:"total"`
}

// AnalyticsOverview is the dashboard summary for the whole account.
type AnalyticsOverview struct {
	WeeklyAdherence      float64     `json:"weekly_adherence"`
	MonthlyAdherence     float64     `json:"monthly_adherence"`
	ActiveCourses        int         `json:"active_courses"`
	UpcomingAppointments int         `json:"upcoming_appointments"`
	WeeklyStats          PeriodStats `json:"weekly_stats"`
	MonthlyStats         PeriodStats `json:"monthly_stats"`
}
