package medtrack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request to the service. Reminder timer
// arming never waits on these calls, so a generous bound is fine.
const DefaultTimeout = 15 * time.Second

// Client talks to the med-tracker REST API. All methods are safe for
// concurrent use.
type Client struct {
	base string
	hc   *http.Client
}

// NewClient creates a client for the service rooted at baseURL (e.g.
// "http://localhost:8000/api"). If hc is nil a client with DefaultTimeout
// is used.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   hc,
	}
}

// do performs one JSON round trip. A nil in skips the request body, a nil
// out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("medtrack: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("medtrack: build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrServiceUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("medtrack: decode %s %s: %w", method, path, err)
	}
	return nil
}

// readDetail extracts the service's {"detail": "..."} error body, if any.
func readDetail(r io.Reader) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&e); err != nil {
		return ""
	}
	return e.Detail
}

// PendingReminders returns every not-yet-resolved dose the service knows
// about, paired with its course. This snapshot seeds and re-seeds the
// reminder scheduler.
func (c *Client) PendingReminders(ctx context.Context) ([]PendingReminder, error) {
	var out []PendingReminder
	err := c.do(ctx, http.MethodGet, "/schedules/pending-reminders", nil, &out)
	return out, err
}

// AutoMarkMissed asks the service to transition every pending dose dated
// strictly before today to missed. Idempotent within a day.
func (c *Client) AutoMarkMissed(ctx context.Context) (*SweepResult, error) {
	var out SweepResult
	if err := c.do(ctx, http.MethodPost, "/schedules/auto-mark-missed", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateScheduleStatus records a manual take/miss transition for one dose.
// Callers must re-query pending reminders and re-configure the scheduler
// afterwards; the service does not push changes.
func (c *Client) UpdateScheduleStatus(ctx context.Context, scheduleID string, status PillStatus) error {
	body := struct {
		Status PillStatus `json:"status"`
	}{Status: status}
	return c.do(ctx, http.MethodPut, "/schedules/"+url.PathEscape(scheduleID), body, nil)
}

// TodaySchedules returns today's doses with their courses.
func (c *Client) TodaySchedules(ctx context.Context) ([]PendingReminder, error) {
	var out []PendingReminder
	err := c.do(ctx, http.MethodGet, "/schedules/today", nil, &out)
	return out, err
}

// SchedulesByDate returns the doses for a specific calendar date.
func (c *Client) SchedulesByDate(ctx context.Context, date string) ([]PendingReminder, error) {
	var out []PendingReminder
	err := c.do(ctx, http.MethodGet, "/schedules/date/"+url.PathEscape(date), nil, &out)
	return out, err
}

// Courses lists all medication courses.
func (c *Client) Courses(ctx context.Context) ([]PillCourse, error) {
	var out []PillCourse
	err := c.do(ctx, http.MethodGet, "/courses", nil, &out)
	return out, err
}

// CreateCourse registers a new course; the service expands it into daily
// schedules.
func (c *Client) CreateCourse(ctx context.Context, course NewPillCourse) (*PillCourse, error) {
	var out PillCourse
	if err := c.do(ctx, http.MethodPost, "/courses", course, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCourse removes a course and all its schedules.
func (c *Client) DeleteCourse(ctx context.Context, courseID string) error {
	return c.do(ctx, http.MethodDelete, "/courses/"+url.PathEscape(courseID), nil, nil)
}

// CourseProgress returns the adherence summary for one course.
func (c *Client) CourseProgress(ctx context.Context, courseID string) (*CourseProgress, error) {
	var out CourseProgress
	if err := c.do(ctx, http.MethodGet, "/courses/"+url.PathEscape(courseID)+"/progress", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Appointments lists all appointments, soonest first.
func (c *Client) Appointments(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	err := c.do(ctx, http.MethodGet, "/appointments", nil, &out)
	return out, err
}

// UpcomingAppointments lists incomplete appointments from today onwards.
func (c *Client) UpcomingAppointments(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	err := c.do(ctx, http.MethodGet, "/appointments/upcoming", nil, &out)
	return out, err
}

// CreateAppointment registers a new appointment.
func (c *Client) CreateAppointment(ctx context.Context, appt NewAppointment) (*Appointment, error) {
	var out Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", appt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteAppointment marks an appointment completed (or not).
func (c *Client) CompleteAppointment(ctx context.Context, appointmentID string, completed bool) error {
	body := struct {
		Completed bool `json:"completed"`
	}{Completed: completed}
	return c.do(ctx, http.MethodPut, "/appointments/"+url.PathEscape(appointmentID), body, nil)
}

// DeleteAppointment removes an appointment.
func (c *Client) DeleteAppointment(ctx context.Context, appointmentID string) error {
	return c.do(ctx, http.MethodDelete, "/appointments/"+url.PathEscape(appointmentID), nil, nil)
}

// AnalyticsOverview returns the account-wide adherence dashboard.
func (c *Client) AnalyticsOverview(ctx context.Context) (*AnalyticsOverview, error) {
	var out AnalyticsOverview
	if err := c.do(ctx, http.MethodGet, "/analytics/overview", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
