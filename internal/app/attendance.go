// ABOUTME: Attendance dispatchers: check-in/out, break intervals, history
// ABOUTME: The open session lives in Selected; same-day rules are enforced server-side

package app

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/atlasrobotics/atlas-console/internal/model"
	"github.com/atlasrobotics/atlas-console/internal/notify"
	"github.com/atlasrobotics/atlas-console/internal/state"
)

// CheckIn opens a work session. The server rejects a second check-in on
// the same day; the prior session stays untouched in that case.
func (a *App) CheckIn(ctx context.Context) (*model.AttendanceRecord, error) {
	seq := a.Attendance.Begin()
	var out itemEnvelope[model.AttendanceRecord]
	if err := a.api.Do(ctx, http.MethodPost, "/attendance/checkin", nil, &out); err != nil {
		return nil, fail(a, a.Attendance, seq, "check-in", err)
	}
	a.Attendance.Commit(seq, state.SelectedUpdated[model.AttendanceRecord]{Item: out.Data})
	a.toasts.Publish(notify.Success, "checked in at %s", out.Data.CheckIn.Format("15:04"))
	return &out.Data, nil
}

// CheckOut closes the open session.
func (a *App) CheckOut(ctx context.Context) (*model.AttendanceRecord, error) {
	seq := a.Attendance.Begin()
	var out itemEnvelope[model.AttendanceRecord]
	if err := a.api.Do(ctx, http.MethodPost, "/attendance/checkout", nil, &out); err != nil {
		return nil, fail(a, a.Attendance, seq, "check-out", err)
	}
	a.Attendance.Commit(seq, state.SelectedUpdated[model.AttendanceRecord]{Item: out.Data})
	a.toasts.Publish(notify.Success, "checked out")
	return &out.Data, nil
}

// breakPayload starts or ends a break within the open session.
type breakPayload struct {
	Action string `json:"action"`
}

// StartBreak records the start of a break in the open session.
func (a *App) StartBreak(ctx context.Context) error {
	return a.recordBreak(ctx, "start", "break started")
}

// EndBreak closes the most recent open break.
func (a *App) EndBreak(ctx context.Context) error {
	return a.recordBreak(ctx, "end", "break ended")
}

func (a *App) recordBreak(ctx context.Context, action, toast string) error {
	seq := a.Attendance.Begin()
	var out itemEnvelope[model.AttendanceRecord]
	if err := a.api.Do(ctx, http.MethodPost, "/attendance/breaks", breakPayload{Action: action}, &out); err != nil {
		return fail(a, a.Attendance, seq, "recording break", err)
	}
	a.Attendance.Commit(seq, state.SelectedUpdated[model.AttendanceRecord]{Item: out.Data})
	a.toasts.Publish(notify.Success, "%s", toast)
	return nil
}

// AttendanceHistory fetches past sessions, newest first, paginated.
func (a *App) AttendanceHistory(ctx context.Context, page int) ([]model.AttendanceRecord, error) {
	seq := a.Attendance.Begin()
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	path := "/attendance/history"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out listEnvelope[model.AttendanceRecord]
	if err := a.api.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fail(a, a.Attendance, seq, "loading attendance history", err)
	}
	a.Attendance.Commit(seq, state.ListLoaded[model.AttendanceRecord]{Items: out.Data, Page: out.Pagination})
	return out.Data, nil
}
