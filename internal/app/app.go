// ABOUTME: Application state container wiring stores, dispatchers and toasts
// ABOUTME: One store per entity type; all mutation flows through dispatcher methods

package app

import (
	"errors"
	"log/slog"

	"github.com/atlasrobotics/atlas-console/internal/api"
	"github.com/atlasrobotics/atlas-console/internal/model"
	"github.com/atlasrobotics/atlas-console/internal/notify"
	"github.com/atlasrobotics/atlas-console/internal/session"
	"github.com/atlasrobotics/atlas-console/internal/state"
)

// App is the application-state root: every domain store plus the shared
// API client, session and toast hub. Views hold an *App and read store
// snapshots; they never mutate state directly.
type App struct {
	api    *api.Client
	sess   *session.Session
	toasts *notify.Hub
	log    *slog.Logger

	Auth          *state.Store[model.User]
	Appointments  *state.Store[model.Appointment]
	Attendance    *state.Store[model.AttendanceRecord]
	Loans         *state.Store[model.BookLoan]
	Notifications *state.Store[model.Notification]

	Books       *Resource[model.Book]
	Companies   *Resource[model.Company]
	Departments *Resource[model.Department]
	Employees   *Resource[model.Employee]
	Faculties   *Resource[model.Faculty]
	Regions     *Resource[model.Region]
	Labs        *Resource[model.RoboticsLab]
}

// New wires the application state against the given client and session.
func New(client *api.Client, sess *session.Session, toasts *notify.Hub, log *slog.Logger) *App {
	a := &App{
		api:    client,
		sess:   sess,
		toasts: toasts,
		log:    log,

		Auth:          state.New(func(u model.User) string { return u.ID }),
		Appointments:  state.New(func(ap model.Appointment) string { return ap.ID }),
		Attendance:    state.New(func(r model.AttendanceRecord) string { return r.ID }),
		Loans:         state.New(func(l model.BookLoan) string { return l.ID }),
		Notifications: state.New(func(n model.Notification) string { return n.ID }),
	}

	a.Books = newResource(a, "/books", "book", func(b model.Book) string { return b.ID })
	a.Companies = newResource(a, "/companies", "company", func(c model.Company) string { return c.ID })
	a.Departments = newResource(a, "/departments", "department", func(d model.Department) string { return d.ID })
	a.Employees = newResource(a, "/employees", "employee", func(e model.Employee) string { return e.ID })
	a.Faculties = newResource(a, "/faculties", "faculty", func(f model.Faculty) string { return f.ID })
	a.Regions = newResource(a, "/regions", "region", func(r model.Region) string { return r.ID })
	a.Labs = newResource(a, "/robotics-labs", "robotics lab", func(l model.RoboticsLab) string { return l.ID })

	return a
}

// listEnvelope is the backend's collection response shape.
type listEnvelope[T any] struct {
	Data       []T               `json:"data"`
	Pagination *state.Pagination `json:"pagination"`
}

// itemEnvelope is the backend's single-record response shape.
type itemEnvelope[T any] struct {
	Data T `json:"data"`
}

// fail settles a dispatch on the failure branch: the extracted message
// goes into the store, a toast is always raised, and the error is handed
// back so the caller can abort its own flow.
func fail[T any](a *App, store *state.Store[T], seq uint64, op string, err error) error {
	msg := errText(err)
	store.Commit(seq, state.Failed[T]{Message: msg})
	a.toasts.Publish(notify.Error, "%s: %s", op, msg)
	a.log.Debug("dispatch failed", "op", op, "error", err)
	return err
}

// rejectInvalid handles the pre-wire validation branch: no store
// transition (no request was issued), but the user still sees why.
func (a *App) rejectInvalid(err error) error {
	a.toasts.Publish(notify.Error, "%s", errText(err))
	return err
}

// errText extracts the user-visible message: the server's message field
// for API errors, the field list for validation errors, the transport
// error text otherwise.
func errText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return err.Error()
}
