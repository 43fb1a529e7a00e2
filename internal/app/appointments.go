// ABOUTME: Appointment dispatchers: booking, status transitions, payment capture
// ABOUTME: Status and payment transitions are server-authoritative; the store keeps echoes

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

// ListAppointments fetches all appointments (admin view), paginated.
func (a *App) ListAppointments(ctx context.Context, page int) ([]model.Appointment, error) {
	path := "/appointments"
	if page > 0 {
		path += "?page=" + strconv.Itoa(page)
	}
	return a.fetchAppointments(ctx, path)
}

// MyAppointments fetches the authenticated user's appointments.
func (a *App) MyAppointments(ctx context.Context) ([]model.Appointment, error) {
	return a.fetchAppointments(ctx, "/appointments/mine")
}

func (a *App) fetchAppointments(ctx context.Context, path string) ([]model.Appointment, error) {
	seq := a.Appointments.Begin()
	var out listEnvelope[model.Appointment]
	if err := a.api.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fail(a, a.Appointments, seq, "loading appointments", err)
	}
	a.Appointments.Commit(seq, state.ListLoaded[model.Appointment]{Items: out.Data, Page: out.Pagination})
	return out.Data, nil
}

// BookAppointment creates a lab booking.
func (a *App) BookAppointment(ctx context.Context, payload model.AppointmentPayload) (*model.Appointment, error) {
	if err := model.Validate(payload); err != nil {
		return nil, a.rejectInvalid(err)
	}
	seq := a.Appointments.Begin()
	var out itemEnvelope[model.Appointment]
	if err := a.api.Do(ctx, http.MethodPost, "/appointments", payload, &out); err != nil {
		return nil, fail(a, a.Appointments, seq, "booking appointment", err)
	}
	a.Appointments.Commit(seq, state.ItemCreated[model.Appointment]{Item: out.Data})
	a.toasts.Publish(notify.Success, "appointment booked for %s %s", out.Data.Date, out.Data.Time)
	return &out.Data, nil
}

// ApproveAppointment moves a scheduled appointment to approved.
func (a *App) ApproveAppointment(ctx context.Context, id string) error {
	return a.transition(ctx, id, "approve", "appointment approved")
}

// CancelAppointment cancels an appointment.
func (a *App) CancelAppointment(ctx context.Context, id string) error {
	return a.transition(ctx, id, "cancel", "appointment cancelled")
}

// CheckInAppointment marks the visitor as arrived.
func (a *App) CheckInAppointment(ctx context.Context, id string) error {
	return a.transition(ctx, id, "checkin", "visitor checked in")
}

// CheckOutAppointment completes the visit.
func (a *App) CheckOutAppointment(ctx context.Context, id string) error {
	return a.transition(ctx, id, "checkout", "visit completed")
}

// transition issues one status-change call and replaces the matching
// record with the server's echo.
func (a *App) transition(ctx context.Context, id, action, toast string) error {
	seq := a.Appointments.Begin()
	path := "/appointments/" + url.PathEscape(id) + "/" + action
	var out itemEnvelope[model.Appointment]
	if err := a.api.Do(ctx, http.MethodPut, path, nil, &out); err != nil {
		return fail(a, a.Appointments, seq, "appointment "+action, err)
	}
	a.Appointments.Commit(seq, state.ItemUpdated[model.Appointment]{Item: out.Data})
	a.toasts.Publish(notify.Success, "%s", toast)
	return nil
}

// CapturePayment settles an appointment with a gateway reference from
// the external checkout flow.
func (a *App) CapturePayment(ctx context.Context, payload model.CapturePaymentPayload) error {
	if err := model.Validate(payload); err != nil {
		return a.rejectInvalid(err)
	}
	seq := a.Appointments.Begin()
	var out itemEnvelope[model.Appointment]
	if err := a.api.Do(ctx, http.MethodPost, "/appointments/capture-payment", payload, &out); err != nil {
		return fail(a, a.Appointments, seq, "capturing payment", err)
	}
	a.Appointments.Commit(seq, state.ItemUpdated[model.Appointment]{Item: out.Data})
	a.toasts.Publish(notify.Success, "payment captured (%s)", out.Data.PaymentStatus)
	return nil
}
