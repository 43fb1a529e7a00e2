// ABOUTME: Dispatcher tests for appointments: booking, transitions, payment capture
// ABOUTME: Status strings are server-authoritative echoes, never computed locally

package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasrobotics/atlas-console/internal/model"
)

func appointmentJSON(id, status, payment string) map[string]any {
	return map[string]any{
		"id": id, "userId": "u-1", "labId": "lab-1",
		"date": "2026-09-15", "time": "14:00", "purpose": "line-follower workshop",
		"participants": 4, "status": status, "paymentStatus": payment,
	}
}

func TestBookAppointment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /appointments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"data": appointmentJSON("ap-1", model.AppointmentScheduled, model.PaymentPending),
		})
	})

	ta := newTestApp(t, mux)

	ap, err := ta.BookAppointment(context.Background(), model.AppointmentPayload{
		LabID: "lab-1", Date: "2026-09-15", Time: "14:00",
		Purpose: "line-follower workshop", Participants: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "ap-1", ap.ID)
	assert.Equal(t, model.AppointmentScheduled, ap.Status)
	require.Len(t, ta.Appointments.State().Items, 1)
}

func TestApproveAppointment_ReplacesMatching(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /appointments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": []any{
				appointmentJSON("ap-1", model.AppointmentScheduled, model.PaymentPending),
				appointmentJSON("ap-2", model.AppointmentScheduled, model.PaymentPending),
			},
		})
	})
	mux.HandleFunc("PUT /appointments/ap-2/approve", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": appointmentJSON("ap-2", model.AppointmentApproved, model.PaymentPending),
		})
	})

	ta := newTestApp(t, mux)
	ctx := context.Background()

	_, err := ta.ListAppointments(ctx, 0)
	require.NoError(t, err)

	require.NoError(t, ta.ApproveAppointment(ctx, "ap-2"))

	snap := ta.Appointments.State()
	assert.Equal(t, model.AppointmentScheduled, snap.Items[0].Status)
	assert.Equal(t, model.AppointmentApproved, snap.Items[1].Status)
}

func TestCapturePayment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /appointments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": []any{appointmentJSON("ap-1", model.AppointmentApproved, model.PaymentPending)},
		})
	})
	mux.HandleFunc("POST /appointments/capture-payment", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": appointmentJSON("ap-1", model.AppointmentApproved, model.PaymentPaid),
		})
	})

	ta := newTestApp(t, mux)
	ctx := context.Background()

	_, err := ta.ListAppointments(ctx, 0)
	require.NoError(t, err)

	err = ta.CapturePayment(ctx, model.CapturePaymentPayload{AppointmentID: "ap-1", Reference: "ch_123"})
	require.NoError(t, err)

	snap := ta.Appointments.State()
	assert.Equal(t, model.PaymentPaid, snap.Items[0].PaymentStatus)
}

func TestCancelAppointment_ServerRejection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /appointments/ap-1/cancel", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{"message": "completed appointments cannot be cancelled"})
	})

	ta := newTestApp(t, mux)

	err := ta.CancelAppointment(context.Background(), "ap-1")
	require.Error(t, err)
	assert.Equal(t, "completed appointments cannot be cancelled", ta.Appointments.State().Err)
}
