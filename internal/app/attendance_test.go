// ABOUTME: Dispatcher tests for attendance: check-in/out lifecycle and rejections
// ABOUTME: The open session is held in Selected; server rejections leave it untouched

package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckIn_OpensSession(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /attendance/checkin", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"data": map[string]any{"id": "att-1", "userId": "u-1", "checkIn": checkIn},
		})
	})

	ta := newTestApp(t, mux)

	rec, err := ta.CheckIn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, checkIn, rec.CheckIn)
	assert.Nil(t, rec.CheckOut, "check-out stays unset on a fresh session")

	snap := ta.Attendance.State()
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "att-1", snap.Selected.ID)
	assert.True(t, snap.Success)
	assert.False(t, snap.Loading)
}

func TestCheckIn_SecondSameDayRejected(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	first := true
	mux := http.NewServeMux()
	mux.HandleFunc("POST /attendance/checkin", func(w http.ResponseWriter, r *http.Request) {
		if first {
			first = false
			writeJSON(t, w, http.StatusCreated, map[string]any{
				"data": map[string]any{"id": "att-1", "userId": "u-1", "checkIn": checkIn},
			})
			return
		}
		writeJSON(t, w, http.StatusConflict, map[string]any{"message": "already checked in today"})
	})

	ta := newTestApp(t, mux)
	ctx := context.Background()

	_, err := ta.CheckIn(ctx)
	require.NoError(t, err)

	_, err = ta.CheckIn(ctx)
	require.Error(t, err)

	snap := ta.Attendance.State()
	assert.Equal(t, "already checked in today", snap.Err)
	require.NotNil(t, snap.Selected, "prior session survives the rejection")
	assert.Equal(t, "att-1", snap.Selected.ID)
	assert.Equal(t, checkIn, snap.Selected.CheckIn)
	assert.False(t, snap.Loading, "loading settles on the failure branch too")
}

func TestCheckOut_ClosesSession(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(8 * time.Hour)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /attendance/checkout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": map[string]any{"id": "att-1", "userId": "u-1", "checkIn": checkIn, "checkOut": checkOut},
		})
	})

	ta := newTestApp(t, mux)

	rec, err := ta.CheckOut(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec.CheckOut)
	assert.Equal(t, checkOut, *rec.CheckOut)
}

func TestBreaks_OrderedIntervalsFromEcho(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	breakStart := checkIn.Add(3 * time.Hour)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /attendance/breaks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": map[string]any{
				"id": "att-1", "userId": "u-1", "checkIn": checkIn,
				"breaks": []any{map[string]any{"start": breakStart}},
			},
		})
	})

	ta := newTestApp(t, mux)

	require.NoError(t, ta.StartBreak(context.Background()))

	snap := ta.Attendance.State()
	require.NotNil(t, snap.Selected)
	require.Len(t, snap.Selected.Breaks, 1)
	assert.Equal(t, breakStart, snap.Selected.Breaks[0].Start)
	assert.Nil(t, snap.Selected.Breaks[0].End)
}

func TestAttendanceHistory_Paginated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /attendance/history", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": []any{
				map[string]any{"id": "att-9", "userId": "u-1", "checkIn": time.Now().UTC()},
			},
			"pagination": map[string]any{"currentPage": 3, "totalPages": 4, "totalItems": 31},
		})
	})

	ta := newTestApp(t, mux)

	recs, err := ta.AttendanceHistory(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 3, ta.Attendance.State().Page.Current)
}
