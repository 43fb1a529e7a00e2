// ABOUTME: Dispatcher tests for the books domain: create, CRUD precision, loans
// ABOUTME: Covers the store invariants: server IDs, exact-match mutation, staleness

package app

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasrobotics/atlas-console/internal/model"
	"github.com/atlasrobotics/atlas-console/internal/notify"
)

func bookJSON(id, title string) map[string]any {
	return map[string]any{"id": id, "title": title, "author": "x", "category": "Fiction", "quantity": 3, "available": 3, "regionId": "r1"}
}

func TestCreateBook_StoreReceivesServerEcho(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": []any{bookJSON("b-1", "Foundation"), bookJSON("b-2", "Hyperion")},
		})
	})
	mux.HandleFunc("POST /books", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"data": bookJSON("srv-42", "Dune"),
		})
	})

	ta := newTestApp(t, mux)
	ctx := context.Background()

	_, err := ta.Books.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, ta.Books.Store.State().Items, 2)

	created, err := ta.Books.Create(ctx, model.BookPayload{
		Title: "Dune", Author: "Herbert", Category: "Fiction", Quantity: 3, RegionID: "r1",
	})
	require.NoError(t, err)

	assert.Equal(t, "srv-42", created.ID, "identifier comes from the server echo")

	snap := ta.Books.Store.State()
	require.Len(t, snap.Items, 3, "items length increases by exactly 1")
	assert.Equal(t, "srv-42", snap.Items[2].ID)
	assert.True(t, snap.Success)
	assert.False(t, snap.Loading)

	toast := lastToast(t, ta.hub)
	assert.Equal(t, notify.Success, toast.Level)
}

func TestCreateBook_ValidationNeverReachesWire(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	ta := newTestApp(t, handler)

	_, err := ta.Books.Create(context.Background(), model.BookPayload{Author: "Herbert"})
	require.Error(t, err)

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, calls.Load(), "no request may be issued for an invalid payload")
	assert.False(t, ta.Books.Store.State().Loading, "store never entered loading")

	toast := lastToast(t, ta.hub)
	assert.Equal(t, notify.Error, toast.Level)
	assert.Contains(t, toast.Message, "title is required")
}

func TestCreateBookWithCover_SwitchesToMultipart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /books", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Dune", r.FormValue("title"))
		assert.Equal(t, "3", r.FormValue("quantity"))
		_, header, err := r.FormFile("cover")
		require.NoError(t, err)
		assert.Equal(t, "dune.png", header.Filename)
		writeJSON(t, w, http.StatusCreated, map[string]any{"data": bookJSON("srv-7", "Dune")})
	})

	ta := newTestApp(t, mux)

	created, err := ta.CreateBookWithCover(context.Background(), model.BookPayload{
		Title: "Dune", Author: "Herbert", Category: "Fiction", Quantity: 3, RegionID: "r1",
	}, "dune.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "srv-7", created.ID)
}

func TestListBooks_FetchIsIdempotent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": []any{bookJSON("b-1", "Foundation"), bookJSON("b-2", "Hyperion")},
		})
	})

	ta := newTestApp(t, mux)
	ctx := context.Background()

	_, err := ta.Books.List(ctx, nil)
	require.NoError(t, err)
	first := ta.Books.Store.State().Items

	_, err = ta.Books.List(ctx, nil)
	require.NoError(t, err)
	second := ta.Books.Store.State().Items

	assert.Equal(t, first, second)
}

func TestListBooks_LaterDispatchWins(t *testing.T) {
	slowStarted := make(chan struct{})
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("category") == "slow" {
			close(slowStarted)
			<-release
			writeJSON(t, w, http.StatusOK, map[string]any{"data": []any{bookJSON("stale", "Old")}})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"data": []any{bookJSON("fresh", "New")}})
	})

	ta := newTestApp(t, mux)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = ta.Books.List(ctx, url.Values{"category": {"slow"}})
	}()

	<-slowStarted
	_, err := ta.Books.List(ctx, nil)
	require.NoError(t, err)

	close(release)
	<-done

	snap := ta.Books.Store.State()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "fresh", snap.Items[0].ID, "the later dispatch's response is kept")
	assert.False(t, snap.Loading)
}

func TestUpdateBook_TouchesOnlyMatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": []any{bookJSON("b-1", "Foundation"), bookJSON("b-2", "Hyperion"), bookJSON("b-3", "Dune")},
		})
	})
	mux.HandleFunc("PUT /books/b-2", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"data": bookJSON("b-2", "Hyperion (2nd ed.)")})
	})

	ta := newTestApp(t, mux)
	ctx := context.Background()

	_, err := ta.Books.List(ctx, nil)
	require.NoError(t, err)
	before := ta.Books.Store.State().Items

	_, err = ta.Books.Update(ctx, "b-2", model.BookPayload{
		Title: "Hyperion (2nd ed.)", Author: "Simmons", Category: "Fiction", Quantity: 3, RegionID: "r1",
	})
	require.NoError(t, err)

	after := ta.Books.Store.State().Items
	require.Len(t, after, 3)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])
	assert.Equal(t, "Hyperion (2nd ed.)", after[1].Title)
}

func TestBorrowBook_UpdatesAvailableFromEcho(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"data": []any{bookJSON("b-1", "Dune")}})
	})
	mux.HandleFunc("POST /books/b-1/borrow", func(w http.ResponseWriter, r *http.Request) {
		echo := bookJSON("b-1", "Dune")
		echo["available"] = 2
		writeJSON(t, w, http.StatusOK, map[string]any{"data": echo})
	})

	ta := newTestApp(t, mux)
	ctx := context.Background()

	_, err := ta.Books.List(ctx, nil)
	require.NoError(t, err)

	err = ta.BorrowBook(ctx, "b-1", model.BorrowPayload{UserID: "u-1", DueAt: "2026-10-01"})
	require.NoError(t, err)

	snap := ta.Books.Store.State()
	assert.Equal(t, 2, snap.Items[0].Available)
	assert.True(t, snap.Success)
}

func TestBookLoans_PaginationReplacedWholesale(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /books/book-loans", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": []any{map[string]any{"id": "l-1", "bookId": "b-1", "userId": "u-1", "status": model.LoanBorrowed}},
			"pagination": map[string]any{"currentPage": 2, "totalPages": 7, "totalItems": 130},
		})
	})

	ta := newTestApp(t, mux)

	_, err := ta.BookLoans(context.Background(), 2)
	require.NoError(t, err)

	snap := ta.Loans.State()
	assert.Equal(t, 2, snap.Page.Current)
	assert.Equal(t, 7, snap.Page.TotalPages)
	assert.Equal(t, 130, snap.Page.TotalItems)
	assert.Equal(t, model.LoanBorrowed, snap.Items[0].Status)
}
