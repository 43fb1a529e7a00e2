// ABOUTME: Book-specific dispatchers beyond CRUD: cover upload, borrow/return, loans
// ABOUTME: Available-copy accounting is server-side; the store keeps the echoes

package app

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/atlasrobotics/atlas-console/internal/api"
	"github.com/atlasrobotics/atlas-console/internal/model"
	"github.com/atlasrobotics/atlas-console/internal/notify"
	"github.com/atlasrobotics/atlas-console/internal/state"
)

// CreateBookWithCover creates a catalog entry with a cover image. The
// file part switches the request to multipart automatically.
func (a *App) CreateBookWithCover(ctx context.Context, payload model.BookPayload, coverName string, cover io.Reader) (*model.Book, error) {
	if err := model.Validate(payload); err != nil {
		return nil, a.rejectInvalid(err)
	}
	form := api.NewForm().
		Set("title", payload.Title).
		Set("author", payload.Author).
		Set("category", payload.Category).
		Set("quantity", strconv.Itoa(payload.Quantity)).
		Set("regionId", payload.RegionID)
	form.File("cover", coverName, cover)

	seq := a.Books.Store.Begin()
	var out itemEnvelope[model.Book]
	if err := a.api.Do(ctx, http.MethodPost, "/books", form, &out); err != nil {
		return nil, fail(a, a.Books.Store, seq, "creating book", err)
	}
	a.Books.Store.Commit(seq, state.ItemCreated[model.Book]{Item: out.Data})
	a.toasts.Publish(notify.Success, "book created")
	return &out.Data, nil
}

// BorrowBook lends a copy to a user. The echoed book carries the new
// available count.
func (a *App) BorrowBook(ctx context.Context, bookID string, payload model.BorrowPayload) error {
	if err := model.Validate(payload); err != nil {
		return a.rejectInvalid(err)
	}
	seq := a.Books.Store.Begin()
	path := "/books/" + url.PathEscape(bookID) + "/borrow"
	var out itemEnvelope[model.Book]
	if err := a.api.Do(ctx, http.MethodPost, path, payload, &out); err != nil {
		return fail(a, a.Books.Store, seq, "borrowing book", err)
	}
	a.Books.Store.Commit(seq, state.ItemUpdated[model.Book]{Item: out.Data})
	a.toasts.Publish(notify.Success, "%q borrowed, %d copies left", out.Data.Title, out.Data.Available)
	return nil
}

// ReturnBook closes a loan on the given book.
func (a *App) ReturnBook(ctx context.Context, bookID string) error {
	seq := a.Books.Store.Begin()
	path := "/books/" + url.PathEscape(bookID) + "/return"
	var out itemEnvelope[model.Book]
	if err := a.api.Do(ctx, http.MethodPut, path, nil, &out); err != nil {
		return fail(a, a.Books.Store, seq, "returning book", err)
	}
	a.Books.Store.Commit(seq, state.ItemUpdated[model.Book]{Item: out.Data})
	a.toasts.Publish(notify.Success, "%q returned", out.Data.Title)
	return nil
}

// MyBorrowedBooks fetches the authenticated user's open loans.
func (a *App) MyBorrowedBooks(ctx context.Context) ([]model.BookLoan, error) {
	return a.fetchLoans(ctx, "/books/user-borrowed-books")
}

// BookLoans fetches all loans (admin view), paginated.
func (a *App) BookLoans(ctx context.Context, page int) ([]model.BookLoan, error) {
	path := "/books/book-loans"
	if page > 0 {
		path += "?page=" + strconv.Itoa(page)
	}
	return a.fetchLoans(ctx, path)
}

func (a *App) fetchLoans(ctx context.Context, path string) ([]model.BookLoan, error) {
	seq := a.Loans.Begin()
	var out listEnvelope[model.BookLoan]
	if err := a.api.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fail(a, a.Loans, seq, "loading loans", err)
	}
	a.Loans.Commit(seq, state.ListLoaded[model.BookLoan]{Items: out.Data, Page: out.Pagination})
	return out.Data, nil
}
