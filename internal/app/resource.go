// ABOUTME: Generic CRUD dispatcher set shared by every directory collection
// ABOUTME: The same pattern instantiated per entity: list, get, create, update, delete

package app

import (
	"context"
	"net/http"
	"net/url"

	"github.com/atlasrobotics/atlas-console/internal/model"
	"github.com/atlasrobotics/atlas-console/internal/notify"
	"github.com/atlasrobotics/atlas-console/internal/state"
)

// Resource is the dispatcher set for one REST collection. Books and the
// directory entities (companies, departments, employees, faculties,
// regions, robotics labs) are all instances of it.
type Resource[T any] struct {
	app   *App
	base  string
	noun  string
	Store *state.Store[T]
}

func newResource[T any](a *App, base, noun string, id func(T) string) *Resource[T] {
	return &Resource[T]{
		app:   a,
		base:  base,
		noun:  noun,
		Store: state.New(id),
	}
}

// List fetches the collection. query carries server-side filters and the
// page cursor; any client-side filtering a view does on top covers only
// the loaded page.
func (r *Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	seq := r.Store.Begin()
	path := r.base
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out listEnvelope[T]
	if err := r.app.api.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fail(r.app, r.Store, seq, "loading "+r.noun+" list", err)
	}
	r.Store.Commit(seq, state.ListLoaded[T]{Items: out.Data, Page: out.Pagination})
	return out.Data, nil
}

// Get fetches one record by identifier into Selected.
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	seq := r.Store.Begin()
	var out itemEnvelope[T]
	if err := r.app.api.Do(ctx, http.MethodGet, r.base+"/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fail(r.app, r.Store, seq, "loading "+r.noun, err)
	}
	r.Store.Commit(seq, state.ItemLoaded[T]{Item: out.Data})
	return &out.Data, nil
}

// Create sends a new record and appends the server's echo. The stored
// identifier is always the server's, never a client placeholder.
func (r *Resource[T]) Create(ctx context.Context, payload any) (*T, error) {
	if err := model.Validate(payload); err != nil {
		return nil, r.app.rejectInvalid(err)
	}
	seq := r.Store.Begin()
	var out itemEnvelope[T]
	if err := r.app.api.Do(ctx, http.MethodPost, r.base, payload, &out); err != nil {
		return nil, fail(r.app, r.Store, seq, "creating "+r.noun, err)
	}
	r.Store.Commit(seq, state.ItemCreated[T]{Item: out.Data})
	r.app.toasts.Publish(notify.Success, "%s created", r.noun)
	return &out.Data, nil
}

// Update replaces the record matching the server echo's identifier.
func (r *Resource[T]) Update(ctx context.Context, id string, payload any) (*T, error) {
	if err := model.Validate(payload); err != nil {
		return nil, r.app.rejectInvalid(err)
	}
	seq := r.Store.Begin()
	var out itemEnvelope[T]
	if err := r.app.api.Do(ctx, http.MethodPut, r.base+"/"+url.PathEscape(id), payload, &out); err != nil {
		return nil, fail(r.app, r.Store, seq, "updating "+r.noun, err)
	}
	r.Store.Commit(seq, state.ItemUpdated[T]{Item: out.Data})
	r.app.toasts.Publish(notify.Success, "%s updated", r.noun)
	return &out.Data, nil
}

// Delete removes the record. A server-side rejection (404 included)
// leaves the list untouched.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	seq := r.Store.Begin()
	if err := r.app.api.Do(ctx, http.MethodDelete, r.base+"/"+url.PathEscape(id), nil, nil); err != nil {
		return fail(r.app, r.Store, seq, "deleting "+r.noun, err)
	}
	r.Store.Commit(seq, state.ItemDeleted[T]{ID: id})
	r.app.toasts.Publish(notify.Success, "%s deleted", r.noun)
	return nil
}
