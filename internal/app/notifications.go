// ABOUTME: Notification dispatchers: list, broadcast, mark-read, delete
// ABOUTME: Watch views poll ListNotifications; there is no push channel

package app

import (
	"context"
	"net/http"
	"net/url"

	"github.com/atlasrobotics/atlas-console/internal/model"
	"github.com/atlasrobotics/atlas-console/internal/notify"
	"github.com/atlasrobotics/atlas-console/internal/state"
)

// ListNotifications fetches the notification feed, newest first.
func (a *App) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	seq := a.Notifications.Begin()
	var out listEnvelope[model.Notification]
	if err := a.api.Do(ctx, http.MethodGet, "/notifications", nil, &out); err != nil {
		return nil, fail(a, a.Notifications, seq, "loading notifications", err)
	}
	a.Notifications.Commit(seq, state.ListLoaded[model.Notification]{Items: out.Data, Page: out.Pagination})
	return out.Data, nil
}

// BroadcastNotification publishes an admin notification.
func (a *App) BroadcastNotification(ctx context.Context, payload model.NotificationPayload) error {
	if err := model.Validate(payload); err != nil {
		return a.rejectInvalid(err)
	}
	seq := a.Notifications.Begin()
	var out itemEnvelope[model.Notification]
	if err := a.api.Do(ctx, http.MethodPost, "/notifications", payload, &out); err != nil {
		return fail(a, a.Notifications, seq, "broadcasting notification", err)
	}
	a.Notifications.Commit(seq, state.ItemCreated[model.Notification]{Item: out.Data})
	a.toasts.Publish(notify.Success, "notification sent")
	return nil
}

// MarkNotificationRead flags one notification as read.
func (a *App) MarkNotificationRead(ctx context.Context, id string) error {
	seq := a.Notifications.Begin()
	path := "/notifications/" + url.PathEscape(id) + "/read"
	var out itemEnvelope[model.Notification]
	if err := a.api.Do(ctx, http.MethodPut, path, nil, &out); err != nil {
		return fail(a, a.Notifications, seq, "marking notification read", err)
	}
	a.Notifications.Commit(seq, state.ItemUpdated[model.Notification]{Item: out.Data})
	return nil
}

// DeleteNotification removes one notification.
func (a *App) DeleteNotification(ctx context.Context, id string) error {
	seq := a.Notifications.Begin()
	if err := a.api.Do(ctx, http.MethodDelete, "/notifications/"+url.PathEscape(id), nil, nil); err != nil {
		return fail(a, a.Notifications, seq, "deleting notification", err)
	}
	a.Notifications.Commit(seq, state.ItemDeleted[model.Notification]{ID: id})
	a.toasts.Publish(notify.Success, "notification deleted")
	return nil
}
