package api

import "context"

// Notifications returns the caller's notification history, newest first.
// Realtime pushes only cover events that arrive while connected; this is
// the durable record.
func (c *Client) Notifications(ctx context.Context, token string) ([]Notification, error) {
	var notifications []Notification
	if err := c.get(ctx, "/api/notifications", token, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationsSeen marks all of the caller's notifications as seen.
func (c *Client) MarkNotificationsSeen(ctx context.Context, token string) error {
	return c.do(ctx, "POST", "/api/notifications/seen", token, nil, nil)
}
