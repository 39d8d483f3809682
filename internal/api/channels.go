package api

import "context"

// GetChannel fetches a creator's public profile.
func (c *Client) GetChannel(ctx context.Context, token, id string) (*Channel, error) {
	var channel Channel
	if err := c.get(ctx, "/api/channels/"+id, token, &channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

// SubscribeChannel toggles the caller's subscription to a channel.
func (c *Client) SubscribeChannel(ctx context.Context, token, id string) error {
	return c.do(ctx, "POST", "/api/channels/"+id+"/subscribe", token, nil, nil)
}

// Dashboard returns the caller's creator dashboard summary.
func (c *Client) Dashboard(ctx context.Context, token string) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.get(ctx, "/api/dashboard", token, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
