package api

import (
	"context"
	"net/url"
	"strconv"
)

// ListVideosOptions narrows the video listing. Zero value lists everything
// the caller may see, newest first.
type ListVideosOptions struct {
	Query     string
	ChannelID string
	Limit     int
}

// ListVideos returns the public video feed. Anonymous callers may pass an
// empty token.
func (c *Client) ListVideos(ctx context.Context, token string, opts ListVideosOptions) ([]Video, error) {
	q := url.Values{}
	if opts.Query != "" {
		q.Set("q", opts.Query)
	}
	if opts.ChannelID != "" {
		q.Set("channel", opts.ChannelID)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	path := "/api/videos"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var videos []Video
	if err := c.get(ctx, path, token, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// GetVideo fetches a single video by id.
func (c *Client) GetVideo(ctx context.Context, token, id string) (*Video, error) {
	var video Video
	if err := c.get(ctx, "/api/videos/"+id, token, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// LikeVideo toggles the caller's like on a video.
func (c *Client) LikeVideo(ctx context.Context, token, id string) error {
	return c.do(ctx, "POST", "/api/videos/"+id+"/like", token, nil, nil)
}

// SaveVideo toggles the video in the caller's watch-later list.
func (c *Client) SaveVideo(ctx context.Context, token, id string) error {
	return c.do(ctx, "POST", "/api/videos/"+id+"/save", token, nil, nil)
}

// WatchHistory returns the caller's recently watched videos.
func (c *Client) WatchHistory(ctx context.Context, token string) ([]Video, error) {
	var videos []Video
	if err := c.get(ctx, "/api/videos/history", token, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// SavedVideos returns the caller's watch-later list.
func (c *Client) SavedVideos(ctx context.Context, token string) ([]Video, error) {
	var videos []Video
	if err := c.get(ctx, "/api/videos/saved", token, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}
