package api

import "context"

type createPlaylistRequest struct {
	Title string `json:"title"`
}

type playlistVideoRequest struct {
	VideoID string `json:"video_id"`
}

// Playlists returns the caller's playlists.
func (c *Client) Playlists(ctx context.Context, token string) ([]Playlist, error) {
	var playlists []Playlist
	if err := c.get(ctx, "/api/playlists", token, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// GetPlaylist fetches one playlist with its videos.
func (c *Client) GetPlaylist(ctx context.Context, token, id string) (*Playlist, error) {
	var playlist Playlist
	if err := c.get(ctx, "/api/playlists/"+id, token, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// CreatePlaylist creates an empty playlist owned by the caller.
func (c *Client) CreatePlaylist(ctx context.Context, token, title string) (*Playlist, error) {
	var playlist Playlist
	if err := c.do(ctx, "POST", "/api/playlists", token, createPlaylistRequest{Title: title}, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// DeletePlaylist removes a playlist the caller owns.
func (c *Client) DeletePlaylist(ctx context.Context, token, id string) error {
	return c.do(ctx, "DELETE", "/api/playlists/"+id, token, nil, nil)
}

// AddToPlaylist adds a video to a playlist.
func (c *Client) AddToPlaylist(ctx context.Context, token, playlistID, videoID string) error {
	return c.do(ctx, "POST", "/api/playlists/"+playlistID+"/videos", token, playlistVideoRequest{VideoID: videoID}, nil)
}

// RemoveFromPlaylist removes a video from a playlist.
func (c *Client) RemoveFromPlaylist(ctx context.Context, token, playlistID, videoID string) error {
	return c.do(ctx, "DELETE", "/api/playlists/"+playlistID+"/videos/"+videoID, token, nil, nil)
}
