package api

import "time"

// Video is a published video as returned by the listing and detail
// endpoints.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ChannelID    string    `json:"channel_id"`
	ChannelName  string    `json:"channel_name,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	VideoURL     string    `json:"video_url,omitempty"`
	Duration     int64     `json:"duration_seconds,omitempty"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	Liked        bool      `json:"liked,omitempty"`
	Saved        bool      `json:"saved,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Playlist groups videos under a user-owned collection.
type Playlist struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	OwnerID    string    `json:"owner_id"`
	VideoCount int       `json:"video_count"`
	Videos     []Video   `json:"videos,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notification is a server-side notification record. Realtime pushes carry
// the same shape over the websocket channel.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	VideoID   string    `json:"video_id,omitempty"`
	SenderID  string    `json:"sender_id,omitempty"`
	Seen      bool      `json:"seen"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardStats is the creator dashboard summary.
type DashboardStats struct {
	VideoCount      int64 `json:"video_count"`
	TotalViews      int64 `json:"total_views"`
	TotalLikes      int64 `json:"total_likes"`
	SubscriberCount int64 `json:"subscriber_count"`
}

// Channel is a creator's public profile.
type Channel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Picture     string `json:"picture,omitempty"`
	Subscribers int64  `json:"subscribers"`
	Subscribed  bool   `json:"subscribed,omitempty"`
}
