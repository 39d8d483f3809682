package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/clipstream/clipstream/internal/api"
)

type VideosCmd struct {
	List    ListVideosCmd  `cmd:"" help:"List videos"`
	Get     GetVideoCmd    `cmd:"" help:"Show one video"`
	Like    LikeVideoCmd   `cmd:"" help:"Toggle like on a video"`
	Save    SaveVideoCmd   `cmd:"" help:"Toggle watch-later on a video"`
	Upload  UploadVideoCmd `cmd:"" help:"Upload a video"`
	Saved   SavedVideosCmd `cmd:"" help:"List watch-later videos"`
	History HistoryCmd     `cmd:"" help:"List watch history"`
}

type ListVideosCmd struct {
	ClientFlags
	Query   string `help:"Search query"`
	Channel string `help:"Filter by channel id"`
	Limit   int    `help:"Maximum number of results" default:"25"`
}

func (l *ListVideosCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := l.app()
	if err != nil {
		return err
	}

	// The feed is public; an expired session just browses anonymously
	token := app.Sessions.Current().Token

	videos, err := app.API.ListVideos(ctx, token, api.ListVideosOptions{
		Query:     l.Query,
		ChannelID: l.Channel,
		Limit:     l.Limit,
	})
	if err != nil {
		return err
	}

	printVideos(videos)
	return nil
}

type GetVideoCmd struct {
	ClientFlags
	ID string `arg:"" help:"Video id"`
}

func (g *GetVideoCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := g.app()
	if err != nil {
		return err
	}

	token := app.Sessions.Current().Token
	video, err := app.API.GetVideo(ctx, token, g.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", video.Title)
	fmt.Printf("  id:      %s\n", video.ID)
	fmt.Printf("  channel: %s\n", video.ChannelName)
	fmt.Printf("  views:   %d  likes: %d\n", video.Views, video.Likes)
	if video.Description != "" {
		fmt.Printf("  %s\n", video.Description)
	}
	return nil
}

type LikeVideoCmd struct {
	ClientFlags
	ID string `arg:"" help:"Video id"`
}

func (l *LikeVideoCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := l.app()
	if err != nil {
		return err
	}

	_, err = fetchAuthed(ctx, app, func(ctx context.Context, token string) (struct{}, error) {
		return struct{}{}, app.API.LikeVideo(ctx, token, l.ID)
	})
	if err != nil {
		return err
	}

	fmt.Println("Like toggled")
	return nil
}

type SaveVideoCmd struct {
	ClientFlags
	ID string `arg:"" help:"Video id"`
}

func (s *SaveVideoCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := s.app()
	if err != nil {
		return err
	}

	_, err = fetchAuthed(ctx, app, func(ctx context.Context, token string) (struct{}, error) {
		return struct{}{}, app.API.SaveVideo(ctx, token, s.ID)
	})
	if err != nil {
		return err
	}

	fmt.Println("Saved for later")
	return nil
}

type SavedVideosCmd struct {
	ClientFlags
}

func (s *SavedVideosCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := s.app()
	if err != nil {
		return err
	}

	videos, err := fetchAuthed(ctx, app, func(ctx context.Context, token string) ([]api.Video, error) {
		return app.API.SavedVideos(ctx, token)
	})
	if err != nil {
		return err
	}

	printVideos(videos)
	return nil
}

type HistoryCmd struct {
	ClientFlags
}

func (h *HistoryCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := h.app()
	if err != nil {
		return err
	}

	videos, err := fetchAuthed(ctx, app, func(ctx context.Context, token string) ([]api.Video, error) {
		return app.API.WatchHistory(ctx, token)
	})
	if err != nil {
		return err
	}

	printVideos(videos)
	return nil
}

type UploadVideoCmd struct {
	ClientFlags
	File        string `arg:"" help:"Path to the video file" type:"existingfile"`
	Title       string `help:"Video title" required:""`
	Description string `help:"Video description"`
}

func (u *UploadVideoCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := u.app()
	if err != nil {
		return err
	}

	file, err := os.Open(u.File)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", u.File, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	video, err := fetchAuthed(ctx, app, func(ctx context.Context, token string) (*api.Video, error) {
		return app.API.UploadVideo(ctx, token, api.UploadRequest{
			Title:       u.Title,
			Description: u.Description,
			Filename:    u.File,
			Content:     file,
			Size:        info.Size(),
		}, func(written, total int64) {
			if total > 0 {
				fmt.Printf("\rUploading... %d%%", written*100/total)
			}
		})
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nUploaded %s (id %s)\n", video.Title, video.ID)
	return nil
}

func printVideos(videos []api.Video) {
	if len(videos) == 0 {
		fmt.Println("No videos")
		return
	}

	for _, v := range videos {
		fmt.Printf("%-24s  %-40s  %8d views  %s\n",
			v.ID, truncate(v.Title, 40), v.Views, v.CreatedAt.Format(time.DateOnly))
	}
}

// truncate shortens s to at most n characters, counting runes so a
// multibyte title is never cut mid-character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
