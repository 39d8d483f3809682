package commands

import (
	"context"
	"fmt"

	"github.com/clipstream/clipstream/internal/api"
)

type PlaylistsCmd struct {
	List   ListPlaylistsCmd  `cmd:"" help:"List your playlists"`
	Create CreatePlaylistCmd `cmd:"" help:"Create a playlist"`
	Delete DeletePlaylistCmd `cmd:"" help:"Delete a playlist"`
	Add    PlaylistAddCmd    `cmd:"" help:"Add a video to a playlist"`
	Remove PlaylistRemoveCmd `cmd:"" help:"Remove a video from a playlist"`
}

type ListPlaylistsCmd struct {
	ClientFlags
}

func (l *ListPlaylistsCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := l.app()
	if err != nil {
		return err
	}

	playlists, err := fetchAuthed(ctx, app, func(ctx context.Context, token string) ([]api.Playlist, error) {
		return app.API.Playlists(ctx, token)
	})
	if err != nil {
		return err
	}

	if len(playlists) == 0 {
		fmt.Println("No playlists")
		return nil
	}
	for _, p := range playlists {
		fmt.Printf("%-24s  %-40s  %d videos\n", p.ID, truncate(p.Title, 40), p.VideoCount)
	}
	return nil
}

type CreatePlaylistCmd struct {
	ClientFlags
	Title string `arg:"" help:"Playlist title"`
}

func (c *CreatePlaylistCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := c.app()
	if err != nil {
		return err
	}

	playlist, err := fetchAuthed(ctx, app, func(ctx context.Context, token string) (*api.Playlist, error) {
		return app.API.CreatePlaylist(ctx, token, c.Title)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created playlist %s (id %s)\n", playlist.Title, playlist.ID)
	return nil
}

type DeletePlaylistCmd struct {
	ClientFlags
	ID string `arg:"" help:"Playlist id"`
}

func (d *DeletePlaylistCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := d.app()
	if err != nil {
		return err
	}

	_, err = fetchAuthed(ctx, app, func(ctx context.Context, token string) (struct{}, error) {
		return struct{}{}, app.API.DeletePlaylist(ctx, token, d.ID)
	})
	if err != nil {
		return err
	}

	fmt.Println("Playlist deleted")
	return nil
}

type PlaylistAddCmd struct {
	ClientFlags
	Playlist string `arg:"" help:"Playlist id"`
	Video    string `arg:"" help:"Video id"`
}

func (p *PlaylistAddCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := p.app()
	if err != nil {
		return err
	}

	_, err = fetchAuthed(ctx, app, func(ctx context.Context, token string) (struct{}, error) {
		return struct{}{}, app.API.AddToPlaylist(ctx, token, p.Playlist, p.Video)
	})
	if err != nil {
		return err
	}

	fmt.Println("Video added")
	return nil
}

type PlaylistRemoveCmd struct {
	ClientFlags
	Playlist string `arg:"" help:"Playlist id"`
	Video    string `arg:"" help:"Video id"`
}

func (p *PlaylistRemoveCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := p.app()
	if err != nil {
		return err
	}

	_, err = fetchAuthed(ctx, app, func(ctx context.Context, token string) (struct{}, error) {
		return struct{}{}, app.API.RemoveFromPlaylist(ctx, token, p.Playlist, p.Video)
	})
	if err != nil {
		return err
	}

	fmt.Println("Video removed")
	return nil
}
