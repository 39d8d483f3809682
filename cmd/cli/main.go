package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/clipstream/clipstream/cmd/cli/internal/commands"
	"github.com/clipstream/clipstream/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Login         commands.LoginCmd         `cmd:"" help:"Log in to the platform"`
		Logout        commands.LogoutCmd        `cmd:"" help:"Log out and clear the stored credential"`
		Whoami        commands.WhoamiCmd        `cmd:"" help:"Show the current session"`
		Videos        commands.VideosCmd        `cmd:"" help:"Browse, upload, and react to videos"`
		Playlists     commands.PlaylistsCmd     `cmd:"" help:"Manage playlists"`
		Notifications commands.NotificationsCmd `cmd:"" help:"List or watch notifications"`
		Dashboard     commands.DashboardCmd     `cmd:"" help:"Show creator dashboard stats"`
		Subscribe     commands.SubscribeCmd     `cmd:"" help:"Subscribe to a channel"`
		Debug         bool                      `help:"Enable debug mode."`
		Version       kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	log.Logger = logger.Setup(cli.Debug)

	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
