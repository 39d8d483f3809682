package commands

import (
	"context"
	"fmt"

	"github.com/clipstream/clipstream/internal/api"
)

type DashboardCmd struct {
	ClientFlags
}

func (d *DashboardCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := d.app()
	if err != nil {
		return err
	}

	stats, err := fetchAuthed(ctx, app, func(ctx context.Context, token string) (*api.DashboardStats, error) {
		return app.API.Dashboard(ctx, token)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Videos:      %d\n", stats.VideoCount)
	fmt.Printf("Views:       %d\n", stats.TotalViews)
	fmt.Printf("Likes:       %d\n", stats.TotalLikes)
	fmt.Printf("Subscribers: %d\n", stats.SubscriberCount)
	return nil
}

type SubscribeCmd struct {
	ClientFlags
	Channel string `arg:"" help:"Channel id"`
}

func (s *SubscribeCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := s.app()
	if err != nil {
		return err
	}

	_, err = fetchAuthed(ctx, app, func(ctx context.Context, token string) (struct{}, error) {
		return struct{}{}, app.API.SubscribeChannel(ctx, token, s.Channel)
	})
	if err != nil {
		return err
	}

	fmt.Println("Subscription toggled")
	return nil
}
