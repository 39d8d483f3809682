package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clipstream/clipstream/internal/api"
	"github.com/clipstream/clipstream/internal/realtime"
)

type NotificationsCmd struct {
	List  ListNotificationsCmd  `cmd:"" help:"List notification history"`
	Watch WatchNotificationsCmd `cmd:"" help:"Stream notifications as they arrive"`
	Seen  SeenNotificationsCmd  `cmd:"" help:"Mark all notifications as seen"`
}

type ListNotificationsCmd struct {
	ClientFlags
}

func (l *ListNotificationsCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := l.app()
	if err != nil {
		return err
	}

	notifications, err := fetchAuthed(ctx, app, func(ctx context.Context, token string) ([]api.Notification, error) {
		return app.API.Notifications(ctx, token)
	})
	if err != nil {
		return err
	}

	if len(notifications) == 0 {
		fmt.Println("No notifications")
		return nil
	}
	for _, n := range notifications {
		marker := " "
		if !n.Seen {
			marker = "*"
		}
		fmt.Printf("%s [%s] %s\n", marker, n.CreatedAt.Format(time.RFC3339), n.Message)
	}
	return nil
}

type SeenNotificationsCmd struct {
	ClientFlags
}

func (s *SeenNotificationsCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := s.app()
	if err != nil {
		return err
	}

	_, err = fetchAuthed(ctx, app, func(ctx context.Context, token string) (struct{}, error) {
		return struct{}{}, app.API.MarkNotificationsSeen(ctx, token)
	})
	if err != nil {
		return err
	}

	fmt.Println("All notifications marked seen")
	return nil
}

type WatchNotificationsCmd struct {
	ClientFlags
}

func (w *WatchNotificationsCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := w.app()
	if err != nil {
		return err
	}

	// Anonymous watchers still get a channel, keyed by a throwaway id
	key := realtime.IdentityKey(app.Sessions.Current())
	mgr := realtime.New(app.Config.Realtime(), key, realtime.Options{})

	mgr.OnStatus(func(ready bool) {
		if ready {
			fmt.Println("-- connected --")
		} else {
			fmt.Println("-- connection lost, retrying --")
		}
	})

	mgr.Subscribe(func(ev realtime.Event) {
		if ev.Name != "notification" {
			return
		}
		var n api.Notification
		if err := json.Unmarshal(ev.Data, &n); err != nil {
			fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), string(ev.Data))
			return
		}
		fmt.Printf("[%s] %s\n", n.CreatedAt.Format("15:04:05"), n.Message)
	})

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("Received interrupt signal, shutting down...")
		cancel()
	}()

	fmt.Printf("Watching notifications as %s\n", key)
	mgr.Run(ctx)
	return nil
}
