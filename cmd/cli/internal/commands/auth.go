package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

type LoginCmd struct {
	ClientFlags
	Email    string `arg:"" help:"Account email"`
	Password string `help:"Account password (prompted when omitted)" env:"CLIPSTREAM_PASSWORD"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := l.app()
	if err != nil {
		return err
	}

	password := l.Password
	if password == "" {
		fmt.Print("Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	token, err := app.API.Login(ctx, l.Email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	res, err := app.Sessions.Login(token)
	if err != nil {
		return fmt.Errorf("server issued an unusable token: %w", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", res.Claims.Name, res.Claims.Subject)
	return nil
}

type LogoutCmd struct {
	ClientFlags
}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := l.app()
	if err != nil {
		return err
	}

	if err := app.Sessions.Logout(); err != nil {
		return err
	}

	fmt.Println("Logged out")
	return nil
}

type WhoamiCmd struct {
	ClientFlags
}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := w.app()
	if err != nil {
		return err
	}

	res := app.Sessions.Current()
	if !res.Authenticated() {
		fmt.Println("Not logged in")
		return nil
	}

	fmt.Printf("Subject: %s\n", res.Claims.Subject)
	fmt.Printf("Name:    %s\n", res.Claims.Name)
	if res.Claims.Email != "" {
		fmt.Printf("Email:   %s\n", res.Claims.Email)
	}
	if res.Claims.ExpiresAt != nil {
		fmt.Printf("Expires: %s\n", res.Claims.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}
