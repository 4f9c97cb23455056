// Package cli renders the squad-finder pages in the terminal: sign-in and
// sign-up, the games catalogue, the looking-for-group board, and the admin
// dashboard. Every protected page runs the route guard before rendering.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/zanta/lfp-client/internal/api"
	"github.com/zanta/lfp-client/internal/guard"
	"github.com/zanta/lfp-client/internal/infrastructure/config"
	"github.com/zanta/lfp-client/internal/session"
)

// App wires the facades, the session store, and the guard into commands.
type App struct {
	client *api.Client
	store  session.Store
	cfg    *config.Config
	log    zerolog.Logger
	out    io.Writer
}

// New builds the command app. Output defaults to stdout.
func New(client *api.Client, store session.Store, cfg *config.Config, log zerolog.Logger) *App {
	return &App{
		client: client,
		store:  store,
		cfg:    cfg,
		log:    log,
		out:    os.Stdout,
	}
}

// Run dispatches a command line. The first argument selects the page.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "signup":
		return a.signUp(ctx, rest)
	case "signin":
		return a.signIn(ctx, rest)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami()
	case "games":
		return a.games(ctx, rest)
	case "posts":
		return a.posts(ctx, rest)
	case "admin":
		return a.admin(ctx, rest)
	case "mock-server":
		return a.mockServer()
	case "help", "-h", "--help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) usage() {
	fmt.Fprint(a.out, `lfp - squad finder client

Usage:
  lfp signup -first NAME -last NAME -username NAME -email ADDR -password PASS [-gender G]
  lfp signin -username NAME -password PASS
  lfp logout
  lfp whoami
  lfp games list|get|add|update|rm ...
  lfp posts list|get|create|rm|join|leave ...
  lfp admin users|rm-user|promote ...
  lfp mock-server
`)
}

// guardPage evaluates the route guard for a protected page and translates a
// redirect outcome into the message the user sees instead of the page.
func (a *App) guardPage(requireAdmin bool) error {
	switch guard.Check(a.store, requireAdmin) {
	case guard.RedirectSignIn:
		return errors.New("you are not signed in: run `lfp signin` first")
	case guard.RedirectHome:
		return errors.New("admins only: run `lfp posts list` to get back to the board")
	}
	return nil
}

// presentError turns normalized API errors into a readable message, keeping
// field-level validation detail when the backend supplied it.
func presentError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		msg := apiErr.Message
		for field, detail := range apiErr.Fields {
			msg = fmt.Sprintf("%s\n  %s: %s", msg, field, detail)
		}
		return errors.New(msg)
	}
	return err
}
