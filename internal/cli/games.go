package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/zanta/lfp-client/internal/core/domain"
)

func (a *App) games(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: lfp games list|get|add|update|rm")
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return a.gamesList(ctx)
	case "get":
		if len(rest) < 1 {
			return fmt.Errorf("usage: lfp games get <name>")
		}
		return a.gamesGet(ctx, rest[0])
	case "add":
		return a.gamesAdd(ctx, rest)
	case "update":
		if len(rest) < 1 {
			return fmt.Errorf("usage: lfp games update <name> [flags]")
		}
		return a.gamesUpdate(ctx, rest[0], rest[1:])
	case "rm":
		if len(rest) < 1 {
			return fmt.Errorf("usage: lfp games rm <name>")
		}
		return a.gamesRemove(ctx, rest[0])
	default:
		return fmt.Errorf("unknown games command %q", sub)
	}
}

// The catalogue is a public page; no guard.
func (a *App) gamesList(ctx context.Context) error {
	games, err := a.client.Games().List(ctx)
	if err != nil {
		return presentError(err)
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPLAYERS\tMODES")
	for _, g := range games {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", g.ID, g.Name, g.Players, strings.Join(g.Modes, ", "))
	}
	return w.Flush()
}

func (a *App) gamesGet(ctx context.Context, name string) error {
	game, err := a.client.Games().Get(ctx, name)
	if err != nil {
		return presentError(err)
	}
	fmt.Fprintf(a.out, "%s: %d players, modes: %s\n%s\n",
		game.Name, game.Players, strings.Join(game.Modes, ", "), game.PictureURL)
	return nil
}

func parseGameFlags(name string, args []string) (domain.Game, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var game domain.Game
	var modes string
	fs.StringVar(&game.Name, "name", "", "game name")
	fs.IntVar(&game.Players, "players", 0, "max players per party")
	fs.StringVar(&game.PictureURL, "picture", "", "picture URL")
	fs.StringVar(&modes, "modes", "", "comma-separated game modes")
	if err := fs.Parse(args); err != nil {
		return game, err
	}
	for _, m := range strings.Split(modes, ",") {
		if m = strings.TrimSpace(m); m != "" {
			game.Modes = append(game.Modes, m)
		}
	}
	return game, nil
}

func (a *App) gamesAdd(ctx context.Context, args []string) error {
	if err := a.guardPage(true); err != nil {
		return err
	}
	game, err := parseGameFlags("games add", args)
	if err != nil {
		return err
	}
	if err := checkDraft(game); err != nil {
		return err
	}

	created, err := a.client.Games().Add(ctx, game)
	if err != nil {
		return presentError(err)
	}
	fmt.Fprintf(a.out, "Added game %q (id %d)\n", created.Name, created.ID)
	return nil
}

func (a *App) gamesUpdate(ctx context.Context, name string, args []string) error {
	if err := a.guardPage(true); err != nil {
		return err
	}
	game, err := parseGameFlags("games update", args)
	if err != nil {
		return err
	}
	if err := checkDraft(game); err != nil {
		return err
	}

	updated, err := a.client.Games().Update(ctx, name, game)
	if err != nil {
		return presentError(err)
	}
	fmt.Fprintf(a.out, "Updated game %q\n", updated.Name)
	return nil
}

func (a *App) gamesRemove(ctx context.Context, name string) error {
	if err := a.guardPage(true); err != nil {
		return err
	}
	if err := a.client.Games().Remove(ctx, name); err != nil {
		return presentError(err)
	}
	fmt.Fprintf(a.out, "Removed game %q\n", name)
	return nil
}
