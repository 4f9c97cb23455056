package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/zanta/lfp-client/internal/core/domain"
)

func (a *App) posts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: lfp posts list|get|create|rm|join|leave")
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return a.postsList(ctx)
	case "get":
		id, err := postID(rest)
		if err != nil {
			return err
		}
		return a.postsGet(ctx, id)
	case "create":
		return a.postsCreate(ctx, rest)
	case "rm":
		id, err := postID(rest)
		if err != nil {
			return err
		}
		return a.postsRemove(ctx, id)
	case "join":
		id, err := postID(rest)
		if err != nil {
			return err
		}
		return a.postsJoin(ctx, id)
	case "leave":
		id, err := postID(rest)
		if err != nil {
			return err
		}
		return a.postsLeave(ctx, id)
	default:
		return fmt.Errorf("unknown posts command %q", sub)
	}
}

func postID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("a post id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q", args[0])
	}
	return id, nil
}

// The board is the home page; signed-in users only.
func (a *App) postsList(ctx context.Context) error {
	if err := a.guardPage(false); err != nil {
		return err
	}
	posts, err := a.client.Posts().List(ctx)
	if err != nil {
		return presentError(err)
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tGAME\tPARTY\tVOICE\tJOINED")
	for _, p := range posts {
		game := ""
		if p.Game != nil {
			game = p.Game.Name
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\t%v\t%v\n",
			p.ID, p.Title, game, p.CurrentPlayers, p.TeamSize, p.VoiceChat, p.HasJoined)
	}
	return w.Flush()
}

func (a *App) postsGet(ctx context.Context, id int64) error {
	if err := a.guardPage(false); err != nil {
		return err
	}
	post, err := a.client.Posts().Get(ctx, id)
	if err != nil {
		return presentError(err)
	}

	fmt.Fprintf(a.out, "#%d %s\n", post.ID, post.Title)
	if post.Game != nil {
		fmt.Fprintf(a.out, "  game: %s\n", post.Game.Name)
	}
	if post.Owner != nil {
		fmt.Fprintf(a.out, "  owner: @%s\n", post.Owner.Username)
	}
	fmt.Fprintf(a.out, "  party: %d/%d  voice: %v  rank: %s\n",
		post.CurrentPlayers, post.TeamSize, post.VoiceChat, post.Rank)
	if post.PartyCode != "" {
		fmt.Fprintf(a.out, "  party code: %s\n", post.PartyCode)
	}
	return nil
}

func (a *App) postsCreate(ctx context.Context, args []string) error {
	if err := a.guardPage(false); err != nil {
		return err
	}

	fs := flag.NewFlagSet("posts create", flag.ContinueOnError)
	var draft domain.PostDraft
	fs.StringVar(&draft.Title, "title", "", "post title")
	fs.StringVar(&draft.PartyCode, "party-code", "", "party code shared with joined members")
	fs.IntVar(&draft.TeamSize, "team-size", 0, "how many players you are looking for")
	fs.IntVar(&draft.GameID, "game-id", 0, "game id (see `lfp games list`)")
	fs.StringVar(&draft.Rank, "rank", "", "desired rank (optional)")
	fs.BoolVar(&draft.VoiceChat, "voice", false, "voice chat required")
	fs.StringVar(&draft.Mode, "mode", "", "game mode (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkDraft(draft); err != nil {
		return err
	}

	post, err := a.client.Posts().Create(ctx, draft)
	if err != nil {
		return presentError(err)
	}
	fmt.Fprintf(a.out, "Post #%d published.\n", post.ID)
	return nil
}

func (a *App) postsRemove(ctx context.Context, id int64) error {
	if err := a.guardPage(false); err != nil {
		return err
	}
	if err := a.client.Posts().Remove(ctx, id); err != nil {
		return presentError(err)
	}
	fmt.Fprintf(a.out, "Post #%d deleted.\n", id)
	return nil
}

func (a *App) postsJoin(ctx context.Context, id int64) error {
	if err := a.guardPage(false); err != nil {
		return err
	}
	msg, err := a.client.Posts().Join(ctx, id)
	if err != nil {
		return presentError(err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) postsLeave(ctx context.Context, id int64) error {
	if err := a.guardPage(false); err != nil {
		return err
	}
	msg, err := a.client.Posts().CancelJoin(ctx, id)
	if err != nil {
		return presentError(err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}
