package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/zanta/lfp-client/internal/core/domain"
	"github.com/zanta/lfp-client/internal/mockapi"
)

func (a *App) admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: lfp admin users|rm-user|promote")
	}
	if err := a.guardPage(true); err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "users":
		return a.adminUsers(ctx)
	case "rm-user":
		return a.adminRemoveUser(ctx, rest)
	case "promote":
		id, err := userID(rest)
		if err != nil {
			return err
		}
		return a.adminPromote(ctx, id)
	default:
		return fmt.Errorf("unknown admin command %q", sub)
	}
}

func userID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("a user id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", args[0])
	}
	return id, nil
}

func (a *App) adminUsers(ctx context.Context) error {
	users, err := a.client.Users().List(ctx)
	if err != nil {
		return presentError(err)
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tEMAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s %s\t%s\t%s\n",
			u.ID, u.Username, u.FirstName, u.LastName, u.Email, u.Role)
	}
	return w.Flush()
}

func (a *App) adminRemoveUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("admin rm-user", flag.ContinueOnError)
	force := fs.Bool("force", false, "delete even when the target is an admin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := userID(fs.Args())
	if err != nil {
		return err
	}

	// Deleting another admin is allowed by the UI but worth a pause; the
	// backend remains the authority on whether it goes through.
	if !*force {
		if target, ok := a.targetUser(ctx, id); ok && target.Role == domain.RoleAdmin {
			return fmt.Errorf("user %d is an admin; pass -force to delete anyway", id)
		}
	}

	if err := a.client.Users().Remove(ctx, id); err != nil {
		return presentError(err)
	}
	fmt.Fprintf(a.out, "User %d deleted.\n", id)
	return nil
}

// targetUser looks the user up in the admin list; a lookup failure just
// skips the warning rather than blocking the action.
func (a *App) targetUser(ctx context.Context, id int64) (*domain.User, bool) {
	users, err := a.client.Users().List(ctx)
	if err != nil {
		return nil, false
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], true
		}
	}
	return nil, false
}

func (a *App) adminPromote(ctx context.Context, id int64) error {
	if err := a.client.Users().Promote(ctx, id); err != nil {
		return presentError(err)
	}
	fmt.Fprintf(a.out, "User %d is now an admin.\n", id)
	return nil
}

// mockServer runs the local development backend.
func (a *App) mockServer() error {
	srv := mockapi.New(a.cfg.Mock.JWTSecret, a.log)
	srv.Seed()
	return srv.Start(":" + a.cfg.Mock.Port)
}
