package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/zanta/lfp-client/internal/core/domain"
)

func (a *App) signUp(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	var reg domain.Registration
	fs.StringVar(&reg.FirstName, "first", "", "first name")
	fs.StringVar(&reg.LastName, "last", "", "last name")
	fs.StringVar(&reg.Username, "username", "", "username")
	fs.StringVar(&reg.Email, "email", "", "email address")
	fs.StringVar(&reg.Password, "password", "", "password")
	fs.StringVar(&reg.Gender, "gender", "", "gender (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkDraft(reg); err != nil {
		return err
	}

	result, err := a.client.Auth().Register(ctx, reg)
	if err != nil {
		return presentError(err)
	}
	// The facade hands back the pair; committing it is our job.
	if err := a.store.Set(result.Token, result.User); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s! Your account is ready.\n", result.User.FirstName)
	return nil
}

func (a *App) signIn(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ContinueOnError)
	var creds domain.Credentials
	fs.StringVar(&creds.Username, "username", "", "username")
	fs.StringVar(&creds.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkDraft(creds); err != nil {
		return err
	}

	result, err := a.client.Auth().Login(ctx, creds)
	if err != nil {
		return presentError(err)
	}
	if err := a.store.Set(result.Token, result.User); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", result.User.Username, result.User.Role)
	return nil
}

func (a *App) logout() error {
	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) whoami() error {
	if err := a.guardPage(false); err != nil {
		return err
	}
	user, ok := a.store.User()
	if !ok {
		return fmt.Errorf("session has a token but no user record; sign in again")
	}
	fmt.Fprintf(a.out, "%s %s (@%s) <%s> role=%s\n",
		user.FirstName, user.LastName, user.Username, user.Email, user.Role)
	return nil
}
