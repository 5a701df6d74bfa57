package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/spf13/cobra"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotReachable = errors.New("store cannot be pinged")

type credentialsFunc func(ctx context.Context, email, password string) (*models.Session, error)

// credentials asks for whatever was not given on the command line.
func (a *App) credentials(email string) (string, []byte, error) {
	if email == "" {
		var err error
		if email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
			return "", nil, err
		}
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

func (a *App) authenticate(ctx context.Context, email string, fn credentialsFunc) (*models.Session, error) {
	email, password, err := a.credentials(email)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(password)

	return fn(ctx, email, string(password))
}

func newSignUpCmd(r *runner) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			sess, err := a.authenticate(ctx, email, a.content.SignUp)
			if err != nil {
				return err
			}
			printSuccess(a.out, "Signed up as %s", sess.Email)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newLoginCmd(r *runner) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			sess, err := a.authenticate(ctx, email, a.content.SignIn)
			if err != nil {
				return err
			}
			printSuccess(a.out, "Signed in as %s", sess.Email)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newLogoutCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			if err := a.content.SignOut(ctx); err != nil {
				return err
			}
			printSuccess(a.out, "Signed out")
			return nil
		}),
	}
}

func newWhoAmICmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: r.run(func(_ context.Context, a *App, _ []string) error {
			sess := a.content.CurrentSession()
			if sess == nil {
				return common.ErrNotSignedIn
			}
			printHeading(a.out, "%s", sess.Email)
			fmt.Fprintf(a.out, "User ID: %s\n", sess.UserID)
			if p := a.content.CurrentProfile(); p != nil && p.DisplayName != "" {
				fmt.Fprintf(a.out, "Name:    %s\n", p.DisplayName)
			}
			return nil
		}),
	}
}

func newPingCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that blogd is reachable",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			p, ok := a.store.(pinger)
			if !ok {
				return errNotReachable
			}
			if err := p.Ping(ctx); err != nil {
				return err
			}
			printSuccess(a.out, "OK")
			return nil
		}),
	}
}
