package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/spf13/cobra"
)

func newProfileCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change profiles",
	}
	cmd.AddCommand(newProfileShowCmd(r), newProfileUpdateCmd(r))
	return cmd
}

func newProfileShowCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "show [user-id]",
		Short: "Show your profile, or another user's",
		Args:  cobra.MaximumNArgs(1),
		RunE: r.run(func(ctx context.Context, a *App, args []string) error {
			var id string
			if len(args) == 1 {
				id = args[0]
			} else {
				sess := a.content.CurrentSession()
				if sess == nil {
					return common.ErrNotSignedIn
				}
				id = sess.UserID
			}

			p, err := a.content.GetUserProfile(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintf(a.out, "User %s has no profile yet\n", id)
				return nil
			}
			printProfile(a.out, p)
			return nil
		}),
	}
}

func newProfileUpdateCmd(r *runner) *cobra.Command {
	var u models.ProfileUpdate
	fields := []struct {
		name, usage string
		dst         **string
	}{
		{"name", "display name", &u.DisplayName},
		{"bio", "short biography", &u.Bio},
		{"avatar", "avatar URL", &u.AvatarURL},
		{"website", "website URL", &u.Website},
		{"location", "location", &u.Location},
		{"twitter", "Twitter handle", &u.TwitterHandle},
	}
	values := make([]string, len(fields))

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change your profile; only the flags given are changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := r.app
			if a == nil {
				return errNoApp
			}
			changed := false
			for i, f := range fields {
				if cmd.Flags().Changed(f.name) {
					*f.dst = &values[i]
					changed = true
				}
			}
			if !changed {
				return fmt.Errorf("nothing to update; see %s --help", cmd.CommandPath())
			}

			p, err := a.content.UpdateProfile(cmd.Context(), u)
			if err != nil {
				return err
			}
			printSuccess(a.out, "Profile updated")
			printProfile(a.out, p)
			return nil
		},
	}
	for i, f := range fields {
		cmd.Flags().StringVar(&values[i], f.name, "", f.usage)
	}
	return cmd
}
