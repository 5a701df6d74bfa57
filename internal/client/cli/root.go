package cli

import (
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/blogsync/internal/client/config"
	"github.com/spf13/cobra"
)

var errNoApp = errors.New("client is not initialized")

// runner carries the App between the root command's setup and the subcommands.
type runner struct {
	loader *config.Loader
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	app    *App
}

func (r *runner) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := r.loader.Load()
	if err != nil {
		return err
	}
	r.app, err = NewApp(cmd.Context(), cfg, r.in, r.out, r.errOut)
	return err
}

// run adapts an App method to cobra's RunE.
func (r *runner) run(fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if r.app == nil {
			return errNoApp
		}
		return fn(cmd.Context(), r.app, args)
	}
}

func newRootCommand(r *runner) *cobra.Command {
	root := &cobra.Command{
		Use:               "blog",
		Short:             "Read and write posts on a blogsync server",
		PersistentPreRunE: r.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.SetIn(r.in)
	root.SetOut(r.out)
	root.SetErr(r.errOut)
	r.loader = config.Bind(root.PersistentFlags())

	root.AddCommand(
		newSignUpCmd(r),
		newLoginCmd(r),
		newLogoutCmd(r),
		newWhoAmICmd(r),
		newPingCmd(r),

		newPostsCmd(r),
		newPostCmd(r),
		newFeaturedCmd(r),
		newRecentCmd(r),
		newCategoryCmd(r),
		newCategoriesCmd(r),
		newMineCmd(r),
		newDraftsCmd(r),

		newCreateCmd(r),
		newUpdateCmd(r),
		newToggleCmd(r, "publish", "Publish a post", func(a *App) toggleFunc { return a.content.SetPublished }, true),
		newToggleCmd(r, "unpublish", "Turn a post back into a draft", func(a *App) toggleFunc { return a.content.SetPublished }, false),
		newToggleCmd(r, "feature", "Feature a post", func(a *App) toggleFunc { return a.content.SetFeatured }, true),
		newToggleCmd(r, "unfeature", "Stop featuring a post", func(a *App) toggleFunc { return a.content.SetFeatured }, false),
		newDeleteCmd(r),
		newUploadImageCmd(r),

		newProfileCmd(r),
	)
	return root
}

// Execute runs the CLI with args and releases everything it opened.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	r := &runner{in: in, out: out, errOut: errOut}
	root := newRootCommand(r)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if r.app != nil {
		r.app.Close()
	}
	return err
}
