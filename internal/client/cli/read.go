package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/spf13/cobra"
)

// listCmd builds a command printing one of the cached post lists.
func listCmd(r *runner, use, short, title string, posts func(a *App) []*models.Post) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: r.run(func(_ context.Context, a *App, _ []string) error {
			printPosts(a.out, title, posts(a))
			return nil
		}),
	}
}

func newPostsCmd(r *runner) *cobra.Command {
	return listCmd(r, "posts", "List published posts, newest first", "Posts",
		func(a *App) []*models.Post { return a.content.Posts() })
}

func newFeaturedCmd(r *runner) *cobra.Command {
	return listCmd(r, "featured", "List featured posts", "Featured",
		func(a *App) []*models.Post { return a.content.GetFeaturedPosts() })
}

func newRecentCmd(r *runner) *cobra.Command {
	return listCmd(r, "recent", "List the most recent posts", "Recent",
		func(a *App) []*models.Post { return a.content.GetRecentPosts() })
}

func newMineCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your published posts",
		Args:  cobra.NoArgs,
		RunE: r.run(func(_ context.Context, a *App, _ []string) error {
			if a.content.CurrentSession() == nil {
				return common.ErrNotSignedIn
			}
			printPosts(a.out, "My posts", a.content.GetUserPosts())
			return nil
		}),
	}
}

func newDraftsCmd(r *runner) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "List your unpublished posts",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			posts, err := a.content.FetchDashboardPosts(ctx)
			if err != nil {
				return err
			}
			if all {
				printPosts(a.out, "Dashboard", posts)
				return nil
			}
			drafts := make([]*models.Post, 0, len(posts))
			for _, p := range posts {
				if !p.Published {
					drafts = append(drafts, p)
				}
			}
			printPosts(a.out, "Drafts", drafts)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&all, "all", false, "include published posts")
	return cmd
}

func newPostCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "post <id>",
		Short: "Show a published post",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(_ context.Context, a *App, args []string) error {
			p := a.content.GetPostByID(args[0])
			if p == nil {
				return fmt.Errorf("post %s: %w", args[0], common.ErrNotFound)
			}
			printPost(a.out, p)
			return nil
		}),
	}
}

func newCategoryCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "category <name>",
		Short: "List published posts in a category",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(_ context.Context, a *App, args []string) error {
			printPosts(a.out, args[0], a.content.GetPostsByCategory(args[0]))
			return nil
		}),
	}
}

func newCategoriesCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with their published post counts",
		Args:  cobra.NoArgs,
		RunE: r.run(func(_ context.Context, a *App, _ []string) error {
			printCategories(a.out, a.content.Categories())
			return nil
		}),
	}
}
