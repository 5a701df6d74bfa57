package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/blogsync/internal/filex"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/spf13/cobra"
)

type toggleFunc func(ctx context.Context, id string, on bool) (*models.PostRecord, error)

// postFlags are shared by create and update.
type postFlags struct {
	title     string
	excerpt   string
	content   string
	category  string
	tags      []string
	imageURL  string
	imageFile string
	readTime  int
	published bool
	featured  bool
}

func (f *postFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "post title")
	fs.StringVar(&f.excerpt, "excerpt", "", "short summary")
	fs.StringVar(&f.content, "content", "", "post body (HTML)")
	fs.StringVar(&f.category, "category", "", "category name")
	fs.StringArrayVarP(&f.tags, "tag", "t", nil, "tag, repeatable")
	fs.StringVar(&f.imageURL, "image", "", "cover image URL")
	fs.StringVar(&f.imageFile, "image-file", "", "upload this file as the cover image")
	fs.IntVar(&f.readTime, "read-time", 0, "read time in minutes")
	fs.BoolVar(&f.published, "publish", false, "publish the post")
	fs.BoolVar(&f.featured, "feature", false, "feature the post")
}

func (f *postFlags) tagList() []string {
	tags := make([]string, 0, len(f.tags))
	for _, t := range f.tags {
		tags = models.AddTag(tags, t)
	}
	return tags
}

func (a *App) uploadImage(ctx context.Context, path string) (string, error) {
	data, ct, err := filex.ReadWithContentType(path)
	if err != nil {
		return "", err
	}
	return a.content.UploadPostImage(ctx, filepath.Base(path), ct, data)
}

// prompt fills *dst from the terminal when it is empty.
func (a *App) prompt(dst *string, label string) error {
	if *dst != "" {
		return nil
	}
	v, err := getSimpleText(a.reader, label, a.out)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func newCreateCmd(r *runner) *cobra.Command {
	f := &postFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write a new post",
		Long: `Write a new post. Posts are drafts unless --publish is given.

Without --title the command asks for the title, category, body and tags.`,
		Args: cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ []string) error {
			interactive := f.title == ""
			if err := a.prompt(&f.title, "Title"); err != nil {
				return err
			}
			if err := a.prompt(&f.category, "Category"); err != nil {
				return err
			}
			if f.content == "" {
				body, err := GetMultiline(a.reader, "Content", a.out)
				if err != nil {
					return err
				}
				f.content = body
			}
			tags := f.tagList()
			if interactive && len(tags) == 0 {
				var err error
				if tags, err = GetTags(a.reader, a.out); err != nil {
					return err
				}
			}

			in := models.PostInput{
				Title:     f.title,
				Excerpt:   f.excerpt,
				Content:   f.content,
				Category:  f.category,
				Tags:      tags,
				ImageURL:  f.imageURL,
				ReadTime:  f.readTime,
				Published: f.published,
				Featured:  f.featured,
			}
			if f.imageFile != "" {
				url, err := a.uploadImage(ctx, f.imageFile)
				if err != nil {
					return err
				}
				in.ImageURL = url
			}

			row, err := a.content.CreatePost(ctx, in)
			if err != nil {
				return err
			}
			state := "draft"
			if row.Published {
				state = "published"
			}
			printSuccess(a.out, "Created %s post %s", state, row.ID)
			return nil
		}),
	}
	f.bind(cmd)
	return cmd
}

func newUpdateCmd(r *runner) *cobra.Command {
	f := &postFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of one of your posts",
		Long:  "Change fields of one of your posts. Only the flags given are changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := r.app
			if a == nil {
				return errNoApp
			}
			ctx := cmd.Context()
			changed := cmd.Flags().Changed

			var patch models.PostPatch
			if changed("title") {
				patch.Title = &f.title
			}
			if changed("excerpt") {
				patch.Excerpt = &f.excerpt
			}
			if changed("content") {
				patch.Content = &f.content
			}
			if changed("category") {
				patch.Category = &f.category
			}
			if changed("tag") {
				tags := f.tagList()
				patch.Tags = &tags
			}
			if changed("image") {
				patch.ImageURL = &f.imageURL
			}
			if changed("read-time") {
				patch.ReadTime = &f.readTime
			}
			if changed("publish") {
				patch.Published = &f.published
			}
			if changed("feature") {
				patch.Featured = &f.featured
			}
			if f.imageFile != "" {
				url, err := a.uploadImage(ctx, f.imageFile)
				if err != nil {
					return err
				}
				patch.ImageURL = &url
			}
			if patch.Empty() {
				return fmt.Errorf("nothing to update; see %s --help", cmd.CommandPath())
			}

			row, err := a.content.UpdatePost(ctx, args[0], patch)
			if err != nil {
				return err
			}
			printSuccess(a.out, "Updated post %s", row.ID)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newToggleCmd(r *runner, use, short string, pick func(a *App) toggleFunc, on bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, a *App, args []string) error {
			row, err := pick(a)(ctx, args[0], on)
			if err != nil {
				return err
			}
			printSuccess(a.out, "Post %s: published=%t featured=%t", row.ID, row.Published, row.Featured)
			return nil
		}),
	}
}

func newDeleteCmd(r *runner) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, a *App, args []string) error {
			if !yes {
				answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete post %s? [y/N]", args[0]), a.out)
				if err != nil {
					return err
				}
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					fmt.Fprintln(a.out, "Cancelled")
					return nil
				}
			}
			if err := a.content.DeletePost(ctx, args[0]); err != nil {
				return err
			}
			printSuccess(a.out, "Deleted post %s", args[0])
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newUploadImageCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-image <file>",
		Short: "Upload a cover image and print its public URL",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, a *App, args []string) error {
			url, err := a.uploadImage(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, url)
			return nil
		}),
	}
}
