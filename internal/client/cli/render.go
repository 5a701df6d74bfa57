package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/fatih/color"
)

const dateLayout = "2006-01-02"

var (
	heading = color.New(color.FgCyan, color.Bold)
	muted   = color.New(color.Faint)
	success = color.New(color.FgGreen)
	badge   = color.New(color.FgYellow)
)

func printHeading(w io.Writer, format string, args ...any) {
	heading.Fprintf(w, format+"\n", args...)
}

func printSuccess(w io.Writer, format string, args ...any) {
	success.Fprintf(w, format+"\n", args...)
}

func flags(p *models.Post) string {
	var out []string
	if !p.Published {
		out = append(out, "draft")
	}
	if p.Featured {
		out = append(out, "featured")
	}
	return strings.Join(out, ",")
}

func printPosts(w io.Writer, title string, posts []*models.Post) {
	printHeading(w, "%s (%d)", title, len(posts))
	if len(posts) == 0 {
		muted.Fprintln(w, "No posts found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tTITLE\tAUTHOR\tFLAGS")
	for _, p := range posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Date.Format(dateLayout), p.Category, truncate(p.Title, 40), p.Author, flags(p))
	}
	tw.Flush()
}

func printPost(w io.Writer, p *models.Post) {
	printHeading(w, "%s", p.Title)
	muted.Fprintf(w, "%s · %s · %s · %d min read\n", p.Author, p.Date.Format(dateLayout), p.Category, p.ReadTime)
	if f := flags(p); f != "" {
		badge.Fprintf(w, "[%s]\n", f)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(p.Tags, ", "))
	}
	fmt.Fprintf(w, "Image: %s\n", p.Image)
	if p.Excerpt != "" {
		fmt.Fprintf(w, "\n%s\n", p.Excerpt)
	}
	fmt.Fprintf(w, "\n%s\n", p.Content)
}

func printCategories(w io.Writer, cats []*models.Category) {
	printHeading(w, "Categories (%d)", len(cats))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPOSTS\tCOLOR")
	for _, c := range cats {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", c.Name, c.Count, c.Color)
	}
	tw.Flush()
}

func printProfile(w io.Writer, p *models.Profile) {
	name := p.DisplayName
	if name == "" {
		name = p.ID
	}
	printHeading(w, "%s", name)
	for _, f := range []struct{ label, value string }{
		{"Bio", p.Bio},
		{"Website", p.Website},
		{"Location", p.Location},
		{"Twitter", p.TwitterHandle},
		{"Avatar", p.AvatarURL},
	} {
		if f.value != "" {
			fmt.Fprintf(w, "%-9s %s\n", f.label+":", f.value)
		}
	}
	muted.Fprintf(w, "Updated %s\n", p.UpdatedAt.Format(dateLayout))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
