package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/blogsync/internal/common"
)

const (
	// PlaceholderImageURL is shown for posts stored without a cover image.
	PlaceholderImageURL = "https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=800&h=400&fit=crop"
	// DefaultReadTime is the read time, in minutes, of a post created without one.
	DefaultReadTime = 5
)

// PostRecord is a row of the posts relation.
type PostRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	AuthorID  string    `json:"author_id"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	ReadTime  int       `json:"read_time"`
	ImageURL  string    `json:"image_url"`
	Featured  bool      `json:"featured"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is the view model rendered by the client.
type Post struct {
	ID        string
	Title     string
	Excerpt   string
	Content   string
	Author    string
	AuthorID  string
	Date      time.Time
	Category  string
	Tags      []string
	ReadTime  int
	Image     string
	Featured  bool
	Published bool
}

// View maps a stored row to its view model.
func (r *PostRecord) View() *Post {
	image := r.ImageURL
	if image == "" {
		image = PlaceholderImageURL
	}
	tags := make([]string, len(r.Tags))
	copy(tags, r.Tags)
	return &Post{
		ID:        r.ID,
		Title:     r.Title,
		Excerpt:   r.Excerpt,
		Content:   r.Content,
		Author:    r.Author,
		AuthorID:  r.AuthorID,
		Date:      r.CreatedAt,
		Category:  r.Category,
		Tags:      tags,
		ReadTime:  r.ReadTime,
		Image:     image,
		Featured:  r.Featured,
		Published: r.Published,
	}
}

// PostInput is what an author submits to create a post. Author and AuthorID
// are overwritten from the session before the row is inserted.
type PostInput struct {
	Title     string
	Excerpt   string
	Content   string
	Category  string
	Tags      []string
	ImageURL  string
	ReadTime  int
	Published bool
	Featured  bool
	Author    string
	AuthorID  string
}

// Record builds the row to insert, applying defaults.
func (in PostInput) Record() *PostRecord {
	readTime := in.ReadTime
	if readTime <= 0 {
		readTime = DefaultReadTime
	}
	return &PostRecord{
		Title:     in.Title,
		Excerpt:   in.Excerpt,
		Content:   in.Content,
		Author:    in.Author,
		AuthorID:  in.AuthorID,
		Category:  in.Category,
		Tags:      NormalizeTags(in.Tags),
		ReadTime:  readTime,
		ImageURL:  in.ImageURL,
		Featured:  in.Featured,
		Published: in.Published,
	}
}

// PostPatch is a partial update of a post. Author fields are not patchable.
type PostPatch struct {
	Title     *string   `json:"title,omitempty"`
	Excerpt   *string   `json:"excerpt,omitempty"`
	Content   *string   `json:"content,omitempty"`
	Category  *string   `json:"category,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	ReadTime  *int      `json:"read_time,omitempty"`
	Published *bool     `json:"published,omitempty"`
	Featured  *bool     `json:"featured,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Excerpt == nil && p.Content == nil && p.Category == nil &&
		p.Tags == nil && p.ImageURL == nil && p.ReadTime == nil && p.Published == nil && p.Featured == nil
}

// Validate rejects an empty patch, blanking a required field and a
// non-positive read time. Errors wrap common.ErrValidation.
func (p PostPatch) Validate() error {
	if p.Empty() {
		return fmt.Errorf("%w: nothing to update", common.ErrValidation)
	}
	for _, f := range []struct {
		name string
		v    *string
	}{{"title", p.Title}, {"content", p.Content}, {"category", p.Category}} {
		if f.v != nil && strings.TrimSpace(*f.v) == "" {
			return fmt.Errorf("%w: %s must not be empty", common.ErrValidation, f.name)
		}
	}
	if p.ReadTime != nil && *p.ReadTime <= 0 {
		return fmt.Errorf("%w: read time must be positive", common.ErrValidation)
	}
	return nil
}

// Apply writes the non-nil fields of p onto r.
func (p PostPatch) Apply(r *PostRecord) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Excerpt != nil {
		r.Excerpt = *p.Excerpt
	}
	if p.Content != nil {
		r.Content = *p.Content
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Tags != nil {
		r.Tags = NormalizeTags(*p.Tags)
	}
	if p.ImageURL != nil {
		r.ImageURL = *p.ImageURL
	}
	if p.ReadTime != nil {
		r.ReadTime = *p.ReadTime
	}
	if p.Published != nil {
		r.Published = *p.Published
	}
	if p.Featured != nil {
		r.Featured = *p.Featured
	}
}

// PostQuery filters the posts relation. Nil fields do not filter.
// Results are always ordered by created_at descending.
type PostQuery struct {
	Published *bool  `json:"published,omitempty"`
	Featured  *bool  `json:"featured,omitempty"`
	Category  string `json:"category,omitempty"`
	AuthorID  string `json:"author_id,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// AddTag appends tag to tags unless it is blank or already present.
func AddTag(tags []string, tag string) []string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return tags
	}
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

// NormalizeTags trims tags and drops blanks and duplicates, keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = AddTag(out, t)
	}
	return out
}

// Bool returns a pointer to b. Handy for PostQuery and PostPatch literals.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s.
func String(s string) *string { return &s }
