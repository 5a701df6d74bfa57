package content

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/blogsync/internal/client/memstore"
	"github.com/dmitrijs2005/blogsync/internal/client/store"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failing wraps a store and injects errors into its list and count calls.
// Set the error fields only while no fetch is running.
type failing struct {
	store.Client
	listErr  error
	countErr error
}

func (f *failing) ListPosts(ctx context.Context, q models.PostQuery) ([]*models.PostRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.Client.ListPosts(ctx, q)
}

func (f *failing) CountPosts(ctx context.Context, q models.PostQuery) (int, error) {
	if f.countErr != nil && q.Category == "Design" {
		return 0, f.countErr
	}
	return f.Client.CountPosts(ctx, q)
}

func TestFetchCategories_OrderedWithCounts(t *testing.T) {
	s, _ := startSync(t)
	cats := s.Categories()
	require.Len(t, cats, len(memstore.DefaultCategories))
	for i, c := range cats {
		assert.Equal(t, memstore.DefaultCategories[i].Name, c.Name)
		assert.Equal(t, memstore.DefaultCategories[i].Color, c.Color)
		assert.Zero(t, c.Count)
	}
}

func TestCategoryCountConsistency(t *testing.T) {
	s, _ := startSync(t)
	ctx := context.Background()
	signUp(t, s, "a@x.com")
	create(t, s, input("old", "Design", true))
	create(t, s, input("draft", "Design", false))

	before := countOf(s, "Design")
	assert.Equal(t, 1, before)

	row := create(t, s, input("new", "Design", true))
	assert.Equal(t, before+1, countOf(s, "Design"))

	require.NoError(t, s.DeletePost(ctx, row.ID))
	assert.Equal(t, before, countOf(s, "Design"))
}

func TestCategoryCount_FollowsPublishToggle(t *testing.T) {
	s, _ := startSync(t)
	ctx := context.Background()
	signUp(t, s, "a@x.com")
	row := create(t, s, input("t", "Lifestyle", false))
	assert.Equal(t, 0, countOf(s, "Lifestyle"))

	_, err := s.SetPublished(ctx, row.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, countOf(s, "Lifestyle"))
}

func TestFetchCategories_CountFailureFailsRefresh(t *testing.T) {
	f := &failing{Client: newStore()}
	s := startWith(t, f)
	before := s.Categories()
	require.Len(t, before, len(memstore.DefaultCategories))

	f.countErr = errBoom
	err := s.FetchCategories(context.Background())
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, before, s.Categories())
}
