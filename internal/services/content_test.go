package services

import (
	"fmt"
	"testing"
	"traveltales/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequiresAllFields(t *testing.T) {
	conn := setupTestDB(t)
	identity := NewIdentityService(conn)
	content := NewContentService(conn)

	alice := registerUser(t, identity, "Alice", "alice@x.com", "pw")

	_, err := content.Create(alice, "", "body", "Norway", "2024-06-01")
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = content.Create(alice, "Title", "body", "Norway", "")
	assert.ErrorIs(t, err, ErrMissingFields)

	blog, err := content.Create(alice, "Title", "body", "Norway", "2024-06-01")
	require.NoError(t, err)
	assert.NotZero(t, blog.ID)
}

func TestGetPreloadsAuthor(t *testing.T) {
	conn := setupTestDB(t)
	identity := NewIdentityService(conn)
	content := NewContentService(conn)

	alice := registerUser(t, identity, "Alice", "alice@x.com", "pw")
	blog, err := content.Create(alice, "Title", "body", "Norway", "2024-06-01")
	require.NoError(t, err)

	got, err := content.Get(blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.User.Name)

	_, err = content.Get(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateEnforcesOwnership(t *testing.T) {
	conn := setupTestDB(t)
	identity := NewIdentityService(conn)
	content := NewContentService(conn)

	alice := registerUser(t, identity, "Alice", "alice@x.com", "pw")
	bob := registerUser(t, identity, "Bob", "bob@x.com", "pw")
	blog, err := content.Create(alice, "Title", "body", "Norway", "2024-06-01")
	require.NoError(t, err)

	err = content.Update(blog.ID, bob, "Hijacked", "body", "Norway", "2024-06-01")
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = content.Update(blog.ID, alice, "Edited", "new body", "Sweden", "2024-07-01")
	require.NoError(t, err)

	got, err := content.Get(blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Title)
	assert.Equal(t, "Sweden", got.Country)
	assert.Equal(t, alice, got.UserID)
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	conn := setupTestDB(t)
	identity := NewIdentityService(conn)
	content := NewContentService(conn)

	alice := registerUser(t, identity, "Alice", "alice@x.com", "pw")
	bob := registerUser(t, identity, "Bob", "bob@x.com", "pw")
	blog, err := content.Create(alice, "Title", "body", "Norway", "2024-06-01")
	require.NoError(t, err)

	assert.ErrorIs(t, content.Delete(blog.ID, bob), ErrUnauthorized)
	assert.ErrorIs(t, content.Delete(9999, alice), ErrNotFound)

	require.NoError(t, content.Delete(blog.ID, alice))
	_, err = content.Get(blog.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPagination(t *testing.T) {
	conn := setupTestDB(t)
	identity := NewIdentityService(conn)
	content := NewContentService(conn)

	alice := registerUser(t, identity, "Alice", "alice@x.com", "pw")
	for i := 0; i < 12; i++ {
		_, err := content.Create(alice, fmt.Sprintf("Post %d", i), "body", "Norway", "2024-06-01")
		require.NoError(t, err)
	}

	total, err := content.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)

	seen := map[uint]bool{}
	var pages [][]models.Blog
	for page := 1; page <= 3; page++ {
		blogs, err := content.List(page, PageSize)
		require.NoError(t, err)
		pages = append(pages, blogs)
		for _, blog := range blogs {
			assert.False(t, seen[blog.ID], "blog %d appears on two pages", blog.ID)
			seen[blog.ID] = true
		}
	}
	assert.Len(t, pages[0], 5)
	assert.Len(t, pages[1], 5)
	assert.Len(t, pages[2], 2)

	// Newest first, which with equal timestamps means descending ids.
	assert.Equal(t, "Post 11", pages[0][0].Title)
	assert.Equal(t, "Post 0", pages[2][1].Title)

	// Pages past the end are empty, not errors.
	blogs, err := content.List(4, PageSize)
	require.NoError(t, err)
	assert.Empty(t, blogs)
}

func TestSearch(t *testing.T) {
	conn := setupTestDB(t)
	identity := NewIdentityService(conn)
	content := NewContentService(conn)

	alice := registerUser(t, identity, "Alice", "alice@x.com", "pw")
	bob := registerUser(t, identity, "Bob", "bob@x.com", "pw")
	_, err := content.Create(alice, "Fjords", "body", "Norway", "2024-06-01")
	require.NoError(t, err)
	_, err = content.Create(bob, "Alps", "body", "Switzerland", "2024-07-01")
	require.NoError(t, err)
	_, err = content.Create(bob, "Lakes", "body", "Sweden", "2024-08-01")
	require.NoError(t, err)

	// Country match is a case-insensitive substring.
	blogs, err := content.Search("nor", SearchByCountry, 1, PageSize)
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, "Norway", blogs[0].Country)

	blogs, err = content.Search("SW", SearchByCountry, 1, PageSize)
	require.NoError(t, err)
	assert.Len(t, blogs, 2)

	// Author match goes through the user's display name.
	blogs, err = content.Search("bob", SearchByAuthor, 1, PageSize)
	require.NoError(t, err)
	assert.Len(t, blogs, 2)
	for _, blog := range blogs {
		assert.Equal(t, "Bob", blog.User.Name)
	}

	// No hits is an empty slice, not an error.
	blogs, err = content.Search("atlantis", SearchByCountry, 1, PageSize)
	require.NoError(t, err)
	assert.Empty(t, blogs)
}

func TestRecentAndPopular(t *testing.T) {
	conn := setupTestDB(t)
	identity := NewIdentityService(conn)
	content := NewContentService(conn)
	reactions := NewReactionService(conn)

	alice := registerUser(t, identity, "Alice", "alice@x.com", "pw")
	bob := registerUser(t, identity, "Bob", "bob@x.com", "pw")
	cara := registerUser(t, identity, "Cara", "cara@x.com", "pw")

	var blogs []*models.Blog
	for i := 0; i < 4; i++ {
		blog, err := content.Create(alice, fmt.Sprintf("Post %d", i), "body", "Norway", "2024-06-01")
		require.NoError(t, err)
		blogs = append(blogs, blog)
	}

	recent, err := content.Recent()
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "Post 3", recent[0].Title)
	assert.Equal(t, "Post 1", recent[2].Title)

	// Post 1 gets two likes, Post 3 one; a dislike does not count.
	require.NoError(t, reactions.React(bob, blogs[1].ID, models.ReactionLike))
	require.NoError(t, reactions.React(cara, blogs[1].ID, models.ReactionLike))
	require.NoError(t, reactions.React(bob, blogs[3].ID, models.ReactionLike))
	require.NoError(t, reactions.React(cara, blogs[0].ID, models.ReactionDislike))

	popular, err := content.Popular()
	require.NoError(t, err)
	require.Len(t, popular, 3)
	assert.Equal(t, "Post 1", popular[0].Title)
	assert.Equal(t, "Post 3", popular[1].Title)
}
