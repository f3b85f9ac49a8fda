package services

import (
	"testing"
	"traveltales/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactUpsert(t *testing.T) {
	conn := setupTestDB(t)
	identity := NewIdentityService(conn)
	content := NewContentService(conn)
	reactions := NewReactionService(conn)

	alice := registerUser(t, identity, "Alice", "alice@x.com", "pw")
	bob := registerUser(t, identity, "Bob", "bob@x.com", "pw")
	blog, err := content.Create(alice, "Fjords", "Cold but pretty.", "Norway", "2024-06-01")
	require.NoError(t, err)

	require.NoError(t, reactions.React(bob, blog.ID, models.ReactionLike))

	likes, err := reactions.CountReactions(blog.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.EqualValues(t, 1, likes)

	// Switching sides overwrites the old row instead of adding one.
	require.NoError(t, reactions.React(bob, blog.ID, models.ReactionDislike))

	likes, err = reactions.CountReactions(blog.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.EqualValues(t, 0, likes)

	dislikes, err := reactions.CountReactions(blog.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.EqualValues(t, 1, dislikes)

	var rows int64
	conn.Model(&models.Reaction{}).
		Where("user_id = ? AND blog_id = ?", bob, blog.ID).
		Count(&rows)
	assert.EqualValues(t, 1, rows)
}

func TestReactValidation(t *testing.T) {
	conn := setupTestDB(t)
	identity := NewIdentityService(conn)
	content := NewContentService(conn)
	reactions := NewReactionService(conn)

	alice := registerUser(t, identity, "Alice", "alice@x.com", "pw")
	blog, err := content.Create(alice, "Fjords", "Cold.", "Norway", "2024-06-01")
	require.NoError(t, err)

	assert.ErrorIs(t, reactions.React(alice, blog.ID, "meh"), ErrInvalidReaction)
	assert.ErrorIs(t, reactions.React(alice, 9999, models.ReactionLike), ErrNotFound)
}

func TestReactionOf(t *testing.T) {
	conn := setupTestDB(t)
	identity := NewIdentityService(conn)
	content := NewContentService(conn)
	reactions := NewReactionService(conn)

	alice := registerUser(t, identity, "Alice", "alice@x.com", "pw")
	bob := registerUser(t, identity, "Bob", "bob@x.com", "pw")
	blog, err := content.Create(alice, "Fjords", "Cold.", "Norway", "2024-06-01")
	require.NoError(t, err)

	mine, err := reactions.ReactionOf(bob, blog.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	require.NoError(t, reactions.React(bob, blog.ID, models.ReactionLike))

	mine, err = reactions.ReactionOf(bob, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionLike, mine)

	// The author's own view is still empty.
	mine, err = reactions.ReactionOf(alice, blog.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
