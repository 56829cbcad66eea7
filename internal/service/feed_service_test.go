package service

import (
	"circlenet_backend/internal/model"
	"circlenet_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postIDs(posts []model.Post) []string {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestCreatePostNeedsContent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.feed.CreatePost(alice.ID, CreatePostInput{})
	assert.ErrorIs(t, err, util.ErrEmptyPost)

	_, err = env.feed.CreatePost(alice.ID, CreatePostInput{ImageURL: "/uploads/x.png"})
	assert.NoError(t, err)
}

func TestPublishRejectsForeignCircle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	bobs := env.createCircle(t, bob.ID, "Work")

	post, err := env.feed.CreatePost(alice.ID, CreatePostInput{Text: "hi"})
	require.NoError(t, err)

	err = env.feed.Publish(alice.ID, post.ID, []string{bobs.ID})
	assert.ErrorIs(t, err, util.ErrForeignCircle)
}

func TestVisibilityFrozenAtPublish(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	circle := env.createCircle(t, alice.ID, "Friends")
	connBob := env.connect(t, alice.ID, bob.ID)
	connCarol := env.connect(t, alice.ID, carol.ID)
	require.NoError(t, env.circles.AddMember(alice.ID, circle.ID, connBob.ID))

	post, err := env.feed.CreatePost(alice.ID, CreatePostInput{
		Text:      "hello",
		CircleIDs: []string{circle.ID},
	})
	require.NoError(t, err)

	// Carol joins the circle after publication; the old post stays hidden.
	require.NoError(t, env.circles.AddMember(alice.ID, circle.ID, connCarol.ID))

	bobFeed, err := env.feed.Feed(bob.ID)
	require.NoError(t, err)
	assert.Contains(t, postIDs(bobFeed), post.ID)

	carolFeed, err := env.feed.Feed(carol.ID)
	require.NoError(t, err)
	assert.NotContains(t, postIDs(carolFeed), post.ID)

	// A post published after the join is visible to both.
	later, err := env.feed.CreatePost(alice.ID, CreatePostInput{
		Text:      "later",
		CircleIDs: []string{circle.ID},
	})
	require.NoError(t, err)

	carolFeed, err = env.feed.Feed(carol.ID)
	require.NoError(t, err)
	assert.Contains(t, postIDs(carolFeed), later.ID)
}

func TestFeedDeduplicatesAcrossCircles(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	family := env.createCircle(t, alice.ID, "Family")
	friends := env.createCircle(t, alice.ID, "Friends")
	conn := env.connect(t, alice.ID, bob.ID)
	require.NoError(t, env.circles.AddMember(alice.ID, family.ID, conn.ID))
	require.NoError(t, env.circles.AddMember(alice.ID, friends.ID, conn.ID))

	post, err := env.feed.CreatePost(alice.ID, CreatePostInput{
		Text:      "both circles",
		CircleIDs: []string{family.ID, friends.ID},
	})
	require.NoError(t, err)

	feed, err := env.feed.Feed(bob.ID)
	require.NoError(t, err)

	seen := 0
	for _, id := range postIDs(feed) {
		if id == post.ID {
			seen++
		}
	}
	assert.Equal(t, 1, seen)
}

func TestFeedIncludesOwnPosts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	post, err := env.feed.CreatePost(alice.ID, CreatePostInput{Text: "unpublished"})
	require.NoError(t, err)

	feed, err := env.feed.Feed(alice.ID)
	require.NoError(t, err)
	assert.Contains(t, postIDs(feed), post.ID)
}

func TestRepublishDoesNotDuplicateFanOut(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	circle := env.createCircle(t, alice.ID, "Friends")
	conn := env.connect(t, alice.ID, bob.ID)
	require.NoError(t, env.circles.AddMember(alice.ID, circle.ID, conn.ID))

	post, err := env.feed.CreatePost(alice.ID, CreatePostInput{
		Text:      "once",
		CircleIDs: []string{circle.ID},
	})
	require.NoError(t, err)

	require.NoError(t, env.feed.Publish(alice.ID, post.ID, []string{circle.ID}))

	var count int64
	require.NoError(t, env.db.Model(&model.PostUser{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestVisibilityRemovalCascades(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	circle := env.createCircle(t, alice.ID, "Friends")
	conn := env.connect(t, alice.ID, bob.ID)
	require.NoError(t, env.circles.AddMember(alice.ID, circle.ID, conn.ID))

	publish := func(t *testing.T, text string) *model.Post {
		post, err := env.feed.CreatePost(alice.ID, CreatePostInput{
			Text:      text,
			CircleIDs: []string{circle.ID},
		})
		require.NoError(t, err)
		return post
	}
	visibleToBob := func(t *testing.T, postID string) bool {
		feed, err := env.feed.Feed(bob.ID)
		require.NoError(t, err)
		for _, id := range postIDs(feed) {
			if id == postID {
				return true
			}
		}
		return false
	}

	t.Run("membership removal", func(t *testing.T) {
		post := publish(t, "one")
		require.True(t, visibleToBob(t, post.ID))
		require.NoError(t, env.circles.RemoveMember(alice.ID, circle.ID, conn.ID))
		assert.False(t, visibleToBob(t, post.ID))
		require.NoError(t, env.circles.AddMember(alice.ID, circle.ID, conn.ID))
	})

	t.Run("unpublish", func(t *testing.T) {
		post := publish(t, "two")
		require.True(t, visibleToBob(t, post.ID))
		require.NoError(t, env.feed.Unpublish(alice.ID, post.ID, circle.ID))
		assert.False(t, visibleToBob(t, post.ID))
	})

	t.Run("connection removal", func(t *testing.T) {
		post := publish(t, "three")
		require.True(t, visibleToBob(t, post.ID))
		require.NoError(t, env.connections.Delete(alice.ID, conn.ID))
		assert.False(t, visibleToBob(t, post.ID))
	})
}

func TestCircleDeletionRemovesPostsFromFeeds(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	circle := env.createCircle(t, alice.ID, "Friends")
	conn := env.connect(t, alice.ID, bob.ID)
	require.NoError(t, env.circles.AddMember(alice.ID, circle.ID, conn.ID))

	post, err := env.feed.CreatePost(alice.ID, CreatePostInput{
		Text:      "scoped to the circle",
		CircleIDs: []string{circle.ID},
	})
	require.NoError(t, err)

	feed, err := env.feed.Feed(bob.ID)
	require.NoError(t, err)
	require.Contains(t, postIDs(feed), post.ID)

	require.NoError(t, env.circles.Delete(alice.ID, circle.ID))

	feed, err = env.feed.Feed(bob.ID)
	require.NoError(t, err)
	assert.NotContains(t, postIDs(feed), post.ID)

	// The post itself is untouched, only its visibility went away.
	own, err := env.feed.ListOwn(alice.ID)
	require.NoError(t, err)
	assert.Contains(t, postIDs(own), post.ID)
}

func TestFeedFor(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	aliceCircle := env.createCircle(t, alice.ID, "Friends")
	carolCircle := env.createCircle(t, carol.ID, "Friends")

	connAB := env.connect(t, alice.ID, bob.ID)
	connCB := env.connect(t, carol.ID, bob.ID)
	require.NoError(t, env.circles.AddMember(alice.ID, aliceCircle.ID, connAB.ID))
	require.NoError(t, env.circles.AddMember(carol.ID, carolCircle.ID, connCB.ID))

	alicePost, err := env.feed.CreatePost(alice.ID, CreatePostInput{Text: "from alice", CircleIDs: []string{aliceCircle.ID}})
	require.NoError(t, err)
	carolPost, err := env.feed.CreatePost(carol.ID, CreatePostInput{Text: "from carol", CircleIDs: []string{carolCircle.ID}})
	require.NoError(t, err)

	fromAlice, err := env.feed.FeedFor(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Contains(t, postIDs(fromAlice), alicePost.ID)
	assert.NotContains(t, postIDs(fromAlice), carolPost.ID)

	// Viewing one's own slice returns everything, published or not.
	own, err := env.feed.CreatePost(bob.ID, CreatePostInput{Text: "draft"})
	require.NoError(t, err)
	mine, err := env.feed.FeedFor(bob.ID, bob.ID)
	require.NoError(t, err)
	assert.Contains(t, postIDs(mine), own.ID)

	// Strangers see nothing.
	dave := env.createUser(t, "dave")
	stranger, err := env.feed.FeedFor(dave.ID, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, stranger)
}
