package service

import (
	"context"
	"testing"
	"time"

	"resonate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService_CreateReview(t *testing.T) {
	f := setupCascadeFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author@example.com")
	song := f.createSong(t, "Birdland")

	t.Run("Success", func(t *testing.T) {
		review, err := f.reviews.CreateReview(ctx, CreateReviewInput{
			ActorID: author.ID,
			SongID:  song.ID,
			Content: "a landmark recording",
			Rating:  5,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, review.Rating)
		assert.Equal(t, author.ID, review.UserID)
	})

	t.Run("Duplicate Review Conflicts", func(t *testing.T) {
		_, err := f.reviews.CreateReview(ctx, CreateReviewInput{
			ActorID: author.ID,
			SongID:  song.ID,
			Content: "second take",
			Rating:  3,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("Rating Out Of Range", func(t *testing.T) {
		_, err := f.reviews.CreateReview(ctx, CreateReviewInput{
			ActorID: author.ID,
			SongID:  song.ID,
			Content: "meh",
			Rating:  6,
		})
		assertValidationError(t, err)
	})

	t.Run("Song Missing", func(t *testing.T) {
		_, err := f.reviews.CreateReview(ctx, CreateReviewInput{
			ActorID: author.ID,
			SongID:  9999,
			Content: "ghost song",
			Rating:  2,
		})
		assertNotFoundError(t, err)
	})
}

func TestReviewService_UpdateReview_OwnerOnly(t *testing.T) {
	f := setupCascadeFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author@example.com")
	stranger := f.createUser(t, "stranger@example.com")
	song := f.createSong(t, "Chameleon")
	review := f.createReview(t, song.ID, author.ID)

	_, err := f.reviews.UpdateReview(ctx, UpdateReviewInput{
		ActorID:  stranger.ID,
		ReviewID: review.ID,
		Content:  "hijacked",
		Rating:   1,
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	updated, err := f.reviews.UpdateReview(ctx, UpdateReviewInput{
		ActorID:  author.ID,
		ReviewID: review.ID,
		Content:  "revisited after a few listens",
		Rating:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)
}

func TestReviewService_GetMine(t *testing.T) {
	f := setupCascadeFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author@example.com")
	song := f.createSong(t, "Spain")
	review := f.createReview(t, song.ID, author.ID)

	mine, err := f.reviews.GetMine(ctx, author.ID, song.ID)
	require.NoError(t, err)
	assert.Equal(t, review.ID, mine.ID)

	_, err = f.reviews.GetMine(ctx, author.ID, 9999)
	assertNotFoundError(t, err)
}

func TestReviewService_Feed_FollowedAuthorsNewestFirst(t *testing.T) {
	f := setupCascadeFixture(t)
	ctx := context.Background()

	reader := f.createUser(t, "reader@example.com")
	followed := f.createUser(t, "followed@example.com")
	ignored := f.createUser(t, "ignored@example.com")

	_, err := f.users.ToggleFollow(ctx, reader.ID, followed.ID)
	require.NoError(t, err)

	older := &models.Review{SongID: f.createSong(t, "One").ID, UserID: followed.ID, Content: "old", Rating: 3, CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, f.db.Create(older).Error)
	newer := f.createReview(t, f.createSong(t, "Two").ID, followed.ID)
	f.createReview(t, f.createSong(t, "Three").ID, ignored.ID)

	feed, err := f.reviews.Feed(ctx, reader.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, newer.ID, feed[0].ID)
	assert.Equal(t, older.ID, feed[1].ID)
	// song and author come preloaded
	assert.NotEmpty(t, feed[0].Song.Title)
	assert.NotEmpty(t, feed[0].User.Email)
}
