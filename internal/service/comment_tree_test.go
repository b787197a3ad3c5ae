package service

import (
	"context"
	"strings"
	"testing"

	"resonate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr, "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr, "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestCommentService_CreateComment(t *testing.T) {
	f := setupCascadeFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author@example.com")
	fan := f.createUser(t, "fan@example.com")
	song := f.createSong(t, "Caravan")
	review := f.createReview(t, song.ID, author.ID)

	t.Run("Success", func(t *testing.T) {
		comment, err := f.comments.CreateComment(ctx, CreateCommentInput{
			ActorID:  fan.ID,
			ReviewID: review.ID,
			Content:  "underrated track",
		})
		require.NoError(t, err)
		assert.Nil(t, comment.ParentID)
		assert.Equal(t, review.ID, comment.ReviewID)
		assert.Equal(t, fan.ID, comment.UserID)
	})

	t.Run("Empty Content", func(t *testing.T) {
		_, err := f.comments.CreateComment(ctx, CreateCommentInput{
			ActorID:  fan.ID,
			ReviewID: review.ID,
			Content:  "   ",
		})
		assertValidationError(t, err)
	})

	t.Run("Content Too Long", func(t *testing.T) {
		_, err := f.comments.CreateComment(ctx, CreateCommentInput{
			ActorID:  fan.ID,
			ReviewID: review.ID,
			Content:  strings.Repeat("x", 2001),
		})
		assertValidationError(t, err)
	})

	t.Run("Review Missing", func(t *testing.T) {
		_, err := f.comments.CreateComment(ctx, CreateCommentInput{
			ActorID:  fan.ID,
			ReviewID: 9999,
			Content:  "hello",
		})
		assertNotFoundError(t, err)
	})
}

func TestCommentService_CreateReply(t *testing.T) {
	f := setupCascadeFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author@example.com")
	fan := f.createUser(t, "fan@example.com")
	song := f.createSong(t, "Caravan")
	review := f.createReview(t, song.ID, author.ID)
	otherReview := f.createReview(t, f.createSong(t, "Eighty One").ID, author.ID)
	parent := f.createComment(t, review.ID, author.ID, nil)

	t.Run("Success", func(t *testing.T) {
		reply, err := f.comments.CreateReply(ctx, CreateReplyInput{
			ActorID:  fan.ID,
			ReviewID: review.ID,
			ParentID: parent.ID,
			Content:  "agreed",
		})
		require.NoError(t, err)
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, parent.ID, *reply.ParentID)
		// the reply carries the review id directly
		assert.Equal(t, review.ID, reply.ReviewID)
	})

	t.Run("Parent Missing", func(t *testing.T) {
		_, err := f.comments.CreateReply(ctx, CreateReplyInput{
			ActorID:  fan.ID,
			ReviewID: review.ID,
			ParentID: 9999,
			Content:  "lost",
		})
		assertNotFoundError(t, err)
	})

	t.Run("Parent Under Different Review", func(t *testing.T) {
		_, err := f.comments.CreateReply(ctx, CreateReplyInput{
			ActorID:  fan.ID,
			ReviewID: otherReview.ID,
			ParentID: parent.ID,
			Content:  "wrong thread",
		})
		assertNotFoundError(t, err)
	})
}

func TestCommentService_Listing(t *testing.T) {
	f := setupCascadeFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author@example.com")
	fan := f.createUser(t, "fan@example.com")
	song := f.createSong(t, "Solar")
	review := f.createReview(t, song.ID, author.ID)

	top1 := f.createComment(t, review.ID, author.ID, nil)
	top2 := f.createComment(t, review.ID, fan.ID, nil)
	reply1 := f.createComment(t, review.ID, fan.ID, &top1.ID)
	reply2 := f.createComment(t, review.ID, author.ID, &top1.ID)

	t.Run("Top Level Only", func(t *testing.T) {
		comments, err := f.comments.ListByReview(ctx, review.ID, 50, 0, 0)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		ids := []uint{comments[0].ID, comments[1].ID}
		assert.ElementsMatch(t, []uint{top1.ID, top2.ID}, ids)
		for _, c := range comments {
			assert.Nil(t, c.ParentID)
		}
	})

	t.Run("Reply Counts", func(t *testing.T) {
		comments, err := f.comments.ListByReview(ctx, review.ID, 50, 0, 0)
		require.NoError(t, err)
		for _, c := range comments {
			if c.ID == top1.ID {
				assert.Equal(t, 2, c.RepliesCount)
			} else {
				assert.Zero(t, c.RepliesCount)
			}
		}
	})

	t.Run("Replies In Creation Order", func(t *testing.T) {
		replies, err := f.comments.ListReplies(ctx, top1.ID, 50, 0, 0)
		require.NoError(t, err)
		require.Len(t, replies, 2)
		assert.Equal(t, reply1.ID, replies[0].ID)
		assert.Equal(t, reply2.ID, replies[1].ID)
	})

	t.Run("Missing Review", func(t *testing.T) {
		_, err := f.comments.ListByReview(ctx, 9999, 50, 0, 0)
		assertNotFoundError(t, err)
	})

	t.Run("Missing Comment", func(t *testing.T) {
		_, err := f.comments.ListReplies(ctx, 9999, 50, 0, 0)
		assertNotFoundError(t, err)
	})
}
