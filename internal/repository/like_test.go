package repository

import (
	"context"
	"regexp"
	"testing"

	"resonate/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_ToggleReviewLike_Like(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "reviews" WHERE id = $1 AND "reviews"."deleted_at" IS NULL`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO review_likes`).
		WithArgs(7, 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reviews" SET "likes"=likes + 1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "likes" FROM "reviews" WHERE id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(3))
	mock.ExpectCommit()

	state, err := repo.ToggleReviewLike(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.Equal(t, 3, state.Likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_ToggleReviewLike_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "reviews" WHERE id = $1 AND "reviews"."deleted_at" IS NULL`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	// conflict: the join row already exists, so nothing is inserted
	mock.ExpectExec(`INSERT INTO review_likes`).
		WithArgs(7, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "review_likes" WHERE user_id = $1 AND review_id = $2`)).
		WithArgs(7, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reviews" SET "likes"=likes - 1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "likes" FROM "reviews" WHERE id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(2))
	mock.ExpectCommit()

	state, err := repo.ToggleReviewLike(ctx, 7, 1)
	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.Equal(t, 2, state.Likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_ToggleReviewLike_ReviewMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "reviews" WHERE id = $1 AND "reviews"."deleted_at" IS NULL`)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	state, err := repo.ToggleReviewLike(ctx, 7, 99)
	assert.Nil(t, state)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_ToggleCommentLike_Like(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "comments" WHERE id = $1 AND "comments"."deleted_at" IS NULL`)).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO comment_likes`).
		WithArgs(7, 4).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET "likes"=likes + 1`)).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "likes" FROM "comments" WHERE id = $1`)).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(1))
	mock.ExpectCommit()

	state, err := repo.ToggleCommentLike(ctx, 7, 4)
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.Equal(t, 1, state.Likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_DeleteByComment(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comment_likes" WHERE comment_id = $1`)).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := repo.DeleteByComment(ctx, 4)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
