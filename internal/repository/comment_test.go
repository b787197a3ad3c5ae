package repository

import (
	"context"
	"regexp"
	"testing"

	"resonate/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	parentID := uint(4)
	comment := &models.Comment{Content: "hot take", UserID: 7, ReviewID: 2, ParentID: &parentID}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_GetChildIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	t.Run("Has Replies", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "comments" WHERE parent_id = $1 AND "comments"."deleted_at" IS NULL`)).
			WithArgs(4).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5).AddRow(6))

		ids, err := repo.GetChildIDs(ctx, 4)
		assert.NoError(t, err)
		assert.Equal(t, []uint{5, 6}, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Leaf", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "comments" WHERE parent_id = $1 AND "comments"."deleted_at" IS NULL`)).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		ids, err := repo.GetChildIDs(ctx, 5)
		assert.NoError(t, err)
		assert.Empty(t, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentRepository_GetTopLevelIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "comments" WHERE (review_id = $1 AND parent_id IS NULL) AND "comments"."deleted_at" IS NULL`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(3))

	ids, err := repo.GetTopLevelIDs(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, []uint{1, 3}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_HardDelete_AlreadyGone(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE "comments"."id" = $1`)).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	removed, err := repo.HardDelete(ctx, 42)
	assert.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListByReview_TopLevelOnly(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT comments\.\*, .* FROM "comments" WHERE \(review_id = \$1 AND parent_id IS NULL\)`).
		WithArgs(2, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id", "review_id", "replies_count", "liked"}).
			AddRow(1, "first", 7, 2, 2, false))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name"}).AddRow(7, "Nina"))

	comments, err := repo.ListByReview(ctx, 2, 10, 0, 0)
	assert.NoError(t, err)
	if assert.Len(t, comments, 1) {
		assert.Equal(t, 2, comments[0].RepliesCount)
		assert.Nil(t, comments[0].ParentID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
