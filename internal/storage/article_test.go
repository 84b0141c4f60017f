package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"scraper/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStorage(t *testing.T) (*ArticlePostgresStorage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewArticleStorage(sqlx.NewDb(db, "sqlmock")), mock
}

func articleColumns() []string {
	return []string{"id", "source_name", "source_url", "slug", "image_url", "title_ar", "title_en", "content_ar", "content_en", "created_at"}
}

func TestByURLReturnsArticle(t *testing.T) {
	st, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT \* FROM articles WHERE source_url = \$1`).
		WithArgs("https://example.com/a").
		WillReturnRows(sqlmock.NewRows(articleColumns()).
			AddRow(7, "ADDitude Magazine", "https://example.com/a", "slug-1", "img", "عنوان", "Title", "نص", "Body", time.Now()))

	article, err := st.ByURL(context.Background(), "https://example.com/a")
	require.NoError(t, err)

	assert.Equal(t, int64(7), article.ID)
	assert.Equal(t, "Title", article.TitleEn)
	assert.Equal(t, "عنوان", article.TitleAr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByURLReportsMissingArticle(t *testing.T) {
	st, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT \* FROM articles WHERE source_url = \$1`).
		WithArgs("https://example.com/missing").
		WillReturnError(sql.ErrNoRows)

	_, err := st.ByURL(context.Background(), "https://example.com/missing")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertReturnsArticleID(t *testing.T) {
	st, mock := newMockStorage(t)

	article := model.Article{
		SourceName: "WebTeb",
		SourceURL:  "https://www.webteb.com/x",
		Slug:       "slug-2",
		ImageURL:   "img",
		TitleAr:    "عنوان",
		TitleEn:    "Title",
		ContentAr:  "نص",
		ContentEn:  "Body",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectQuery(`INSERT INTO articles .+ ON CONFLICT \(source_url\) DO UPDATE`).
		WithArgs(
			article.SourceName,
			article.SourceURL,
			article.Slug,
			article.ImageURL,
			article.TitleAr,
			article.TitleEn,
			article.ContentAr,
			article.ContentEn,
			article.CreatedAt,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	id, err := st.Upsert(context.Background(), article)
	require.NoError(t, err)

	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsurePublishIndexInsertsWhenMissing(t *testing.T) {
	st, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT id FROM content_items WHERE external_article_id = \$1`).
		WithArgs(int64(11)).
		WillReturnError(sql.ErrNoRows)

	mock.ExpectExec(`INSERT INTO content_items`).
		WithArgs(int64(11), "external_article", "slug-2", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := st.EnsurePublishIndex(context.Background(), 11, "slug-2")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsurePublishIndexSkipsExistingRow(t *testing.T) {
	st, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT id FROM content_items WHERE external_article_id = \$1`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	err := st.EnsurePublishIndex(context.Background(), 11, "slug-2")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
