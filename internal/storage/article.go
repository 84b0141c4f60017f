package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"scraper/internal/model"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("not found")

type ArticlePostgresStorage struct {
	db *sqlx.DB
}

type dbArticle struct {
	ID         int64          `db:"id"`
	SourceName string         `db:"source_name"`
	SourceURL  string         `db:"source_url"`
	Slug       string         `db:"slug"`
	ImageURL   sql.NullString `db:"image_url"`
	TitleAr    sql.NullString `db:"title_ar"`
	TitleEn    sql.NullString `db:"title_en"`
	ContentAr  sql.NullString `db:"content_ar"`
	ContentEn  sql.NullString `db:"content_en"`
	CreatedAt  time.Time      `db:"created_at"`
}

func NewArticleStorage(db *sqlx.DB) *ArticlePostgresStorage {
	return &ArticlePostgresStorage{
		db: db,
	}
}

// Upsert writes the article keyed on source_url: insert new, replace the
// prior record on conflict. Safe to re-run for the same URL.
func (s *ArticlePostgresStorage) Upsert(ctx context.Context, article model.Article) (int64, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var id int64

	row := conn.QueryRowxContext(
		ctx,
		`INSERT INTO articles (source_name, source_url, slug, image_url, title_ar, title_en, content_ar, content_en, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (source_url) DO UPDATE SET
				source_name = EXCLUDED.source_name,
				slug = EXCLUDED.slug,
				image_url = EXCLUDED.image_url,
				title_ar = EXCLUDED.title_ar,
				title_en = EXCLUDED.title_en,
				content_ar = EXCLUDED.content_ar,
				content_en = EXCLUDED.content_en
			RETURNING id;`,
		article.SourceName,
		article.SourceURL,
		article.Slug,
		article.ImageURL,
		article.TitleAr,
		article.TitleEn,
		article.ContentAr,
		article.ContentEn,
		article.CreatedAt,
	)

	if err := row.Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

// ByURL is the dedup gate lookup: the persisted article for a canonical
// URL, or ErrNotFound.
func (s *ArticlePostgresStorage) ByURL(ctx context.Context, sourceURL string) (*model.Article, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var article dbArticle

	err = conn.GetContext(ctx, &article, `SELECT * FROM articles WHERE source_url = $1;`, sourceURL)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	result := model.Article{
		ID:         article.ID,
		SourceName: article.SourceName,
		SourceURL:  article.SourceURL,
		Slug:       article.Slug,
		ImageURL:   article.ImageURL.String,
		TitleAr:    article.TitleAr.String,
		TitleEn:    article.TitleEn.String,
		ContentAr:  article.ContentAr.String,
		ContentEn:  article.ContentEn.String,
		CreatedAt:  article.CreatedAt,
	}

	return &result, nil
}
