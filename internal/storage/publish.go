package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const externalArticleType = "external_article"

// EnsurePublishIndex inserts the content_items row that makes an article
// visible downstream. The existence check keeps a retried insert from
// producing duplicate index rows, so a later repair pass can call this with
// just the article id.
func (s *ArticlePostgresStorage) EnsurePublishIndex(ctx context.Context, articleID int64, slug string) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	var id int64

	err = conn.GetContext(ctx, &id, `SELECT id FROM content_items WHERE external_article_id = $1;`, articleID)

	if err == nil {
		return nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	_, execErr := conn.ExecContext(
		ctx,
		`INSERT INTO content_items (external_article_id, content_type, slug, is_published, published_at)
			VALUES ($1, $2, $3, $4, $5);`,
		articleID,
		externalArticleType,
		slug,
		true,
		time.Now().UTC(),
	)

	return execErr
}
