package fetcher

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"scraper/internal/model"
)

const maxSlugLen = 50

var nonWord = regexp.MustCompile(`[^\w ]+`)

// assemble merges the extracted and translated pieces into the final
// bilingual record. Title and body are translated independently so a
// failure on one never blanks the other.
func (f *Fetcher) assemble(ctx context.Context, src Source, item model.Item, body, image string) model.Article {
	article := model.Article{
		SourceName: src.Name(),
		SourceURL:  item.Link,
		Slug:       Slugify(item.Title, time.Now()),
		ImageURL:   image,
		CreatedAt:  time.Now().UTC(),
	}

	if src.Lang() == model.LangArabic {
		article.TitleAr = item.Title
		article.ContentAr = body
		article.TitleEn = f.translator.Translate(ctx, item.Title, model.LangArabic, model.LangEnglish)
		article.ContentEn = f.translator.Translate(ctx, body, model.LangArabic, model.LangEnglish)
	} else {
		article.TitleEn = item.Title
		article.ContentEn = body
		article.TitleAr = f.translator.Translate(ctx, item.Title, model.LangEnglish, model.LangArabic)
		article.ContentAr = f.translator.Translate(ctx, body, model.LangEnglish, model.LangArabic)
	}

	return article
}

// Slugify builds a URL-safe slug from the title, with a timestamp suffix so
// similar titles never collide.
func Slugify(title string, now time.Time) string {
	slug := strings.ToLower(title)
	slug = nonWord.ReplaceAllString(slug, "")
	slug = strings.Join(strings.Fields(slug), "-")

	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}

	return slug + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}
