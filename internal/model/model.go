package model

import (
	"time"
)

const (
	ModeFeed    = "feed"
	ModeListing = "listing"
)

const (
	LangArabic  = "ar"
	LangEnglish = "en"
)

type Source struct {
	Name     string
	Endpoint string
	Mode     string // feed | listing
	Lang     string // ar | en
	Selector string // listing container, optional
}

// Item is a discovered (title, link) pair, alive for one pipeline pass only.
type Item struct {
	Title string
	Link  string
}

type Article struct {
	ID         int64
	SourceName string
	SourceURL  string // canonical absolute URL, unique per article
	Slug       string
	ImageURL   string
	TitleAr    string
	TitleEn    string
	ContentAr  string
	ContentEn  string
	CreatedAt  time.Time
}

type PublishIndex struct {
	ID          int64
	ArticleID   int64
	ContentType string
	Slug        string
	IsPublished bool
	PublishedAt time.Time
}
