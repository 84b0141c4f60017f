package config

import (
	"testing"

	"scraper/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSources(t *testing.T) {
	sources, err := ParseSources([]string{
		"ADDitude Magazine|https://www.additudemag.com/feed/|feed|en",
		"WebTeb|https://www.webteb.com/mental-health|listing|ar|.articles-list",
	})
	require.NoError(t, err)

	require.Len(t, sources, 2)

	assert.Equal(t, model.Source{
		Name:     "ADDitude Magazine",
		Endpoint: "https://www.additudemag.com/feed/",
		Mode:     model.ModeFeed,
		Lang:     model.LangEnglish,
	}, sources[0])

	assert.Equal(t, model.Source{
		Name:     "WebTeb",
		Endpoint: "https://www.webteb.com/mental-health",
		Mode:     model.ModeListing,
		Lang:     model.LangArabic,
		Selector: ".articles-list",
	}, sources[1])
}

func TestParseSourcesSkipsEmptyEntries(t *testing.T) {
	sources, err := ParseSources([]string{"", "  ", "A|https://a.example.com/feed|feed|en"})
	require.NoError(t, err)

	assert.Len(t, sources, 1)
}

func TestParseSourcesRejectsMalformedEntries(t *testing.T) {
	_, err := ParseSources([]string{"just a name"})
	assert.Error(t, err)

	_, err = ParseSources([]string{"A|https://a.example.com|rss-ish|en"})
	assert.Error(t, err)

	_, err = ParseSources([]string{"A|https://a.example.com|feed|fr"})
	assert.Error(t, err)
}
