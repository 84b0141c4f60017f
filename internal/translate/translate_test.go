package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gtxServer mimics the translation endpoint: it answers with the request
// text wrapped in "tr(...)", split across two response segments.
func gtxServer(t *testing.T, fail func(q string) bool) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")

		if fail != nil && fail(q) {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}

		payload := []any{
			[]any{
				[]any{"tr(" + q, q},
				[]any{")", nil},
			},
		}

		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
}

func newTestService(endpoint string, chunkThreshold int) *Service {
	return New(endpoint, chunkThreshold, time.Millisecond, time.Second)
}

func TestTranslateShortText(t *testing.T) {
	srv := gtxServer(t, nil)
	defer srv.Close()

	s := newTestService(srv.URL, 2000)

	got := s.Translate(context.Background(), "ADHD masking", "en", "ar")

	assert.Equal(t, "tr(ADHD masking)", got)
}

func TestTranslateEmptyTextPassesThrough(t *testing.T) {
	s := newTestService("http://127.0.0.1:0", 2000)

	assert.Equal(t, "  ", s.Translate(context.Background(), "  ", "en", "ar"))
}

func TestTranslateChunksLongTextByParagraph(t *testing.T) {
	srv := gtxServer(t, nil)
	defer srv.Close()

	s := newTestService(srv.URL, 100)

	first := strings.Repeat("a", 1200)
	second := strings.Repeat("b", 900)
	third := strings.Repeat("c", 900)
	text := first + "\n\n" + second + "\n\n" + third

	got := s.Translate(context.Background(), text, "en", "ar")

	paragraphs := strings.Split(got, "\n\n")
	require.Len(t, paragraphs, 3, "chunking must preserve paragraph structure")
	assert.Equal(t, "tr("+first+")", paragraphs[0])
	assert.Equal(t, "tr("+second+")", paragraphs[1])
	assert.Equal(t, "tr("+third+")", paragraphs[2])
}

func TestTranslateFallsBackOnFailure(t *testing.T) {
	srv := gtxServer(t, func(string) bool { return true })
	defer srv.Close()

	s := newTestService(srv.URL, 2000)

	got := s.Translate(context.Background(), "original text", "en", "ar")

	assert.Equal(t, "original text", got)
}

func TestTranslateFallsBackOnUnreachableEndpoint(t *testing.T) {
	s := newTestService("http://127.0.0.1:1", 2000)

	got := s.Translate(context.Background(), "original text", "en", "ar")

	assert.Equal(t, "original text", got)
}

func TestTranslateChunkFailureOnlyAffectsThatChunk(t *testing.T) {
	srv := gtxServer(t, func(q string) bool { return strings.Contains(q, "bbb") })
	defer srv.Close()

	s := newTestService(srv.URL, 10)

	text := "aaaaaaaaaaaa\n\nbbbbbbbbbbbb\n\ncccccccccccc"

	got := s.Translate(context.Background(), text, "en", "ar")

	paragraphs := strings.Split(got, "\n\n")
	require.Len(t, paragraphs, 3)
	assert.Equal(t, "tr(aaaaaaaaaaaa)", paragraphs[0])
	assert.Equal(t, "bbbbbbbbbbbb", paragraphs[1], "failed chunk keeps its original text")
	assert.Equal(t, "tr(cccccccccccc)", paragraphs[2])
}

func TestJoinSegmentsRejectsMalformedPayload(t *testing.T) {
	_, err := joinSegments([]any{})
	assert.Error(t, err)

	_, err = joinSegments([]any{"not a list"})
	assert.Error(t, err)
}
