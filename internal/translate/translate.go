package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is the public web-translation endpoint; no key required,
// but it rate-limits aggressively, hence the inter-chunk pause.
const DefaultEndpoint = "https://translate.googleapis.com/translate_a/single"

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

// Service translates text between two languages. Translate never returns an
// error: any failure falls back to the original text, so a degraded
// translation dependency still lets the article through.
type Service struct {
	client         *http.Client
	endpoint       string
	chunkThreshold int
	chunkPause     time.Duration
	callTimeout    time.Duration
}

func New(endpoint string, chunkThreshold int, chunkPause, callTimeout time.Duration) *Service {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Service{
		client:         &http.Client{Timeout: callTimeout},
		endpoint:       endpoint,
		chunkThreshold: chunkThreshold,
		chunkPause:     chunkPause,
		callTimeout:    callTimeout,
	}
}

func (s *Service) Translate(ctx context.Context, text, from, to string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	if len(text) <= s.chunkThreshold {
		out, err := s.translateChunk(ctx, text, from, to)
		if err != nil {
			log.Printf("ERROR: translation failed, keeping original: %v", err)
			return text
		}

		return out
	}

	// Long text goes paragraph by paragraph so no single request exceeds
	// the dependency's size limit; separators are preserved on rejoin.
	paragraphs := strings.Split(text, "\n\n")
	out := make([]string, 0, len(paragraphs))

	for i, p := range paragraphs {
		if strings.TrimSpace(p) == "" {
			out = append(out, p)
			continue
		}

		translated, err := s.translateChunk(ctx, p, from, to)
		if err != nil {
			log.Printf("ERROR: translation failed for chunk %d, keeping original: %v", i, err)
			translated = p
		}

		out = append(out, translated)

		if i < len(paragraphs)-1 {
			select {
			case <-ctx.Done():
				out = append(out, paragraphs[i+1:]...)
				return strings.Join(out, "\n\n")
			case <-time.After(s.chunkPause):
			}
		}
	}

	return strings.Join(out, "\n\n")
}

func (s *Service) translateChunk(ctx context.Context, text, from, to string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("dt", "t")
	query.Set("sl", from)
	query.Set("tl", to)
	query.Set("q", text)

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, s.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: status %d", resp.StatusCode)
	}

	var payload []any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	return joinSegments(payload)
}

// joinSegments flattens the endpoint's [[["segment","source",...],...],...]
// response shape into one string.
func joinSegments(payload []any) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("translate: empty response")
	}

	segments, ok := payload[0].([]any)
	if !ok {
		return "", fmt.Errorf("translate: unexpected response shape")
	}

	var b strings.Builder

	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}

		if text, ok := parts[0].(string); ok {
			b.WriteString(text)
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("translate: no segments in response")
	}

	return b.String(), nil
}
