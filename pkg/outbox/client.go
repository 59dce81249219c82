package outbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPSender posts events to the ingest endpoint. Both a fresh accept and
// a replay of an already-accepted ID come back 2xx, so the outbox can pop
// the head either way.
type HTTPSender struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPSender creates a sender for the given API origin and bearer token.
func NewHTTPSender(baseURL, token string) *HTTPSender {
	return &HTTPSender{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Send delivers one event. Any non-2xx status is an error; 4xx statuses
// are reported distinctly since retrying them cannot help.
func (s *HTTPSender) Send(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("outbox: encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/entries", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("outbox: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("outbox: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return fmt.Errorf("outbox: event rejected with status %d: %s", resp.StatusCode, snippet)
	}
	return fmt.Errorf("outbox: unexpected status %d: %s", resp.StatusCode, snippet)
}
