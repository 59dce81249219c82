package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/resilientme/backend/internal/domain"
)

// FCM sends pushes through the FCM HTTP v1 message endpoint.
type FCM struct {
	endpoint   string
	serverKey  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewFCM creates an FCM sender for the given endpoint and server key.
func NewFCM(endpoint, serverKey string, timeout time.Duration, logger *slog.Logger) *FCM {
	return &FCM{
		endpoint:   endpoint,
		serverKey:  serverKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "fcm"),
	}
}

type fcmMessage struct {
	Message struct {
		Token        string            `json:"token"`
		Notification fcmNotification   `json:"notification"`
		Data         map[string]string `json:"data,omitempty"`
	} `json:"message"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send posts one message to the endpoint. A 404 means the token has been
// unregistered and is reported as not found so callers can prune it.
func (f *FCM) Send(ctx context.Context, token string, payload domain.PushPayload) error {
	var msg fcmMessage
	msg.Message.Token = token
	msg.Message.Notification = fcmNotification{Title: payload.Title, Body: payload.Body}
	msg.Message.Data = payload.Data

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("fcm: encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("fcm: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.serverKey)

	resp, err := f.doWithRetry(ctx, req, body)
	if err != nil {
		f.log.ErrorContext(ctx, "fcm request failed", slog.String("error", err.Error()))
		return fmt.Errorf("fcm: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("fcm: token unregistered: %w", domain.ErrNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fcm: unexpected status %d: %s", resp.StatusCode, snippet)
	}

	f.log.DebugContext(ctx, "push delivered", slog.Int("status", resp.StatusCode))
	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (f *FCM) doWithRetry(ctx context.Context, req *http.Request, body []byte) (*http.Response, error) {
	resp, err := f.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	f.log.WarnContext(ctx, "fcm retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	retry := req.Clone(ctx)
	retry.Body = io.NopCloser(bytes.NewReader(body))
	return f.httpClient.Do(retry)
}
