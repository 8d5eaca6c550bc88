package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/flemzord/croned/internal/job"
)

// WebhookExecutor delivers a job by POSTing a JSON payload describing it
// to a configured endpoint. Any non-2xx response is a failure.
type WebhookExecutor struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// webhookPayload is the JSON body sent for each dispatch.
type webhookPayload struct {
	JobID    string    `json:"job_id"`
	JobName  string    `json:"job_name"`
	Schedule string    `json:"schedule"`
	FiredAt  time.Time `json:"fired_at"`
}

// NewWebhook creates a WebhookExecutor posting to url. The client timeout
// is a hard cap; the per-dispatch context may cancel earlier.
func NewWebhook(url string, timeout time.Duration, logger *slog.Logger) *WebhookExecutor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookExecutor{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Name implements Executor.
func (e *WebhookExecutor) Name() string { return "webhook" }

// Run implements Executor.
func (e *WebhookExecutor) Run(ctx context.Context, j job.Job) error {
	body, err := json.Marshal(webhookPayload{
		JobID:    j.ID,
		JobName:  j.Name,
		Schedule: j.Schedule,
		FiredAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("webhook: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post %s: %w", e.url, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook: %s returned status %d", e.url, resp.StatusCode)
	}

	e.logger.Debug("executor: webhook delivered", "job", j.Name, "status", resp.StatusCode)
	return nil
}
