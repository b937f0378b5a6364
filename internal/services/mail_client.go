package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MailClient sends transactional mail through an HTTP mail API. Failures are
// logged and swallowed by callers; mail is never on the critical path.
type MailClient struct {
	endpoint   string
	token      string
	from       string
	httpClient *http.Client
	log        *zap.Logger
}

func NewMailClient(endpoint, token, from string, log *zap.Logger) *MailClient {
	return &MailClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		from:     from,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

func (c *MailClient) Send(ctx context.Context, to, subject, text string) error {
	if c.token == "" {
		c.log.Debug("mail token not configured, skipping send", zap.String("to", to))
		return nil
	}

	body, err := json.Marshal(map[string]any{
		"from":    map[string]string{"email": c.from},
		"to":      []map[string]string{{"email": to}},
		"subject": subject,
		"text":    text,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/send", strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("mail service unavailable", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		c.log.Warn("mail send failed", zap.Int("status", resp.StatusCode), zap.String("body", string(b)))
		return fmt.Errorf("mail service returned %d", resp.StatusCode)
	}
	return nil
}
