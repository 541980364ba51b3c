// Package slack posts batch reports to a Slack channel.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultPostMessageURL = "https://slack.com/api/chat.postMessage"

type Poster struct {
	token   string
	channel string
	client  *http.Client
	logger  *slog.Logger
	apiURL  string
}

func NewPoster(token, channel string, logger *slog.Logger) *Poster {
	return &Poster{
		token:   token,
		channel: channel,
		client:  &http.Client{Timeout: 10 * time.Second},
		apiURL:  defaultPostMessageURL,
		logger:  logger,
	}
}

// PostReport posts a preformatted report as a code block and returns the
// message timestamp.
func (p *Poster) PostReport(ctx context.Context, title, report string) (string, error) {
	text := fmt.Sprintf("*%s*\n```\n%s```", title, report)

	body, err := json.Marshal(map[string]any{
		"channel": p.channel,
		"text":    text,
		"blocks": []map[string]any{
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": text,
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal slack payload: %w", err)
	}

	ts, err := p.post(ctx, body)
	if err != nil {
		return "", err
	}
	p.logger.Info("posted report to slack", "ts", ts, "channel", p.channel)
	return ts, nil
}

// PostThread posts a threaded reply to a message.
func (p *Poster) PostThread(ctx context.Context, threadTS, text string) error {
	body, err := json.Marshal(map[string]any{
		"channel":   p.channel,
		"thread_ts": threadTS,
		"text":      text,
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = p.post(ctx, body)
	return err
}

func (p *Poster) post(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("slack post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var slackResp struct {
		OK    bool   `json:"ok"`
		TS    string `json:"ts"`
		Error string `json:"error,omitempty"`
	}
	if err := json.Unmarshal(respBody, &slackResp); err != nil {
		return "", fmt.Errorf("parse slack response (status %d): %w", resp.StatusCode, err)
	}
	if !slackResp.OK {
		return "", fmt.Errorf("slack error: %s", slackResp.Error)
	}
	return slackResp.TS, nil
}
