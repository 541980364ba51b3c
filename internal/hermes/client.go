// Package hermes carries visualization events over NATS.
package hermes

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	// SubjectRequested carries submissions from other services.
	SubjectRequested = "journalviz.visualization.requested"
	// SubjectRendered is the NATS subject for completed renders.
	SubjectRendered = "journalviz.visualization.rendered"
)

// RenderedEvent describes one completed render. It never carries journal
// text, only metadata about the drawing.
type RenderedEvent struct {
	ID             string    `json:"id"`
	Mode           string    `json:"mode"`
	VisualStandard string    `json:"visualStandard"`
	InputStyle     string    `json:"inputStyle"`
	ItemCount      int       `json:"itemCount"`
	SummarySource  string    `json:"summarySource"`
	ProgramBytes   int       `json:"programBytes"`
	RenderedAt     time.Time `json:"renderedAt"`
}

type Client struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func NewClient(url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.Name("journalviz"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

// PublishRendered announces a completed render on SubjectRendered.
func (c *Client) PublishRendered(ev RenderedEvent) error {
	if err := c.Publish(SubjectRendered, ev); err != nil {
		return fmt.Errorf("publish %s: %w", SubjectRendered, err)
	}
	return nil
}

func (c *Client) Subscribe(subject string, handler func(subject string, data []byte)) error {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.subs = append(c.subs, sub)
	c.logger.Info("subscribed", "subject", subject)
	return nil
}

// Connected reports whether the underlying connection is currently up.
func (c *Client) Connected() bool {
	return c.conn.IsConnected()
}

func (c *Client) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}
