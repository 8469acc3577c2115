// Package events announces finished exports and downloads to other services.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectTranscriptExported = "chatbench.transcript.exported"
	SubjectModelDownloaded    = "chatbench.model.downloaded"
)

// TranscriptExported is published after a successful sheet export.
type TranscriptExported struct {
	ConversationID string    `json:"conversation_id"`
	SheetRef       string    `json:"sheet_ref"`
	ModelName      string    `json:"model_name"`
	Rows           int       `json:"rows"`
	StartRow       int       `json:"start_row"`
	ExportedAt     time.Time `json:"exported_at"`
}

// ModelDownloaded is published after a model file lands on disk.
type ModelDownloaded struct {
	RepoID   string    `json:"repo_id"`
	Filename string    `json:"filename"`
	Path     string    `json:"path"`
	At       time.Time `json:"at"`
}

// Publisher sends JSON events to a subject.
type Publisher interface {
	Publish(subject string, data any) error
	Close()
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(string, any) error { return nil }
func (Noop) Close()                    {}

// NATSPublisher publishes events on a NATS connection.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewNATSPublisher(ctx context.Context, url, token string, logger *slog.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("chatbench"),
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
	return &NATSPublisher{conn: nc, logger: logger}, nil
}

func (p *NATSPublisher) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return p.conn.Publish(subject, payload)
}

func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("nats drain failed", "error", err)
		p.conn.Close()
	}
}
