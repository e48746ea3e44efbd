// Package events publishes card tap events to NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"thirdcoast.systems/cardfeed/pkg/feed"
)

const (
	StreamName    = "FEED"
	SubjectPrefix = "feed.events."
)

// Record is the published payload.
type Record struct {
	feed.Event
	PlaylistID string    `json:"playlist_id"`
	ViewerID   string    `json:"viewer_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Subject returns the subject an action is published on.
func Subject(action feed.Action) string {
	return SubjectPrefix + string(action)
}

// Publisher sends records to JetStream. A Publisher without a connection runs
// in stub mode and only logs.
type Publisher struct {
	nc *nats.Conn
	js nats.JetStreamContext
}

// Connect dials url and ensures the FEED stream. An empty url returns a stub publisher.
func Connect(ctx context.Context, url string) (*Publisher, error) {
	if url == "" {
		slog.Info("NATS_URL not set, event publisher running in stub mode")
		return &Publisher{}, nil
	}

	nc, err := nats.Connect(url,
		nats.Name("cardfeed-web"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	js, err := nc.JetStream(nats.Context(ctx))
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	p := &Publisher{nc: nc, js: js}
	if err := p.ensureStream(); err != nil {
		nc.Close()
		return nil, err
	}
	return p, nil
}

func (p *Publisher) ensureStream() error {
	_, err := p.js.StreamInfo(StreamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("stream info: %w", err)
	}
	_, err = p.js.AddStream(&nats.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectPrefix + ">"},
		Storage:  nats.FileStorage,
		MaxAge:   7 * 24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("add stream: %w", err)
	}
	return nil
}

// Stub reports whether the publisher only logs.
func (p *Publisher) Stub() bool {
	return p.js == nil
}

func (p *Publisher) Publish(ctx context.Context, rec Record) error {
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	subject := Subject(rec.Action)
	if p.Stub() {
		slog.Debug("event (stub)", "subject", subject, "payload", string(payload))
		return nil
	}

	if _, err := p.js.Publish(subject, payload, nats.Context(ctx)); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
