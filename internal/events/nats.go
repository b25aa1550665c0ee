package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

var (
	_ Publisher = (*NatsPublisher)(nil)
	_ Publisher = NopPublisher{}
)

// Conn is the subset of *nats.Conn the publisher needs
type Conn interface {
	Publish(subj string, data []byte) error
	Drain() error
}

type NatsPublisher struct {
	conn Conn
}

// Connect dials the broker. An empty token means no auth.
func Connect(url, token string) (*NatsPublisher, error) {
	opts := []nats.Option{
		nats.Name("wallet-ledger"),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return NewNatsPublisher(conn), nil
}

func NewNatsPublisher(conn Conn) *NatsPublisher {
	return &NatsPublisher{conn: conn}
}

func (p *NatsPublisher) Publish(ctx context.Context, subject string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", subject, err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection
func (p *NatsPublisher) Close() error {
	return p.conn.Drain()
}
