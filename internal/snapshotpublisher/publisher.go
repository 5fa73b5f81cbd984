// Package snapshotpublisher publishes final account states to Kafka.
package snapshotpublisher

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/go-petr/payments-engine/internal/domain"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Writer is the subset of *kafka.Writer used by Publisher.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher emits one message per account, keyed by client id.
type Publisher struct {
	writer Writer
}

// NewWriter returns a kafka writer that keeps every message of a client on one partition.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

// New returns a Publisher writing to w.
func New(w Writer) *Publisher {
	return &Publisher{writer: w}
}

// Save publishes states in a single batch.
func (p *Publisher) Save(ctx context.Context, states []domain.AccountState) error {
	l := zerolog.Ctx(ctx)

	if len(states) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(states))

	for _, s := range states {
		value, err := json.Marshal(s)
		if err != nil {
			return err
		}

		msgs = append(msgs, kafka.Message{
			Key:   []byte(strconv.FormatUint(uint64(s.ClientID), 10)),
			Value: value,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		l.Error().Err(err).Int("messages", len(msgs)).Send()
		return err
	}

	l.Info().Int("messages", len(msgs)).Msg("account states published")

	return nil
}
