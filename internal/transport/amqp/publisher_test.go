package amqp

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	kind       string
	declareErr error
	publishErr error
	sent       []published
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, _, _, _ bool, _ amqp.Table) error {
	f.declared = append(f.declared, name)
	f.kind = kind
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p, err := NewPublisher(ch, Config{Exchange: "growth.events"})
	require.NoError(t, err)
	assert.Equal(t, []string{"growth.events"}, ch.declared)
	assert.Equal(t, amqp.ExchangeTopic, ch.kind)

	createdAt := time.Date(2024, time.July, 10, 9, 0, 0, 0, time.UTC)
	err = p.Publish(context.Background(), &contracts.OutboxEvent{
		EventID:     "e-1",
		EventType:   "report.generated",
		AggregateID: "r-1",
		Payload:     `{"report_id":"r-1"}`,
		CreatedAt:   createdAt,
	})
	require.NoError(t, err)

	require.Len(t, ch.sent, 1)
	sent := ch.sent[0]
	assert.Equal(t, "growth.events", sent.exchange)
	assert.Equal(t, "report.generated", sent.key)
	assert.Equal(t, "e-1", sent.msg.MessageId)
	assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)
	assert.Equal(t, "application/json", sent.msg.ContentType)
	assert.Equal(t, createdAt, sent.msg.Timestamp)
	assert.Equal(t, "r-1", sent.msg.Headers["aggregate_id"])
	assert.JSONEq(t, `{"report_id":"r-1"}`, string(sent.msg.Body))

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
	assert.ErrorIs(t, p.Publish(context.Background(), &contracts.OutboxEvent{}), ErrClosed)
}

func TestPublisher_Errors(t *testing.T) {
	_, err := NewPublisher(&fakeChannel{}, Config{})
	assert.Error(t, err)

	ch := &fakeChannel{declareErr: errors.New("access refused")}
	_, err = NewPublisher(ch, Config{Exchange: "growth.events", ExchangeType: amqp.ExchangeFanout})
	assert.ErrorContains(t, err, "access refused")
	assert.Equal(t, amqp.ExchangeFanout, ch.kind)
	assert.True(t, ch.closed)

	ch = &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := NewPublisher(ch, Config{Exchange: "growth.events"})
	require.NoError(t, err)
	err = p.Publish(context.Background(), &contracts.OutboxEvent{EventID: "e-9"})
	assert.ErrorContains(t, err, "e-9")
}
