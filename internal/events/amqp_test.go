package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared   []string
	declareErr error
	publishErr error
	published  []amqp.Publishing
	keys       []string
	exchanges  []string
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, _, _, _ bool, _ amqp.Table) error {
	if f.declareErr != nil {
		return f.declareErr
	}
	if kind == "topic" && durable {
		f.declared = append(f.declared, name)
	}
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.exchanges = append(f.exchanges, exchange)
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublishOrderPlaced(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "storefront.orders", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"storefront.orders"}, ch.declared)

	order := &domain.Order{
		ID:         "order-1",
		Email:      "jane@example.com",
		TotalCents: 3750,
		Items:      []domain.OrderItem{{ProductID: "p1", Name: "Mug", Quantity: 2, UnitPriceCents: 1000}},
		CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, p.PublishOrderPlaced(context.Background(), order))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "storefront.orders", ch.exchanges[0])
	assert.Equal(t, RoutingKeyOrderPlaced, ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "order-1", msg.MessageId)

	var body OrderPlaced
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "order-1", body.OrderID)
	assert.Equal(t, int64(3750), body.TotalCents)
	assert.Len(t, body.Items, 1)
	assert.True(t, body.PlacedAt.Equal(order.CreatedAt))

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublishErrorsAreWrapped(t *testing.T) {
	boom := errors.New("channel closed")
	p, err := newAMQPPublisher(&fakeChannel{publishErr: boom}, "x", nil)
	require.NoError(t, err)

	err = p.PublishOrderPlaced(context.Background(), &domain.Order{ID: "o"})
	assert.ErrorIs(t, err, boom)
}

func TestDeclareFailure(t *testing.T) {
	boom := errors.New("access refused")
	_, err := newAMQPPublisher(&fakeChannel{declareErr: boom}, "x", nil)
	assert.ErrorIs(t, err, boom)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishOrderPlaced(context.Background(), &domain.Order{ID: "o"}))
	assert.NoError(t, p.Close())
}
