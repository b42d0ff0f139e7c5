package cartsync

import (
	"context"
	"encoding/json"
	"errors"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/trovekart/storefront-backend/pkg/enums"
	"github.com/trovekart/storefront-backend/pkg/logger"
	"github.com/trovekart/storefront-backend/pkg/outbox"
	"github.com/trovekart/storefront-backend/pkg/outbox/payloads"
)

// Consumer keeps the cart view current by reloading carts on cart.changed.
type Consumer struct {
	view         *View
	carts        cartLoader
	subscription *pubsub.Subscriber
	logg         *logger.Logger
}

// NewConsumer constructs a consumer that watches the domain subscription.
func NewConsumer(view *View, carts cartLoader, subscription *pubsub.Subscriber, logg *logger.Logger) (*Consumer, error) {
	if view == nil {
		return nil, errors.New("cart view is required")
	}
	if carts == nil {
		return nil, errors.New("cart loader is required")
	}
	if subscription == nil {
		return nil, errors.New("subscription is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Consumer{view: view, carts: carts, subscription: subscription, logg: logg}, nil
}

// Run processes messages until the context is canceled or the subscription errors.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if c.Handle(ctx, msg.Attributes["event_type"], msg.Data) {
			msg.Ack()
			return
		}
		msg.Nack()
	})
}

// Handle applies a single event. It returns true when the message should be
// acked; malformed payloads are acked too since a redelivery cannot fix them.
func (c *Consumer) Handle(ctx context.Context, eventType string, data []byte) bool {
	if eventType != string(enums.EventCartChanged) {
		return true
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.logg.Error(ctx, "cart.changed envelope unmarshal failed", err)
		return true
	}
	var event payloads.CartChangedEvent
	if err := json.Unmarshal(envelope.Data, &event); err != nil {
		c.logg.Error(ctx, "cart.changed payload unmarshal failed", err)
		return true
	}
	if event.UserID == uuid.Nil {
		c.logg.Warn(ctx, "cart.changed without user id, skipping")
		return true
	}

	lines, err := c.carts.ListForUser(ctx, event.UserID)
	if err != nil {
		c.logg.Error(c.logg.WithUserID(ctx, event.UserID.String()), "cart reload failed", err)
		return false
	}

	c.view.Replace(event.UserID, toLines(lines))
	return true
}
