package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dentalmart/shop/internal/models"
	"github.com/dentalmart/shop/internal/mykafka"
	"github.com/dentalmart/shop/internal/repo"
	"github.com/dentalmart/shop/pkg/logging"
)

const (
	TypeOrderCreated   = "order_created"
	TypeOrderConfirmed = "order_confirmed"
)

type NewOrderEvent struct {
	Type         string `json:"type"`
	OrderID      uint   `json:"order_id"`
	UserID       uint   `json:"user_id"`
	IsFirstOrder bool   `json:"is_first_order"`
}

type OrderConfirmedEvent struct {
	Type    string `json:"type"`
	OrderID uint   `json:"order_id"`
	UserID  uint   `json:"user_id"`
}

// Dispatcher receives lifecycle events after the triggering write has
// committed. Delivery is fire-and-forget: failures are logged, never
// propagated back into the request.
type Dispatcher interface {
	NotifyNewOrder(ctx context.Context, orderID, userID uint, isFirstOrder bool)
	NotifyOrderConfirmed(ctx context.Context, orderID, userID uint)
}

// KafkaDispatcher records a notification row and publishes the event to the
// order_events topic.
type KafkaDispatcher struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

func (d *KafkaDispatcher) NotifyNewOrder(ctx context.Context, orderID, userID uint, isFirstOrder bool) {
	event := NewOrderEvent{
		Type:         TypeOrderCreated,
		OrderID:      orderID,
		UserID:       userID,
		IsFirstOrder: isFirstOrder,
	}
	d.dispatch(ctx, userID, TypeOrderCreated, event)
}

func (d *KafkaDispatcher) NotifyOrderConfirmed(ctx context.Context, orderID, userID uint) {
	event := OrderConfirmedEvent{
		Type:    TypeOrderConfirmed,
		OrderID: orderID,
		UserID:  userID,
	}
	d.dispatch(ctx, userID, TypeOrderConfirmed, event)
}

func (d *KafkaDispatcher) dispatch(ctx context.Context, userID uint, eventType string, event any) {
	l := logging.FromContext(ctx)

	payload, err := json.Marshal(event)
	if err != nil {
		l.Error("notification marshal error", "type", eventType, "error", err)
		return
	}

	n := &models.Notification{
		UserID:    userID,
		Type:      eventType,
		Payload:   string(payload),
		CreatedAt: time.Now().UTC(),
	}
	if err := d.Repo.AddNotification(ctx, n); err != nil {
		l.Error("notification store error", "type", eventType, "error", err)
	}

	if d.Producer == nil {
		return
	}
	if err := d.Producer.PublishEvent(ctx, fmt.Sprint(userID), event); err != nil {
		l.Error("kafka publish error", "type", eventType, "error", err)
	}
}
