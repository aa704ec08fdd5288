package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"app/internal/domain/model"

	amqp "github.com/rabbitmq/amqp091-go"
)

const checkedOutQueue = "cart.checked_out"

// CartCheckedOut は会計完了イベントのペイロード。
type CartCheckedOut struct {
	EventType     string           `json:"eventType"`
	OrderRef      string           `json:"orderRef"`
	SessionID     string           `json:"sessionId"`
	RestaurantID  model.ID         `json:"restaurantId"`
	Lines         []model.CartLine `json:"lines"`
	TotalAmount   int64            `json:"totalAmount"`
	TotalQuantity int64            `json:"totalQuantity"`
	OccurredAt    time.Time        `json:"occurredAt"`
}

// NoopPublisher はRabbitMQ未設定のとき用（何も発行しない）。
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishCheckedOut(ctx context.Context, sessionID string, sum model.CheckoutSummary) error {
	return nil
}

// RabbitPublisher は会計完了イベントをキューへ流す。
type RabbitPublisher struct {
	ch *amqp.Channel
}

// DI
func NewRabbitPublisher(conn *amqp.Connection) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if _, err := ch.QueueDeclare(checkedOutQueue, true, false, false, false, nil); err != nil {
		return nil, err
	}

	return &RabbitPublisher{ch: ch}, nil
}

func (p *RabbitPublisher) PublishCheckedOut(ctx context.Context, sessionID string, sum model.CheckoutSummary) error {
	ev := CartCheckedOut{
		EventType:     "CartCheckedOut",
		OrderRef:      sum.OrderRef,
		SessionID:     sessionID,
		RestaurantID:  sum.RestaurantID,
		Lines:         sum.Lines,
		TotalAmount:   sum.TotalAmount,
		TotalQuantity: sum.TotalQuantity,
		OccurredAt:    time.Now().UTC(),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	err = p.ch.PublishWithContext(ctx, "", checkedOutQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		// 発行は best-effort（会計側で握りつぶす前提のログ）
		log.Printf("publish CartCheckedOut failed: %v", err)
		return err
	}
	return nil
}
