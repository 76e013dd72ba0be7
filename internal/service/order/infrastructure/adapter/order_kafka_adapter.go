// internal/service/order/infrastructure/adapter/order_kafka_adapter.go
package adapter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"storefront/internal/pkg/mq"
	"storefront/internal/service/order/domain"
)

// OrderCreatedEvent 是发往下游（通知、对账等）的订单创建事件。
type OrderCreatedEvent struct {
	OrderID    string    `json:"orderId"`
	CartID     string    `json:"cartId"`
	PromoCode  string    `json:"promoCode,omitempty"`
	Subtotal   int64     `json:"subtotal"`
	Discount   int64     `json:"discount"`
	GrandTotal int64     `json:"grandTotal"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OrderKafkaAdapter 是 port.EventProducer 的 Kafka 实现。
type OrderKafkaAdapter struct {
	writer *kafka.Writer
}

// NewOrderKafkaAdapter 创建一个新的订单事件生产者适配器。
func NewOrderKafkaAdapter(writer *kafka.Writer) *OrderKafkaAdapter {
	return &OrderKafkaAdapter{writer: writer}
}

// OrderCreated 发布订单创建事件，消息键为 cartID，
// 保证同一购物车的事件进入同一分区。
func (a *OrderKafkaAdapter) OrderCreated(ctx context.Context, order *domain.Order) error {
	event := OrderCreatedEvent{
		OrderID:    order.ID,
		CartID:     order.CartID,
		PromoCode:  order.PromoCode,
		Subtotal:   order.Subtotal,
		Discount:   order.Discount,
		GrandTotal: order.GrandTotal,
		CreatedAt:  order.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal order created event")
	}
	return mq.ProduceMessage(ctx, a.writer, []byte(order.CartID), payload)
}

// Close 关闭底层的 Kafka writer。
func (a *OrderKafkaAdapter) Close() error {
	return a.writer.Close()
}
