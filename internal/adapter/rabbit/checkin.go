package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/service/checkin"
	"github.com/fitpass/gym-checkin-system/pkg/logger"
	wrap "github.com/fitpass/gym-checkin-system/pkg/logger/wrapper"
	"github.com/fitpass/gym-checkin-system/pkg/metrics"
	"github.com/fitpass/gym-checkin-system/pkg/rabbit"
)

const (
	CheckInExchange = "checkin_topic"

	QueueCheckInCreated = "checkin_created"

	KeyCheckInCreated = "checkin.created"
)

var _ checkin.EventPublisher = (*CheckInBroker)(nil)

type CheckInBroker struct {
	client   *rabbit.RabbitMQ
	exchange string

	l logger.Logger
}

func NewCheckInBroker(client *rabbit.RabbitMQ, log logger.Logger) *CheckInBroker {
	return &CheckInBroker{
		client:   client,
		exchange: CheckInExchange,

		l: log,
	}
}

// Setup declares the exchange and queue and binds them. Safe to call
// on every start; declarations are idempotent.
func (b *CheckInBroker) Setup(ctx context.Context) error {
	if err := b.client.EnsureConnection(ctx); err != nil {
		return wrap.Error(ctx, err)
	}

	if err := b.client.Channel.ExchangeDeclare(b.exchange, "topic", true, false, false, false, nil); err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to declare exchange: %w", err))
	}

	if _, err := b.client.Channel.QueueDeclare(QueueCheckInCreated, true, false, false, false, nil); err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to declare queue: %w", err))
	}

	if err := b.client.Channel.QueueBind(QueueCheckInCreated, KeyCheckInCreated, b.exchange, false, nil); err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to bind queue: %w", err))
	}

	return nil
}

// PublishCheckInCreated announces a successful check-in on the
// 'checkin_topic' exchange with key 'checkin.created'. Downstream
// workers (notifications, gamification) consume from there.
func (b *CheckInBroker) PublishCheckInCreated(ctx context.Context, msg models.CheckInCreatedMessage) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_checkin_created")

	if err := b.client.EnsureConnection(ctx); err != nil {
		b.l.Error(ctx, "ensure connection failed", err)
		return wrap.Error(ctx, err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal message: %w", err))
	}

	err = retry(5, time.Second, func() error {
		return b.client.Channel.PublishWithContext(
			ctx,
			b.exchange,        // exchange
			KeyCheckInCreated, // routing key
			false,             // mandatory
			false,             // immediate
			amqp091.Publishing{
				ContentType:   "application/json",
				CorrelationId: msg.CheckInID.String(),
				Body:          body,
				Timestamp:     time.Now(),
			},
		)
	})
	metrics.RecordRabbitMQPublish("checkin-service", QueueCheckInCreated, err)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to publish with context: %w", err))
	}

	return nil
}

// CheckInCreatedHandler processes one check-in created event.
type CheckInCreatedHandler func(ctx context.Context, msg models.CheckInCreatedMessage) error

// ConsumeCheckInCreated reads check-in events from the
// 'checkin_created' queue until ctx is cancelled, reconnecting on
// channel loss.
func (b *CheckInBroker) ConsumeCheckInCreated(ctx context.Context, handler CheckInCreatedHandler) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_consume_checkin_created")

	for {
		if ctx.Err() != nil {
			b.l.Debug(ctx, "consume checkin created stopped by context")
			return nil
		}

		if err := b.client.EnsureConnection(ctx); err != nil {
			b.l.Error(ctx, "ensure connection failed", err)
			time.Sleep(2 * time.Second)
			continue
		}

		msgs, err := b.client.Channel.Consume(QueueCheckInCreated, "", false, false, false, false, nil)
		if err != nil {
			b.l.Error(ctx, "consume failed", err)
			time.Sleep(2 * time.Second)
			continue
		}

		b.l.Info(ctx, "start consuming checkin created", "queue", QueueCheckInCreated)

	consumeLoop:
		for {
			select {
			case <-ctx.Done():
				b.l.Info(ctx, "checkin created consumer shutting down")
				return nil

			case msg, ok := <-msgs:
				if !ok {
					b.l.Warn(ctx, "message channel closed, reconnecting...")
					time.Sleep(2 * time.Second)
					break consumeLoop
				}

				go func(d amqp091.Delivery) {
					var event models.CheckInCreatedMessage
					if err := json.Unmarshal(d.Body, &event); err != nil {
						b.l.Error(ctx, "failed to unmarshal checkin created event", err)
						_ = d.Nack(false, false)
						return
					}

					ctxx := wrap.WithRequestID(ctx, d.CorrelationId)
					ctxx = wrap.WithUserID(ctxx, event.UserID.String())
					ctxx = wrap.WithGymID(ctxx, event.GymID.String())

					if err := handler(ctxx, event); err != nil {
						b.l.Error(wrap.ErrorCtx(ctxx, err), "failed to handle checkin created event", err)
						if isRecoverableError(err) {
							_ = d.Nack(false, true) // requeue
						} else {
							_ = d.Nack(false, false)
						}
						return
					}

					if err := d.Ack(false); err != nil {
						b.l.Error(ctxx, "failed to ack message", err)
					}
				}(msg)
			}
		}
	}
}
