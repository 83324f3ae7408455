package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"booko/pkg/logger"

	"github.com/IBM/sarama"
)

type ConsumerConfig struct {
	Brokers         []string
	GroupID         string
	Topics          []string
	SessionTimeout  time.Duration
	HeartbeatPeriod time.Duration
	OffsetOldest    bool
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:         []string{"localhost:9092"},
		GroupID:         "booko-notification-workers",
		Topics:          []string{"booko.notifications"},
		SessionTimeout:  30 * time.Second,
		HeartbeatPeriod: 3 * time.Second,
		OffsetOldest:    false,
	}
}

// Consumer drains the notifications topic and hands each event to a
// Deliverer (email, push, whatever sits behind it).
type Consumer struct {
	group     sarama.ConsumerGroup
	config    *ConsumerConfig
	deliverer Deliverer
	cancel    context.CancelFunc
}

// Deliverer performs the user-facing side effect for one notification.
type Deliverer interface {
	Deliver(ctx context.Context, n *Notification) error
}

// LogDeliverer writes each notification to the structured log. It stands in
// for a real email/push integration.
type LogDeliverer struct{}

func (LogDeliverer) Deliver(ctx context.Context, n *Notification) error {
	logger.GetDefault().InfoWithContext(ctx, "notification delivered", map[string]interface{}{
		"type":       string(n.Type),
		"booking_id": n.BookingID,
		"user_id":    n.UserID,
	})
	return nil
}

func NewConsumer(cfg *ConsumerConfig, deliverer Deliverer) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = cfg.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = cfg.HeartbeatPeriod
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	if cfg.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		group:     group,
		config:    cfg,
		deliverer: deliverer,
	}, nil
}

// Start runs the consume loop until ctx is cancelled or Stop is called.
func (c *Consumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.group.Errors() {
			logger.GetDefault().ErrorWithContext(context.Background(), "consumer group error", err, nil)
		}
	}()

	go func() {
		handler := &groupHandler{deliverer: c.deliverer}
		for {
			if err := c.group.Consume(ctx, c.config.Topics, handler); err != nil {
				logger.GetDefault().ErrorWithContext(ctx, "consume loop error", err, nil)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	return c.group.Close()
}

type groupHandler struct {
	deliverer Deliverer
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var n Notification
		if err := json.Unmarshal(message.Value, &n); err != nil {
			logger.GetDefault().ErrorWithContext(session.Context(), "malformed notification", err, map[string]interface{}{
				"partition": message.Partition,
				"offset":    message.Offset,
			})
			session.MarkMessage(message, "")
			continue
		}

		if err := h.deliverer.Deliver(session.Context(), &n); err != nil {
			logger.GetDefault().ErrorWithContext(session.Context(), "notification delivery failed", err, map[string]interface{}{
				"type":       string(n.Type),
				"booking_id": n.BookingID,
			})
		}

		session.MarkMessage(message, "")
	}
	return nil
}
