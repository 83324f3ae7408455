package notifications

import (
	"context"
	"fmt"
	"time"

	"booko/pkg/logger"

	"github.com/IBM/sarama"
)

type ProducerConfig struct {
	Brokers  []string
	Topic    string
	RetryMax int
	Timeout  time.Duration
}

func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Brokers:  []string{"localhost:9092"},
		Topic:    "booko.notifications",
		RetryMax: 3,
		Timeout:  10 * time.Second,
	}
}

// Producer publishes booking and payment events to Kafka. All Notify methods
// are best-effort: a broker failure is logged and swallowed so it can never
// fail the request that triggered it.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg *ProducerConfig) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = cfg.Timeout
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		topic:    cfg.Topic,
	}, nil
}

func (p *Producer) publish(ctx context.Context, n *Notification) error {
	payload, err := n.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(n.PartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: n.CreatedAt,
	}

	if _, _, err := p.producer.SendMessage(message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

func (p *Producer) publishBestEffort(ctx context.Context, n *Notification) {
	if err := p.publish(ctx, n); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "notification publish failed", err, map[string]interface{}{
			"type":       string(n.Type),
			"booking_id": n.BookingID,
		})
	}
}

// NotifyBookingCreated implements bookings.Notifier.
func (p *Producer) NotifyBookingCreated(ctx context.Context, bookingID, userID, showtimeID string, seats []string, totalAmount float64) {
	n := newNotification(TypeBookingCreated)
	n.BookingID = bookingID
	n.UserID = userID
	n.ShowtimeID = showtimeID
	n.Seats = seats
	n.TotalAmount = totalAmount
	p.publishBestEffort(ctx, n)
}

// NotifyBookingCancelled implements bookings.Notifier.
func (p *Producer) NotifyBookingCancelled(ctx context.Context, bookingID, userID, showtimeID string, seats []string) {
	n := newNotification(TypeBookingCancelled)
	n.BookingID = bookingID
	n.UserID = userID
	n.ShowtimeID = showtimeID
	n.Seats = seats
	p.publishBestEffort(ctx, n)
}

// NotifyPaymentProcessed implements payments.Notifier.
func (p *Producer) NotifyPaymentProcessed(ctx context.Context, bookingID, userID, transactionID, status string, amount float64) {
	n := newNotification(TypePaymentProcessed)
	n.BookingID = bookingID
	n.UserID = userID
	n.TransactionID = transactionID
	n.PaymentStatus = status
	n.TotalAmount = amount
	p.publishBestEffort(ctx, n)
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
