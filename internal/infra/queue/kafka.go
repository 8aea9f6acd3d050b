package queue

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"aura-inn/internal/domain/notification"
	"aura-inn/internal/pkg/config"
	"aura-inn/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaQueue publishes jobs to a topic and consumes them through a consumer group. Offsets are
// committed only after the handler returns, one message at a time.
type KafkaQueue struct {
	writer MessageWriter
	reader MessageReader
	logger *slog.Logger

	mu sync.Mutex
}

func NewKafkaQueue(cfg config.KafkaConfig, logger *slog.Logger) *KafkaQueue {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           cfg.Brokers,
		GroupID:           cfg.GroupID,
		Topic:             cfg.Topic,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return NewKafkaQueueWith(writer, reader, logger)
}

func NewKafkaQueueWith(writer MessageWriter, reader MessageReader, logger *slog.Logger) *KafkaQueue {
	return &KafkaQueue{
		writer: writer,
		reader: reader,
		logger: logger,
	}
}

func (q *KafkaQueue) Enqueue(ctx context.Context, job notification.Job) error {
	payload, err := encodeJob(job)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(job.BookingID, 10)),
		Value: payload,
		Time:  job.EnqueuedAt,
	}
	if err := q.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrap(err, "publish notification job")
	}
	return nil
}

// Consume may be called from several goroutines; fetch, handle and commit run under one lock so
// offsets are never committed past an unfinished job.
func (q *KafkaQueue) Consume(ctx context.Context, handler func(ctx context.Context, job notification.Job) error) error {
	for {
		if err := q.consumeOne(ctx, handler); err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func (q *KafkaQueue) consumeOne(ctx context.Context, handler func(ctx context.Context, job notification.Job) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	msg, err := q.reader.FetchMessage(ctx)
	if err != nil {
		return errs.Wrap(err, "fetch notification job")
	}

	job, err := decodeJob(msg.Value)
	if err != nil {
		q.logger.Error("dropping undecodable notification job",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err)
	} else if err := handler(ctx, job); err != nil {
		q.logger.Warn("notification job failed",
			"job_id", job.ID,
			"kind", job.Kind,
			"booking_id", job.BookingID,
			"attempt", job.Attempt,
			"error", err)
	}

	if err := q.reader.CommitMessages(ctx, msg); err != nil {
		return errs.Wrap(err, "commit notification job")
	}
	return nil
}

func (q *KafkaQueue) Close() error {
	return errors.Join(q.writer.Close(), q.reader.Close())
}
