//go:build unit

package queue

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"aura-inn/internal/domain/notification"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestMemoryQueue_DeliversJobs(t *testing.T) {
	q := NewMemoryQueue(4, discardLogger())
	job := notification.NewJob(notification.KindOwnerAlert, 42, testNow)
	require.NoError(t, q.Enqueue(context.Background(), job))

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan notification.Job, 1)
	done := make(chan error, 1)
	go func() {
		done <- q.Consume(ctx, func(_ context.Context, j notification.Job) error {
			got <- j
			return nil
		})
	}()

	select {
	case j := <-got:
		assert.Equal(t, job, j)
	case <-time.After(time.Second):
		t.Fatal("job not delivered")
	}
	cancel()
	assert.NoError(t, <-done)
}

func TestMemoryQueue_FullAndClosed(t *testing.T) {
	q := NewMemoryQueue(1, discardLogger())
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, notification.NewJob(notification.KindGuestAck, 1, testNow)))
	assert.ErrorIs(t, q.Enqueue(ctx, notification.NewJob(notification.KindGuestAck, 2, testNow)), ErrQueueFull)
	assert.Equal(t, 1, q.Len())

	require.NoError(t, q.Close())
	require.NoError(t, q.Close())
	assert.ErrorIs(t, q.Enqueue(ctx, notification.NewJob(notification.KindGuestAck, 3, testNow)), ErrClosed)
	assert.NoError(t, q.Consume(ctx, func(context.Context, notification.Job) error { return nil }))
}

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

// fakeReader hands out queued messages and then blocks until the context ends.
type fakeReader struct {
	mu        sync.Mutex
	pending   []kafka.Message
	committed []kafka.Message
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.pending) > 0 {
		msg := r.pending[0]
		r.pending = r.pending[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

func (r *fakeReader) committedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

func TestKafkaQueue_EnqueueEncodesJob(t *testing.T) {
	w := &fakeWriter{}
	q := NewKafkaQueueWith(w, &fakeReader{}, discardLogger())
	job := notification.NewJob(notification.KindGuestConfirmation, 1709287200000, testNow)

	require.NoError(t, q.Enqueue(context.Background(), job))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "1709287200000", string(w.msgs[0].Key))
	decoded, err := decodeJob(w.msgs[0].Value)
	require.NoError(t, err)
	assert.Equal(t, job.ID, decoded.ID)
	assert.Equal(t, job.Kind, decoded.Kind)
	assert.Equal(t, job.Attempt, decoded.Attempt)
	assert.True(t, job.EnqueuedAt.Equal(decoded.EnqueuedAt))
}

func TestKafkaQueue_EnqueueError(t *testing.T) {
	q := NewKafkaQueueWith(&fakeWriter{err: assert.AnError}, &fakeReader{}, discardLogger())

	err := q.Enqueue(context.Background(), notification.NewJob(notification.KindGuestAck, 1, testNow))

	assert.ErrorIs(t, err, assert.AnError)
}

func TestKafkaQueue_ConsumeCommitsAfterHandler(t *testing.T) {
	good, err := encodeJob(notification.NewJob(notification.KindGuestAck, 7, testNow))
	require.NoError(t, err)
	reader := &fakeReader{pending: []kafka.Message{
		{Offset: 1, Value: []byte("not json")},
		{Offset: 2, Value: good},
	}}
	q := NewKafkaQueueWith(&fakeWriter{}, reader, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	handled := make(chan notification.Job, 1)
	done := make(chan error, 1)
	go func() {
		done <- q.Consume(ctx, func(_ context.Context, j notification.Job) error {
			handled <- j
			return assert.AnError
		})
	}()

	select {
	case j := <-handled:
		assert.Equal(t, int64(7), j.BookingID)
	case <-time.After(time.Second):
		t.Fatal("job not handled")
	}
	assert.Eventually(t, func() bool { return reader.committedCount() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
