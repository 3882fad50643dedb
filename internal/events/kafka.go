package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	publishTimeout = 2 * time.Second
	batchTimeout   = 10 * time.Millisecond
)

// KafkaPublisher writes events to a Kafka topic keyed by entity id, so all
// events of one booking or request land on the same partition. Writes are
// asynchronous and delivery failures are only logged.
type KafkaPublisher struct {
	writer   *kafka.Writer
	logger   logrus.FieldLogger
	inflight sync.WaitGroup
}

// NewKafkaPublisher creates a publisher for topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, logger logrus.FieldLogger) *KafkaPublisher {
	p := &KafkaPublisher{logger: logger}
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: batchTimeout,
		WriteTimeout: publishTimeout,
		Async:        true,
		Completion:   p.completed,
	}
	return p
}

// Publish encodes event as JSON and hands it to the writer in the
// background. It never waits for the broker, not even for the topic
// metadata the writer fetches before queueing.
func (k *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(event.EntityID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	k.inflight.Add(1)
	go func() {
		defer k.inflight.Done()
		defer cancel()
		if err := k.writer.WriteMessages(ctx, msg); err != nil {
			k.completed([]kafka.Message{msg}, err)
		}
	}()
	return nil
}

func (k *KafkaPublisher) completed(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		k.logger.WithError(err).WithFields(logrus.Fields{
			"event":     headerValue(m, "type"),
			"entity_id": string(m.Key),
		}).Warn("failed to deliver event")
	}
}

func headerValue(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// Close waits for queued publishes, flushes pending writes and closes the
// writer.
func (k *KafkaPublisher) Close() error {
	if k.writer == nil {
		return nil
	}
	k.inflight.Wait()
	return k.writer.Close()
}
