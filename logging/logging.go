// Package logging configures logrus for the service and optionally ships
// every entry to Kafka.
package logging

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Setup switches logrus to JSON output at the given level.
func Setup(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaHook publishes log entries as JSON messages. The writer is async so
// logging never waits on the broker.
type KafkaHook struct {
	writer    messageWriter
	formatter logrus.Formatter
	levels    []logrus.Level
}

func NewKafkaHook(brokers []string, topic string) *KafkaHook {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Async:    true,
	})
	return newKafkaHook(w)
}

func newKafkaHook(w messageWriter) *KafkaHook {
	return &KafkaHook{
		writer:    w,
		formatter: &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
		levels:    logrus.AllLevels,
	}
}

func (h *KafkaHook) Levels() []logrus.Level {
	return h.levels
}

func (h *KafkaHook) Fire(entry *logrus.Entry) error {
	b, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	return h.writer.WriteMessages(context.Background(), kafka.Message{
		Value: b,
		Time:  entry.Time,
	})
}

func (h *KafkaHook) Close() error {
	return h.writer.Close()
}
