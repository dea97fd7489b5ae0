package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// rowHeader carries the source row index so snapshot reads can restore file order.
const rowHeader = "row"

const publishBatchSize = 500

// Writer publishes catalogue rows to a Kafka topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes records in batches, keyed and tagged by their position in
// the slice.
func (w *Writer) Publish(ctx context.Context, records []domain.RawRecord) error {
	for start := 0; start < len(records); start += publishBatchSize {
		end := min(start+publishBatchSize, len(records))
		msgs := make([]kafkago.Message, 0, end-start)
		for i := start; i < end; i++ {
			msg, err := serializeToMessage(i, records[i])
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
			return fmt.Errorf("publish rows %d-%d: %w", start, end-1, err)
		}
		w.logger.Debug("published batch", "from", start, "to", end-1)
	}
	w.logger.Info("dataset published", "topic", w.writer.Topic, "rows", len(records))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a RawRecord into a Kafka message.
func serializeToMessage(row int, rec domain.RawRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record: %w", err)
	}
	idx := []byte(strconv.Itoa(row))
	return kafkago.Message{
		Key:   idx,
		Value: data,
		Headers: []kafkago.Header{
			{Key: rowHeader, Value: idx},
		},
	}, nil
}
