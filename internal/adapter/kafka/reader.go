package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// SnapshotReader reads every message currently on a topic and stops at the
// high-water mark of each partition. It implements dataset.Source.
type SnapshotReader struct {
	brokers []string
	topic   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewSnapshotReader creates a reader for topic. A single Extract call must
// finish within timeout.
func NewSnapshotReader(brokers []string, topic string, timeout time.Duration, logger *slog.Logger) *SnapshotReader {
	return &SnapshotReader{brokers: brokers, topic: topic, timeout: timeout, logger: logger}
}

type snapshotRecord struct {
	row    int
	order  int
	record domain.RawRecord
}

// Extract returns the topic contents in source row order. Messages whose
// value is not a JSON record are skipped.
func (r *SnapshotReader) Extract(ctx context.Context) ([]domain.RawRecord, error) {
	if len(r.brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	conn, err := kafkago.DialContext(ctx, "tcp", r.brokers[0])
	if err != nil {
		return nil, fmt.Errorf("dial kafka: %w", err)
	}
	partitions, err := conn.ReadPartitions(r.topic)
	conn.Close()
	if err != nil {
		return nil, fmt.Errorf("read partitions of %s: %w", r.topic, err)
	}

	var collected []snapshotRecord
	for _, p := range partitions {
		recs, err := r.readPartition(ctx, p.ID, len(collected))
		if err != nil {
			return nil, err
		}
		collected = append(collected, recs...)
	}

	slices.SortStableFunc(collected, func(a, b snapshotRecord) int {
		if a.row != b.row {
			return a.row - b.row
		}
		return a.order - b.order
	})

	out := make([]domain.RawRecord, len(collected))
	for i, c := range collected {
		out[i] = c.record
	}
	r.logger.Info("kafka snapshot read", "topic", r.topic, "partitions", len(partitions), "rows", len(out))
	return out, nil
}

func (r *SnapshotReader) readPartition(ctx context.Context, partition, orderBase int) ([]snapshotRecord, error) {
	leader, err := kafkago.DialLeader(ctx, "tcp", r.brokers[0], r.topic, partition)
	if err != nil {
		return nil, fmt.Errorf("dial leader for partition %d: %w", partition, err)
	}
	first, last, err := leader.ReadOffsets()
	leader.Close()
	if err != nil {
		return nil, fmt.Errorf("read offsets for partition %d: %w", partition, err)
	}
	if last <= first {
		return nil, nil
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   r.brokers,
		Topic:     r.topic,
		Partition: partition,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer reader.Close()

	if err := reader.SetOffset(first); err != nil {
		return nil, fmt.Errorf("seek partition %d: %w", partition, err)
	}

	recs := make([]snapshotRecord, 0, last-first)
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			return nil, fmt.Errorf("read partition %d: %w", partition, err)
		}
		rec, row, err := decodeMessage(msg)
		if err != nil {
			r.logger.Warn("decode failed, skipping message",
				"error", err, "partition", msg.Partition, "offset", msg.Offset)
		} else {
			if row < 0 {
				row = orderBase + len(recs)
			}
			recs = append(recs, snapshotRecord{row: row, order: orderBase + len(recs), record: rec})
		}
		if msg.Offset+1 >= last {
			return recs, nil
		}
	}
}

// decodeMessage unmarshals a message value and returns the row index from
// its header, or -1 when the header is absent or malformed.
func decodeMessage(msg kafkago.Message) (domain.RawRecord, int, error) {
	var rec domain.RawRecord
	if err := json.Unmarshal(msg.Value, &rec); err != nil {
		return domain.RawRecord{}, -1, fmt.Errorf("decode record: %w", err)
	}
	row := -1
	for _, h := range msg.Headers {
		if h.Key != rowHeader {
			continue
		}
		if n, err := strconv.Atoi(string(h.Value)); err == nil && n >= 0 {
			row = n
		}
	}
	return rec, row, nil
}
