package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	infraeventbus "github.com/ebank/ledger/infra/eventbus"
	"github.com/ebank/ledger/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// RunSmokeTest publishes one ledger event through the Kafka event bus and
// reads it back from the topic to verify a local Kafka setup.
func RunSmokeTest() error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))
	if brokers == "" {
		brokers = "localhost:9092"
	}
	topic := strings.TrimSpace(os.Getenv("KAFKA_TOPIC"))
	if topic == "" {
		topic = "ledger.events"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Create the topic if it doesn't exist
	{
		dialer := &kafka.Dialer{Timeout: 5 * time.Second}
		conn, err := dialer.DialContext(ctx, "tcp", strings.Split(brokers, ",")[0])
		if err != nil {
			logger.Error("dial failed", "error", err)
			return err
		}
		defer func() { _ = conn.Close() }()
		err = conn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
		if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
			logger.Error("create topic failed", "topic", topic, "error", err)
			return err
		}
		logger.Info("topic ready", "topic", topic)
	}

	bus, err := infraeventbus.NewWithKafka(brokers, topic, logger)
	if err != nil {
		return err
	}
	defer func() { _ = bus.Close() }()

	sent := events.AccountOpened{
		ID:             uuid.New(),
		AccountID:      uuid.NewString(),
		Kind:           "CA",
		CustomerID:     1,
		InitialBalance: decimal.NewFromInt(1000),
		Currency:       "MAD",
		Timestamp:      time.Now(),
	}
	if err := bus.Emit(ctx, sent); err != nil {
		logger.Error("emit failed", "error", err)
		return err
	}
	logger.Info("produced", "type", sent.Type(), "accountId", sent.AccountID)

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     strings.Split(brokers, ","),
		GroupID:     "ledger-smoketest-" + sent.ID.String(),
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
	})
	defer func() { _ = r.Close() }()

	readCtx, cancelRead := context.WithTimeout(ctx, 15*time.Second)
	defer cancelRead()
	for {
		msg, err := r.FetchMessage(readCtx)
		if err != nil {
			logger.Error("fetch failed", "topic", topic, "error", err)
			return err
		}
		e, err := infraeventbus.DecodeEvent(msg.Value)
		if err != nil {
			logger.Warn("skipping message", "offset", msg.Offset, "error", err)
			continue
		}
		logger.Info("consumed", "type", e.Type(), "offset", msg.Offset)
		if opened, ok := e.(events.AccountOpened); ok && opened.ID == sent.ID {
			break
		}
	}

	logger.Info("kafka smoke test passed")
	return nil
}

// main runs the smoke test and exits non-zero on failure.
func main() {
	if err := RunSmokeTest(); err != nil {
		os.Exit(1)
	}
}
