package ledger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/ebank/ledger/pkg/domain/events"
	"github.com/ebank/ledger/pkg/eventbus"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBus struct {
	handlers map[string][]eventbus.HandlerFunc
}

func (b *recordingBus) Register(eventType string, h eventbus.HandlerFunc) {
	if b.handlers == nil {
		b.handlers = map[string][]eventbus.HandlerFunc{}
	}
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

func (b *recordingBus) Emit(ctx context.Context, e eventbus.Event) error {
	for _, h := range b.handlers[e.Type()] {
		if err := h(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

type otherEvent struct{}

func (otherEvent) Type() string { return "other" }

func TestRegister_AuditsOncePerEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	bus := &recordingBus{}
	Register(bus, logger, time.Hour)

	assert.Len(t, bus.handlers, 3)

	evt := events.OperationRecorded{
		ID:          uuid.New(),
		OperationID: 3,
		AccountID:   "acc-1",
		Operation:   "CREDIT",
		Amount:      decimal.NewFromInt(50),
		Balance:     decimal.NewFromInt(150),
	}
	require.NoError(t, bus.Emit(context.Background(), evt))
	require.NoError(t, bus.Emit(context.Background(), evt))

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Operation recorded")))

	evt.ID = uuid.New()
	require.NoError(t, bus.Emit(context.Background(), evt))
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("Operation recorded")))
	assert.Contains(t, buf.String(), "account_id=acc-1")
	assert.Contains(t, buf.String(), "balance=150")
}

func TestHandleAudit_UnexpectedEvent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	err := HandleAudit(logger)(context.Background(), otherEvent{})
	assert.Error(t, err)
}
