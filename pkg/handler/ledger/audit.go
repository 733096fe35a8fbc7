// Package ledger holds the event handlers subscribed to committed ledger events.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ebank/ledger/pkg/domain/events"
	"github.com/ebank/ledger/pkg/eventbus"
	"github.com/ebank/ledger/pkg/handler/common"
)

// HandleAudit writes one structured audit line per ledger event.
func HandleAudit(logger *slog.Logger) eventbus.HandlerFunc {
	return func(_ context.Context, e eventbus.Event) error {
		log := logger.With("handler", "Audit", "event_type", e.Type())
		switch evt := e.(type) {
		case events.AccountOpened:
			log.Info("📒 [AUDIT] Account opened",
				"account_id", evt.AccountID,
				"kind", evt.Kind,
				"customer_id", evt.CustomerID,
				"initial_balance", evt.InitialBalance.String(),
				"currency", evt.Currency,
			)
		case events.OperationRecorded:
			log.Info("📒 [AUDIT] Operation recorded",
				"account_id", evt.AccountID,
				"operation_id", evt.OperationID,
				"operation", evt.Operation,
				"amount", evt.Amount.String(),
				"balance", evt.Balance.String(),
			)
		case events.TransferCompleted:
			log.Info("📒 [AUDIT] Transfer completed",
				"source_id", evt.SourceID,
				"destination_id", evt.DestinationID,
				"amount", evt.Amount.String(),
			)
		default:
			return fmt.Errorf("audit: unexpected event %T", e)
		}
		return nil
	}
}

// Register subscribes the audit handler to every ledger event type. A
// redelivered event is audited once within dedupWindow.
func Register(bus eventbus.Bus, logger *slog.Logger, dedupWindow time.Duration) {
	if logger == nil {
		logger = slog.Default()
	}
	handler := common.Once("Audit", HandleAudit(logger), common.NewDeduper(dedupWindow), logger)
	for _, t := range []string{
		events.AccountOpenedType,
		events.OperationRecordedType,
		events.TransferCompletedType,
	} {
		bus.Register(t, handler)
	}
}
