package eventbus

import (
	"encoding/json"
	"fmt"

	"github.com/ebank/ledger/pkg/domain/events"
	"github.com/ebank/ledger/pkg/eventbus"
)

// DecodeEvent turns a Kafka message value written by KafkaEventBus back into
// the ledger event it carries.
func DecodeEvent(value []byte) (eventbus.Event, error) {
	var env envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return nil, fmt.Errorf("kafka event bus: envelope unmarshal failed: %w", err)
	}
	var (
		e   eventbus.Event
		err error
	)
	switch env.Type {
	case events.AccountOpenedType:
		var ev events.AccountOpened
		err = json.Unmarshal(env.Payload, &ev)
		e = ev
	case events.OperationRecordedType:
		var ev events.OperationRecorded
		err = json.Unmarshal(env.Payload, &ev)
		e = ev
	case events.TransferCompletedType:
		var ev events.TransferCompleted
		err = json.Unmarshal(env.Payload, &ev)
		e = ev
	default:
		return nil, fmt.Errorf("kafka event bus: unknown event type %q", env.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("kafka event bus: payload unmarshal failed: %w", err)
	}
	return e, nil
}
