package kafka

import (
	"context"
	"encoding/json"

	"go-hrdesk/internal/events"

	"github.com/google/uuid"
)

// OutboxNotificationSink queues status-change events in the outbox for the
// producer worker to publish. The insert runs outside the caller's
// transaction, so a sink failure never touches committed balance state.
type OutboxNotificationSink struct {
	outbox OutboxRepository
}

func NewOutboxNotificationSink(outbox OutboxRepository) *OutboxNotificationSink {
	return &OutboxNotificationSink{outbox: outbox}
}

func (s *OutboxNotificationSink) NotifyStatusChange(ctx context.Context, event events.LeaveStatusChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.Create(ctx, OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "leave_application",
		AggregateID:   event.LeaveID,
		EventType:     event.EventType,
		Topic:         events.LeaveStatusChangedTopic,
		Payload:       payload,
		Status:        OutboxStatusPending,
	})
}

// NoopNotificationSink drops events, used when messaging is disabled.
type NoopNotificationSink struct{}

func (NoopNotificationSink) NotifyStatusChange(context.Context, events.LeaveStatusChangedEvent) error {
	return nil
}
