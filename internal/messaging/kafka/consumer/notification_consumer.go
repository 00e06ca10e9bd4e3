package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hrdesk/internal/events"
	"go-hrdesk/internal/mailer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveStatusChanges sends a status-change mail per event. Mail
// delivery is best effort: a send failure is logged and the message is
// committed anyway so one bad recipient cannot wedge the partition.
func ConsumeLeaveStatusChanges(
	ctx context.Context,
	reader *kafkago.Reader,
	sender mailer.Sender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_status")
	log.Info("leave status consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave status consumer stopped")
				return
			}
			log.Error("fetch leave status message failed", zap.Error(err))
			continue
		}

		var event events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave_status_changed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		subject, body := composeStatusMail(event)
		if len(event.Recipients) > 0 {
			if err := sender.Send(event.Recipients, subject, body); err != nil {
				log.Warn("send leave status mail failed",
					zap.String("leave_id", event.LeaveID),
					zap.String("new_status", event.NewStatus),
					zap.Error(err),
				)
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave status message failed", zap.Error(err))
			continue
		}

		log.Info("leave status change processed",
			zap.String("leave_id", event.LeaveID),
			zap.String("old_status", event.OldStatus),
			zap.String("new_status", event.NewStatus),
		)
	}
}

func composeStatusMail(event events.LeaveStatusChangedEvent) (subject, body string) {
	switch event.NewStatus {
	case "Pending":
		subject = fmt.Sprintf("New %s application awaiting review", event.LeaveType)
		body = fmt.Sprintf("A new %s application (%s) has been submitted and is awaiting review.",
			event.LeaveType, event.LeaveID)
	case "Rejected":
		subject = fmt.Sprintf("Your %s application was rejected", event.LeaveType)
		body = fmt.Sprintf("Your %s application (%s) was rejected.", event.LeaveType, event.LeaveID)
		if event.RejectReason != "" {
			body += "\nReason: " + event.RejectReason
		}
	default:
		subject = fmt.Sprintf("Your %s application was %s", event.LeaveType, event.NewStatus)
		body = fmt.Sprintf("Your %s application (%s) is now %s.",
			event.LeaveType, event.LeaveID, event.NewStatus)
	}
	return subject, body
}
