package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go-hrcore/internal/audit"
	"go-hrcore/internal/events"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeChangeRequestDecisions(
	ctx context.Context,
	reader *kafkago.Reader,
	auditService audit.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.change_request_decision")
	log.Info("change request decision consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("change request decision consumer stopped")
				return
			}
			log.Error("fetch decision message failed", zap.Error(err))
			continue
		}

		var event events.ChangeRequestDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode decision event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := auditService.RecordDecision(ctx, event); err != nil {
			if isDuplicateAuditRecord(err) {
				log.Warn("decision already recorded, skipping",
					zap.String("correlation_id", event.CorrelationID),
					zap.String("event_type", event.EventType),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("record decision failed",
				zap.String("correlation_id", event.CorrelationID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit decision message failed", zap.Error(err))
			continue
		}

		log.Info("decision audited",
			zap.String("correlation_id", event.CorrelationID),
			zap.String("event_type", event.EventType),
			zap.String("decision", event.Decision),
		)
	}
}

func isDuplicateAuditRecord(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_audit_correlation_event"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_audit_correlation_event")
}
