package events

import (
	"context"
	"time"

	"refund-decision-be/internal/pkg/logger"
	pkgEvents "refund-decision-be/pkg/events"
	"refund-decision-be/pkg/refund/decision"

	"github.com/google/uuid"
)

// Bus is the transport events are handed to. *nats.Publisher satisfies it.
type Bus interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// Publisher abstracts event publishing for refund decisions.
type Publisher interface {
	PublishDecisionPersisted(ctx context.Context, caseId uuid.UUID, caseNumber string, d decision.Decision, patch decision.CasePatch)
	PublishDecisionFailed(ctx context.Context, caseId uuid.UUID, caseNumber string, d decision.Decision, cause error)
}

// NatsPublisher implements Publisher on top of the NATS bus. A nil bus
// turns every publish into a no-op.
type NatsPublisher struct {
	bus     Bus
	logger  logger.ILogger
	now     func() time.Time
	timeout time.Duration
}

func NewNatsPublisher(bus Bus, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		bus:     bus,
		logger:  logger,
		now:     time.Now,
		timeout: 3 * time.Second,
	}
}

// PublishDecisionPersisted emits REFUND_DECISION_PERSISTED
func (p *NatsPublisher) PublishDecisionPersisted(ctx context.Context, caseId uuid.UUID, caseNumber string, d decision.Decision, patch decision.CasePatch) {
	data := decisionPayload(caseId, caseNumber, d)
	data["amount_refunded"] = patch.AmountRefunded.StringFixed(2)
	data["refunds_approved"] = patch.RefundsApproved
	data["refund_notes"] = patch.RefundNotes

	p.publish(ctx, pkgEvents.RefundDecisionPersisted, data)
}

// PublishDecisionFailed emits REFUND_DECISION_FAILED
func (p *NatsPublisher) PublishDecisionFailed(ctx context.Context, caseId uuid.UUID, caseNumber string, d decision.Decision, cause error) {
	data := decisionPayload(caseId, caseNumber, d)
	if cause != nil {
		data["error"] = cause.Error()
	}

	p.publish(ctx, pkgEvents.RefundDecisionFailed, data)
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.bus == nil {
		return
	}

	now := p.now()
	data["occurred_at"] = now
	evt := pkgEvents.BaseEvent{Type: eventType, Data: data, OccurredAt: now}

	// Don't hold the confirming request hostage to a reconnecting broker
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.bus.Publish(ctx, evt); err != nil {
		p.logger.Error("REFUND", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func decisionPayload(caseId uuid.UUID, caseNumber string, d decision.Decision) map[string]interface{} {
	return map[string]interface{}{
		"case_id":     caseId.String(),
		"case_number": caseNumber,
		"outcome":     string(d.Outcome),
		"rule":        string(d.Rule),
		"reason":      d.Reason,
		"ratio":       d.Ratio.String(),
		"experience":  string(d.Experience),
		"entity_type": "case",
		"entity_id":   caseId.String(),
	}
}
