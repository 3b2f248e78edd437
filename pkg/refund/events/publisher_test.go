package events

import (
	"context"
	"errors"
	"testing"

	"refund-decision-be/internal/pkg/logger"
	pkgEvents "refund-decision-be/pkg/events"
	"refund-decision-be/pkg/refund/decision"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBus struct {
	events []pkgEvents.Event
	err    error
}

func (b *recordingBus) Publish(_ context.Context, e pkgEvents.Event) error {
	b.events = append(b.events, e)
	return b.err
}

func holdDecision() decision.Decision {
	return decision.Decision{
		Outcome:    decision.OutcomeHoldAndCall,
		Rule:       decision.RuleTooManyShortlists,
		Reason:     "Requested 3 or more refunds at once",
		Ratio:      decimal.Zero,
		Experience: decision.Inexperienced,
	}
}

func TestPublishDecisionPersisted(t *testing.T) {
	bus := &recordingBus{}
	p := NewNatsPublisher(bus, logger.NewNopLogger())
	caseId := uuid.New()

	p.PublishDecisionPersisted(context.Background(), caseId, "00001026", holdDecision(), decision.CasePatch{
		AmountRefunded:  decimal.Zero,
		RefundsApproved: 0,
		RefundNotes:     "customer called",
	})

	require.Len(t, bus.events, 1)
	evt := bus.events[0]
	assert.Equal(t, pkgEvents.RefundDecisionPersisted, evt.EventType())
	assert.Equal(t, caseId.String(), evt.Payload()["case_id"])
	assert.Equal(t, "Hold & Call", evt.Payload()["outcome"])
	assert.Equal(t, "0.00", evt.Payload()["amount_refunded"])
	assert.Equal(t, "customer called", evt.Payload()["refund_notes"])
}

func TestPublishDecisionFailed_CarriesCause(t *testing.T) {
	bus := &recordingBus{err: errors.New("nats down")}
	p := NewNatsPublisher(bus, logger.NewNopLogger())

	p.PublishDecisionFailed(context.Background(), uuid.New(), "00001026", holdDecision(), errors.New("deadlock"))

	require.Len(t, bus.events, 1)
	assert.Equal(t, pkgEvents.RefundDecisionFailed, bus.events[0].EventType())
	assert.Equal(t, "deadlock", bus.events[0].Payload()["error"])
}

func TestNilBusIsNoop(t *testing.T) {
	p := NewNatsPublisher(nil, logger.NewNopLogger())
	assert.NotPanics(t, func() {
		p.PublishDecisionPersisted(context.Background(), uuid.New(), "1", holdDecision(), decision.CasePatch{})
	})
}
