package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"refund-decision-be/internal/pkg/logger"
	"refund-decision-be/internal/pkg/mailer"
	"refund-decision-be/pkg/events"
	pktNats "refund-decision-be/pkg/nats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []mailer.HoldCallAlert
	to   []string
	err  error
}

func (m *fakeMailer) SendHoldAndCallAlert(to string, alert mailer.HoldCallAlert) error {
	m.to = append(m.to, to)
	m.sent = append(m.sent, alert)
	return m.err
}

type fakeSubscriber struct {
	eventType string
	durable   string
	handler   pktNats.EventHandler
}

func (s *fakeSubscriber) Subscribe(eventType, durable string, h pktNats.EventHandler) error {
	s.eventType, s.durable, s.handler = eventType, durable, h
	return nil
}

func persistedEvent(outcome string) events.Event {
	return events.BaseEvent{
		Type: events.RefundDecisionPersisted,
		Data: map[string]interface{}{
			"case_id":      "c-1",
			"case_number":  "00001026",
			"outcome":      outcome,
			"reason":       "Requested 3 or more refunds at once",
			"refund_notes": "call after 5pm",
		},
		OccurredAt: time.Now(),
	}
}

func TestHoldCallService_MailsOnlyHoldAndCall(t *testing.T) {
	sub := &fakeSubscriber{}
	m := &fakeMailer{}
	svc := NewHoldCallService(sub, m, "callbacks@example.com", logger.NewNopLogger())

	require.NoError(t, svc.Start())
	assert.Equal(t, events.RefundDecisionPersisted, sub.eventType)
	require.NotNil(t, sub.handler)

	require.NoError(t, sub.handler(context.Background(), persistedEvent("Approved")))
	assert.Empty(t, m.sent)

	require.NoError(t, sub.handler(context.Background(), persistedEvent("Hold & Call")))
	require.Len(t, m.sent, 1)
	assert.Equal(t, "callbacks@example.com", m.to[0])
	assert.Equal(t, "00001026", m.sent[0].CaseNumber)
	assert.Equal(t, "call after 5pm", m.sent[0].Notes)
}

func TestHoldCallService_MailErrorTriggersRedelivery(t *testing.T) {
	m := &fakeMailer{err: errors.New("smtp down")}
	svc := NewHoldCallService(&fakeSubscriber{}, m, "callbacks@example.com", logger.NewNopLogger())

	err := svc.handleEvent(context.Background(), persistedEvent("Hold & Call"))
	assert.Error(t, err)
}

func TestHoldCallService_DisabledWithoutMailbox(t *testing.T) {
	sub := &fakeSubscriber{}
	svc := NewHoldCallService(sub, &fakeMailer{}, "", logger.NewNopLogger())

	require.NoError(t, svc.Start())
	assert.Nil(t, sub.handler)
}
