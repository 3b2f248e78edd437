package service

import (
	"context"
	"fmt"

	"refund-decision-be/internal/pkg/logger"
	"refund-decision-be/internal/pkg/mailer"
	"refund-decision-be/pkg/events"
	pktNats "refund-decision-be/pkg/nats"
	"refund-decision-be/pkg/refund/decision"
)

// EventSubscriber is implemented by *nats.Subscriber.
type EventSubscriber interface {
	Subscribe(eventType string, durableName string, handler pktNats.EventHandler) error
}

// HoldCallService mails the call-back team whenever a Hold & Call
// decision lands on a case.
type HoldCallService struct {
	subscriber EventSubscriber
	mailer     mailer.IEmailService
	mailbox    string
	logger     logger.ILogger
}

func NewHoldCallService(sub EventSubscriber, m mailer.IEmailService, mailbox string, log logger.ILogger) *HoldCallService {
	return &HoldCallService{
		subscriber: sub,
		mailer:     m,
		mailbox:    mailbox,
		logger:     log,
	}
}

func (s *HoldCallService) Start() error {
	if s.mailbox == "" {
		s.logger.Info("HoldCallService", "No hold & call mailbox configured, alerts disabled", nil)
		return nil
	}

	err := s.subscriber.Subscribe(events.RefundDecisionPersisted, "hold-call-mailer", s.handleEvent)
	if err != nil {
		return fmt.Errorf("subscribe hold & call mailer: %w", err)
	}
	s.logger.Info("HoldCallService", "Listening for persisted refund decisions", nil)
	return nil
}

func (s *HoldCallService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	outcome, _ := payload["outcome"].(string)
	if outcome != string(decision.OutcomeHoldAndCall) {
		return nil
	}

	alert := mailer.HoldCallAlert{
		CaseId:     str(payload["case_id"]),
		CaseNumber: str(payload["case_number"]),
		Reason:     str(payload["reason"]),
		Ratio:      str(payload["ratio"]),
		Experience: str(payload["experience"]),
		Notes:      str(payload["refund_notes"]),
	}

	if err := s.mailer.SendHoldAndCallAlert(s.mailbox, alert); err != nil {
		s.logger.Error("HoldCallService", "Failed to send alert", map[string]interface{}{"case_id": alert.CaseId, "error": err.Error()})
		return err
	}

	s.logger.Info("HoldCallService", "Alert sent", map[string]interface{}{"case_id": alert.CaseId})
	return nil
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
