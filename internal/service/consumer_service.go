package service

import (
	"context"
	"encoding/json"

	"refund-decision-be/internal/dto"
	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/pkg/logger"
	"refund-decision-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the audit topic into refund_decision_audits.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.DecisionAuditMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("AUDIT", "Failed to unmarshal audit message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	audit := &entity.DecisionAudit{
		Id:         uuid.New(),
		CaseId:     payload.CaseId,
		Outcome:    payload.Outcome,
		Rule:       payload.Rule,
		Reason:     payload.Reason,
		Ratio:      payload.Ratio,
		Experience: payload.Experience,
		Patch:      payload.Patch,
		Status:     entity.DecisionAuditStatus(payload.Status),
		Error:      payload.Error,
		CreatedAt:  payload.OccurredAt,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DecisionAuditRepository().Create(ctx, audit); err != nil {
		// gochannel redelivers a nack immediately; don't spin on a down database
		cs.logger.Error("AUDIT", "Failed to store decision audit", map[string]interface{}{
			"case_id": payload.CaseId,
			"error":   err.Error(),
		})
		msg.Ack()
		return
	}

	cs.logger.Debug("AUDIT", "Decision audit stored", map[string]interface{}{"case_id": payload.CaseId, "status": payload.Status})
	msg.Ack()
}
