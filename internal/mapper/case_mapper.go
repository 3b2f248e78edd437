package mapper

import (
	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/model"
)

type CaseMapper struct{}

func NewCaseMapper() *CaseMapper {
	return &CaseMapper{}
}

func (m *CaseMapper) ToEntity(c *model.Case) *entity.Case {
	if c == nil {
		return nil
	}
	return &entity.Case{
		Id:                        c.ID,
		AccountId:                 c.AccountID,
		CaseNumber:                c.CaseNumber,
		Subject:                   c.Subject,
		Type:                      c.Type,
		AmountRefunded:            c.AmountRefunded,
		RefundApproved:            c.RefundApproved,
		RefundDecisionOutcome:     c.RefundDecisionOutcome,
		RefundDecisionReason:      c.RefundDecisionReason,
		RefundRequestSlsRequested: c.RefundRequestSlsRequested,
		RefundRequestTotalAmount:  c.RefundRequestTotalAmount,
		RefundRequestNotes:        c.RefundRequestNotes,
		RefundsApproved:           c.RefundsApproved,
		CreatedAt:                 c.CreatedAt,
		UpdatedAt:                 c.UpdatedAt,
	}
}

func (m *CaseMapper) ToModel(c *entity.Case) *model.Case {
	if c == nil {
		return nil
	}
	return &model.Case{
		ID:                        c.Id,
		AccountID:                 c.AccountId,
		CaseNumber:                c.CaseNumber,
		Subject:                   c.Subject,
		Type:                      c.Type,
		AmountRefunded:            c.AmountRefunded,
		RefundApproved:            c.RefundApproved,
		RefundDecisionOutcome:     c.RefundDecisionOutcome,
		RefundDecisionReason:      c.RefundDecisionReason,
		RefundRequestSlsRequested: c.RefundRequestSlsRequested,
		RefundRequestTotalAmount:  c.RefundRequestTotalAmount,
		RefundRequestNotes:        c.RefundRequestNotes,
		RefundsApproved:           c.RefundsApproved,
		CreatedAt:                 c.CreatedAt,
		UpdatedAt:                 c.UpdatedAt,
	}
}
