package mapper

import (
	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/model"

	"gorm.io/datatypes"
)

type DecisionAuditMapper struct{}

func NewDecisionAuditMapper() *DecisionAuditMapper {
	return &DecisionAuditMapper{}
}

func (m *DecisionAuditMapper) ToEntity(a *model.RefundDecisionAudit) *entity.DecisionAudit {
	if a == nil {
		return nil
	}
	return &entity.DecisionAudit{
		Id:         a.ID,
		CaseId:     a.CaseID,
		Outcome:    a.Outcome,
		Rule:       a.Rule,
		Reason:     a.Reason,
		Ratio:      a.Ratio,
		Experience: a.Experience,
		Patch:      []byte(a.Patch),
		Status:     entity.DecisionAuditStatus(a.Status),
		Error:      a.Error,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *DecisionAuditMapper) ToModel(a *entity.DecisionAudit) *model.RefundDecisionAudit {
	if a == nil {
		return nil
	}
	var patch datatypes.JSON
	if len(a.Patch) > 0 {
		patch = datatypes.JSON(a.Patch)
	}
	return &model.RefundDecisionAudit{
		ID:         a.Id,
		CaseID:     a.CaseId,
		Outcome:    a.Outcome,
		Rule:       a.Rule,
		Reason:     a.Reason,
		Ratio:      a.Ratio,
		Experience: a.Experience,
		Patch:      patch,
		Status:     string(a.Status),
		Error:      a.Error,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *DecisionAuditMapper) ToEntities(rows []*model.RefundDecisionAudit) []*entity.DecisionAudit {
	entities := make([]*entity.DecisionAudit, len(rows))
	for i, r := range rows {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
