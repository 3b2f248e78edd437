package implementation

import (
	"context"

	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/mapper"
	"refund-decision-be/internal/model"
	"refund-decision-be/internal/repository/contract"
	"refund-decision-be/internal/repository/specification"

	"gorm.io/gorm"
)

type decisionAuditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DecisionAuditMapper
}

func NewDecisionAuditRepository(db *gorm.DB) contract.DecisionAuditRepository {
	return &decisionAuditRepositoryImpl{db: db, mapper: mapper.NewDecisionAuditMapper()}
}

func (r *decisionAuditRepositoryImpl) Create(ctx context.Context, audit *entity.DecisionAudit) error {
	m := r.mapper.ToModel(audit)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	audit.Id = m.ID
	return nil
}

func (r *decisionAuditRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DecisionAudit, error) {
	var rows []*model.RefundDecisionAudit
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(rows), nil
}
