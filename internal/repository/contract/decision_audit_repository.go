package contract

import (
	"context"

	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/repository/specification"
)

type DecisionAuditRepository interface {
	Create(ctx context.Context, audit *entity.DecisionAudit) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DecisionAudit, error)
}
