package contract

import (
	"context"

	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error)
	// RecalculateRefundsApproved re-derives the account's approved refund
	// rollup from its cases and returns the new total.
	RecalculateRefundsApproved(ctx context.Context, accountId uuid.UUID) (int, error)
}
