package unitofwork

import (
	"context"

	"refund-decision-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CaseRepository() contract.CaseRepository
	AccountRepository() contract.AccountRepository
	DecisionAuditRepository() contract.DecisionAuditRepository
}
