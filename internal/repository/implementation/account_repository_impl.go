package implementation

import (
	"context"
	"errors"

	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/mapper"
	"refund-decision-be/internal/model"
	"refund-decision-be/internal/repository/contract"
	"refund-decision-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type accountRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AccountMapper
}

func NewAccountRepository(db *gorm.DB) contract.AccountRepository {
	return &accountRepositoryImpl{db: db, mapper: mapper.NewAccountMapper()}
}

func (r *accountRepositoryImpl) Create(ctx context.Context, account *entity.Account) error {
	modelAccount := r.mapper.ToModel(account)
	if err := r.db.WithContext(ctx).Create(modelAccount).Error; err != nil {
		return err
	}
	account.Id = modelAccount.ID
	return nil
}

func (r *accountRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	var modelAccount model.Account
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelAccount).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelAccount), nil
}

// RecalculateRefundsApproved sums refunds_approved over the account's
// approved cases. Recomputing keeps repeated confirmations idempotent.
func (r *accountRepositoryImpl) RecalculateRefundsApproved(ctx context.Context, accountId uuid.UUID) (int, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&model.Case{})
	query = specification.ByAccountID{AccountID: accountId}.Apply(query)
	query = specification.RefundApproved{}.Apply(query)

	if err := query.Select("COALESCE(SUM(refunds_approved), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}

	res := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", accountId).
		Update("total_refunds_approved", total)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, contract.ErrRecordNotFound
	}
	return int(total), nil
}
