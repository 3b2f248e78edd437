package mapper

import (
	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/model"
)

type AccountMapper struct{}

func NewAccountMapper() *AccountMapper {
	return &AccountMapper{}
}

func (m *AccountMapper) ToEntity(a *model.Account) *entity.Account {
	if a == nil {
		return nil
	}
	return &entity.Account{
		Id:                   a.ID,
		Name:                 a.Name,
		ApprovedAt:           a.ApprovedAt,
		TotalRefundsApproved: a.TotalRefundsApproved,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

func (m *AccountMapper) ToModel(a *entity.Account) *model.Account {
	if a == nil {
		return nil
	}
	return &model.Account{
		ID:                   a.Id,
		Name:                 a.Name,
		ApprovedAt:           a.ApprovedAt,
		TotalRefundsApproved: a.TotalRefundsApproved,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}
