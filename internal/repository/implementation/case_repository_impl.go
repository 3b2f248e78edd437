package implementation

import (
	"context"
	"errors"

	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/mapper"
	"refund-decision-be/internal/model"
	"refund-decision-be/internal/repository/contract"
	"refund-decision-be/internal/repository/specification"
	"refund-decision-be/pkg/refund/decision"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type caseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CaseMapper
}

func NewCaseRepository(db *gorm.DB) contract.CaseRepository {
	return &caseRepositoryImpl{db: db, mapper: mapper.NewCaseMapper()}
}

func (r *caseRepositoryImpl) Create(ctx context.Context, c *entity.Case) error {
	modelCase := r.mapper.ToModel(c)
	if err := r.db.WithContext(ctx).Create(modelCase).Error; err != nil {
		return err
	}
	c.Id = modelCase.ID
	return nil
}

func (r *caseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Case, error) {
	var modelCase model.Case
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelCase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelCase), nil
}

func (r *caseRepositoryImpl) ApplyPatch(ctx context.Context, caseId uuid.UUID, patch decision.CasePatch) error {
	res := r.db.WithContext(ctx).Model(&model.Case{}).
		Where("id = ?", caseId).
		Updates(patch.Fields())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrRecordNotFound
	}
	return nil
}
