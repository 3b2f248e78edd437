package contract

import (
	"context"
	"errors"

	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/repository/specification"
	"refund-decision-be/pkg/refund/decision"

	"github.com/google/uuid"
)

var ErrRecordNotFound = errors.New("record not found")

type CaseRepository interface {
	Create(ctx context.Context, c *entity.Case) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Case, error)
	// ApplyPatch writes the refund fields of a confirmed decision.
	// Returns ErrRecordNotFound when no case matches.
	ApplyPatch(ctx context.Context, caseId uuid.UUID, patch decision.CasePatch) error
}
