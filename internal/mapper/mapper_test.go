package mapper

import (
	"testing"
	"time"

	"refund-decision-be/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseMapper_RoundTrip(t *testing.T) {
	accountId := uuid.New()
	in := &entity.Case{
		Id:                        uuid.New(),
		AccountId:                 &accountId,
		CaseNumber:                "00001234",
		Type:                      "Refund Request",
		AmountRefunded:            decimal.RequireFromString("45.50"),
		RefundApproved:            true,
		RefundDecisionOutcome:     "Approved",
		RefundRequestSlsRequested: 2,
		RefundsApproved:           2,
	}

	m := NewCaseMapper()
	out := m.ToEntity(m.ToModel(in))

	require.NotNil(t, out)
	assert.Equal(t, in.Id, out.Id)
	assert.Equal(t, accountId, *out.AccountId)
	assert.True(t, in.AmountRefunded.Equal(out.AmountRefunded))
	assert.Equal(t, "Approved", out.RefundDecisionOutcome)
	assert.Equal(t, 2, out.RefundsApproved)
}

func TestMappers_Nil(t *testing.T) {
	assert.Nil(t, NewCaseMapper().ToEntity(nil))
	assert.Nil(t, NewAccountMapper().ToModel(nil))
	assert.Nil(t, NewDecisionAuditMapper().ToEntity(nil))
}

func TestDecisionAuditMapper_EmptyPatchStaysNull(t *testing.T) {
	m := NewDecisionAuditMapper()

	row := m.ToModel(&entity.DecisionAudit{
		CaseId:    uuid.New(),
		Status:    entity.DecisionAuditFailed,
		Error:     "write refused",
		CreatedAt: time.Now(),
	})
	assert.Nil(t, row.Patch)
	assert.Equal(t, "failed", row.Status)

	row.Patch = []byte(`{"refund_approved":true}`)
	back := m.ToEntity(row)
	assert.Equal(t, entity.DecisionAuditFailed, back.Status)
	assert.JSONEq(t, `{"refund_approved":true}`, string(back.Patch))
}
