package memory

import (
	"time"

	"refund-decision-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// PendingDecisionRepository keeps computed-but-unconfirmed decisions per
// case. Entries expire if the agent never confirms.
type PendingDecisionRepository struct {
	cache *cache.Cache
}

func NewPendingDecisionRepository(ttl time.Duration) *PendingDecisionRepository {
	return &PendingDecisionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *PendingDecisionRepository) Save(pending *entity.PendingDecision) {
	r.cache.Set(pending.CaseId.String(), pending, cache.DefaultExpiration)
}

// Get returns a copy so callers cannot mutate the stored entry.
func (r *PendingDecisionRepository) Get(caseId uuid.UUID) (*entity.PendingDecision, bool) {
	if x, found := r.cache.Get(caseId.String()); found {
		p := *x.(*entity.PendingDecision)
		return &p, true
	}
	return nil, false
}

func (r *PendingDecisionRepository) Delete(caseId uuid.UUID) {
	r.cache.Delete(caseId.String())
}
