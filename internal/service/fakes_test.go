package service

import (
	"context"
	"errors"
	"sync"

	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/repository/contract"
	"refund-decision-be/internal/repository/specification"
	"refund-decision-be/internal/repository/unitofwork"
	"refund-decision-be/internal/websocket"
	"refund-decision-be/pkg/refund/decision"

	"github.com/google/uuid"
)

// fakeDB is an in-memory stand-in for the case, account and audit tables.
type fakeDB struct {
	mu       sync.Mutex
	cases    map[uuid.UUID]entity.Case
	accounts map[uuid.UUID]entity.Account
	audits   []*entity.DecisionAudit

	applyErr  error
	recalcErr error
	auditErr  error

	// When set, ApplyPatch waits for it to close before writing.
	applyGate  chan struct{}
	applyCalls int

	commits   int
	rollbacks int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		cases:    make(map[uuid.UUID]entity.Case),
		accounts: make(map[uuid.UUID]entity.Account),
	}
}

func (db *fakeDB) addCase(c entity.Case) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.cases[c.Id] = c
}

func (db *fakeDB) addAccount(a entity.Account) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.accounts[a.Id] = a
}

func (db *fakeDB) getCase(id uuid.UUID) entity.Case {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.cases[id]
}

func (db *fakeDB) getAccount(id uuid.UUID) entity.Account {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.accounts[id]
}

func (db *fakeDB) patchCalls() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.applyCalls
}

func (db *fakeDB) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{db: db}
}

func byID(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if id, ok := s.(specification.ByID); ok {
			return id.ID, true
		}
	}
	return uuid.Nil, false
}

type fakeUow struct {
	db       *fakeDB
	inTx     bool
	snapshot map[uuid.UUID]entity.Case
	accSnap  map[uuid.UUID]entity.Account
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.db.mu.Lock()
	defer u.db.mu.Unlock()
	u.inTx = true
	u.snapshot = make(map[uuid.UUID]entity.Case, len(u.db.cases))
	for k, v := range u.db.cases {
		u.snapshot[k] = v
	}
	u.accSnap = make(map[uuid.UUID]entity.Account, len(u.db.accounts))
	for k, v := range u.db.accounts {
		u.accSnap[k] = v
	}
	return nil
}

func (u *fakeUow) Commit() error {
	u.db.mu.Lock()
	defer u.db.mu.Unlock()
	if !u.inTx {
		return unitofwork.ErrNoTransaction
	}
	u.inTx = false
	u.db.commits++
	return nil
}

func (u *fakeUow) Rollback() error {
	u.db.mu.Lock()
	defer u.db.mu.Unlock()
	if !u.inTx {
		return unitofwork.ErrNoTransaction
	}
	u.inTx = false
	u.db.cases = u.snapshot
	u.db.accounts = u.accSnap
	u.db.rollbacks++
	return nil
}

func (u *fakeUow) CaseRepository() contract.CaseRepository       { return &fakeCaseRepo{db: u.db} }
func (u *fakeUow) AccountRepository() contract.AccountRepository { return &fakeAccountRepo{db: u.db} }
func (u *fakeUow) DecisionAuditRepository() contract.DecisionAuditRepository {
	return &fakeAuditRepo{db: u.db}
}

type fakeCaseRepo struct{ db *fakeDB }

func (r *fakeCaseRepo) Create(ctx context.Context, c *entity.Case) error {
	r.db.addCase(*c)
	return nil
}

func (r *fakeCaseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Case, error) {
	id, ok := byID(specs)
	if !ok {
		return nil, errors.New("fake: only ByID is supported")
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, found := r.db.cases[id]
	if !found {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCaseRepo) ApplyPatch(ctx context.Context, caseId uuid.UUID, patch decision.CasePatch) error {
	r.db.mu.Lock()
	r.db.applyCalls++
	gate := r.db.applyGate
	r.db.mu.Unlock()
	if gate != nil {
		<-gate
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.applyErr != nil {
		return r.db.applyErr
	}
	c, found := r.db.cases[caseId]
	if !found {
		return contract.ErrRecordNotFound
	}
	c.RefundDecisionOutcome = string(patch.DecisionOutcome)
	c.RefundDecisionReason = patch.DecisionReason
	c.Type = patch.CaseType
	c.AmountRefunded = patch.AmountRefunded
	c.RefundApproved = patch.RefundApproved
	c.RefundRequestSlsRequested = patch.ShortlistsRequested
	c.RefundRequestTotalAmount = patch.TotalSumRequested
	c.RefundRequestNotes = patch.RefundNotes
	c.RefundsApproved = patch.RefundsApproved
	r.db.cases[caseId] = c
	return nil
}

type fakeAccountRepo struct{ db *fakeDB }

func (r *fakeAccountRepo) Create(ctx context.Context, a *entity.Account) error {
	r.db.addAccount(*a)
	return nil
}

func (r *fakeAccountRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	id, ok := byID(specs)
	if !ok {
		return nil, errors.New("fake: only ByID is supported")
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, found := r.db.accounts[id]
	if !found {
		return nil, nil
	}
	return &a, nil
}

func (r *fakeAccountRepo) RecalculateRefundsApproved(ctx context.Context, accountId uuid.UUID) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.recalcErr != nil {
		return 0, r.db.recalcErr
	}
	total := 0
	for _, c := range r.db.cases {
		if c.AccountId != nil && *c.AccountId == accountId && c.RefundApproved {
			total += c.RefundsApproved
		}
	}
	a := r.db.accounts[accountId]
	a.TotalRefundsApproved = total
	r.db.accounts[accountId] = a
	return total, nil
}

type fakeAuditRepo struct{ db *fakeDB }

func (r *fakeAuditRepo) Create(ctx context.Context, a *entity.DecisionAudit) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.auditErr != nil {
		return r.db.auditErr
	}
	r.db.audits = append(r.db.audits, a)
	return nil
}

func (r *fakeAuditRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DecisionAudit, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var caseId uuid.UUID
	for _, s := range specs {
		if fc, ok := s.(specification.ForCase); ok {
			caseId = fc.CaseID
		}
	}
	var out []*entity.DecisionAudit
	for i := len(r.db.audits) - 1; i >= 0; i-- {
		if r.db.audits[i].CaseId == caseId {
			out = append(out, r.db.audits[i])
		}
	}
	return out, nil
}

type fakeCaseCache struct {
	mu          sync.Mutex
	entries     map[uuid.UUID]entity.Case
	invalidated []uuid.UUID
}

func newFakeCaseCache() *fakeCaseCache {
	return &fakeCaseCache{entries: make(map[uuid.UUID]entity.Case)}
}

func (c *fakeCaseCache) Get(ctx context.Context, id uuid.UUID) (*entity.Case, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	return &e, true
}

func (c *fakeCaseCache) Set(ctx context.Context, kase *entity.Case) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[kase.Id] = *kase
}

func (c *fakeCaseCache) Invalidate(ctx context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

type fakeNotifier struct {
	toasts []websocket.Toast
}

func (n *fakeNotifier) Notify(caseId uuid.UUID, toast websocket.Toast) {
	n.toasts = append(n.toasts, toast)
}

type fakeEvents struct {
	persisted []decision.CasePatch
	failed    []error
}

func (e *fakeEvents) PublishDecisionPersisted(ctx context.Context, caseId uuid.UUID, caseNumber string, d decision.Decision, patch decision.CasePatch) {
	e.persisted = append(e.persisted, patch)
}

func (e *fakeEvents) PublishDecisionFailed(ctx context.Context, caseId uuid.UUID, caseNumber string, d decision.Decision, cause error) {
	e.failed = append(e.failed, cause)
}

type fakeAuditPublisher struct {
	payloads [][]byte
}

func (p *fakeAuditPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}
