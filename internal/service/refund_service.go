package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"refund-decision-be/internal/dto"
	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/pkg/logger"
	"refund-decision-be/internal/repository/cache"
	"refund-decision-be/internal/repository/specification"
	"refund-decision-be/internal/repository/unitofwork"
	"refund-decision-be/internal/websocket"
	"refund-decision-be/pkg/refund/decision"
	refundEvents "refund-decision-be/pkg/refund/events"

	"github.com/google/uuid"
)

var (
	ErrCaseNotFound      = errors.New("case not found")
	ErrRecordPending     = errors.New("case or account data not loaded yet")
	ErrNoPendingDecision = errors.New("no pending decision for case")
	ErrWriteFailed       = errors.New("failed to update case record")
)

const (
	toastUpdated     = "Record updated successfully"
	toastUpdateError = "An error occurred while updating the record"
)

// PendingDecisionStore holds decisions awaiting confirmation.
type PendingDecisionStore interface {
	Save(pending *entity.PendingDecision)
	Get(caseId uuid.UUID) (*entity.PendingDecision, bool)
	Delete(caseId uuid.UUID)
}

// ToastNotifier pushes transient messages to agents viewing a case.
type ToastNotifier interface {
	Notify(caseId uuid.UUID, toast websocket.Toast)
}

type IRefundService interface {
	GetPolicy() *dto.PolicyResponse
	GetCaseRefundState(ctx context.Context, caseId uuid.UUID) (*dto.CaseRefundStateResponse, error)
	ComputeDecision(ctx context.Context, caseId uuid.UUID, req *dto.ComputeDecisionRequest) (*dto.DecisionResponse, error)
	GetPendingDecision(ctx context.Context, caseId uuid.UUID) (*dto.DecisionResponse, error)
	DiscardDecision(ctx context.Context, caseId uuid.UUID) error
	ConfirmDecision(ctx context.Context, caseId uuid.UUID) (*dto.ConfirmDecisionResponse, error)
	GetDecisionHistory(ctx context.Context, caseId uuid.UUID) ([]*dto.DecisionAuditResponse, error)
}

type refundService struct {
	uowFactory unitofwork.RepositoryFactory
	engine     *decision.Engine
	pending    PendingDecisionStore
	caseCache  cache.CaseCache
	notifier   ToastNotifier
	events     refundEvents.Publisher
	audit      IPublisherService
	logger     logger.ILogger
	now        func() time.Time
	locks      *caseLocks
}

// caseLocks serializes operations touching one case's pending decision.
type caseLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*caseLock
}

type caseLock struct {
	sync.Mutex
	refs int
}

func newCaseLocks() *caseLocks {
	return &caseLocks{locks: make(map[uuid.UUID]*caseLock)}
}

// lock blocks until the case is free and returns the matching unlock.
func (l *caseLocks) lock(caseId uuid.UUID) func() {
	l.mu.Lock()
	cl, ok := l.locks[caseId]
	if !ok {
		cl = &caseLock{}
		l.locks[caseId] = cl
	}
	cl.refs++
	l.mu.Unlock()

	cl.Lock()
	return func() {
		cl.Unlock()
		l.mu.Lock()
		cl.refs--
		if cl.refs == 0 {
			delete(l.locks, caseId)
		}
		l.mu.Unlock()
	}
}

func NewRefundService(
	uowFactory unitofwork.RepositoryFactory,
	engine *decision.Engine,
	pending PendingDecisionStore,
	caseCache cache.CaseCache,
	notifier ToastNotifier,
	events refundEvents.Publisher,
	audit IPublisherService,
	logger logger.ILogger,
) IRefundService {
	return &refundService{
		uowFactory: uowFactory,
		engine:     engine,
		pending:    pending,
		caseCache:  caseCache,
		notifier:   notifier,
		events:     events,
		audit:      audit,
		logger:     logger,
		now:        time.Now,
		locks:      newCaseLocks(),
	}
}

func (s *refundService) GetPolicy() *dto.PolicyResponse {
	p := s.engine.Policy()
	return &dto.PolicyResponse{
		RatioLower:           p.RatioLower.String(),
		RatioUpper:           p.RatioUpper.String(),
		MaxFee:               p.MaxFee.String(),
		MaxShortlists:        p.MaxShortlists,
		ExperienceDays:       p.ExperienceDays,
		TenureDays:           p.TenureDays,
		ExperienceShortlists: p.ExperienceShortlists,
		CurrencySymbol:       p.CurrencySymbol,
	}
}

func (s *refundService) GetCaseRefundState(ctx context.Context, caseId uuid.UUID) (*dto.CaseRefundStateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	kase, err := s.loadCase(ctx, uow, caseId)
	if err != nil {
		return nil, err
	}

	res := &dto.CaseRefundStateResponse{
		CaseId:                kase.Id,
		CaseNumber:            kase.CaseNumber,
		AccountId:             kase.AccountId,
		Type:                  kase.Type,
		RefundDecisionOutcome: kase.RefundDecisionOutcome,
		RefundDecisionReason:  kase.RefundDecisionReason,
		AmountRefunded:        kase.AmountRefunded.StringFixed(2),
		RefundApproved:        kase.RefundApproved,
		ShortlistsRequested:   kase.RefundRequestSlsRequested,
		TotalSumRequested:     kase.RefundRequestTotalAmount.StringFixed(2),
		RefundNotes:           kase.RefundRequestNotes,
		RefundsApproved:       kase.RefundsApproved,
	}
	_, res.HasPendingDecision = s.pending.Get(caseId)

	if kase.AccountId != nil {
		account, err := uow.AccountRepository().FindOne(ctx, specification.ByID{ID: *kase.AccountId})
		if err != nil {
			return nil, err
		}
		if account != nil {
			res.FirstActivityDate = account.FirstActivityDate()
			res.TotalRefundsApproved = account.TotalRefundsApproved
		}
	}

	return res, nil
}

// ComputeDecision evaluates the submitted form against the case's account
// and keeps the result until it is confirmed or discarded.
func (s *refundService) ComputeDecision(ctx context.Context, caseId uuid.UUID, req *dto.ComputeDecisionRequest) (*dto.DecisionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	kase, err := s.loadCase(ctx, uow, caseId)
	if err != nil {
		return nil, err
	}
	if kase.AccountId == nil {
		return nil, ErrRecordPending
	}

	account, err := uow.AccountRepository().FindOne(ctx, specification.ByID{ID: *kase.AccountId})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrRecordPending
	}

	firstActivity := account.FirstActivityDate()
	if req.FirstActivityDate != "" {
		d, err := time.ParseInLocation("2006-01-02", req.FirstActivityDate, time.UTC)
		if err != nil {
			return nil, &decision.ValidationError{Fields: []decision.Field{decision.FieldFirstActivityDate}}
		}
		firstActivity = &d
	}

	in := decision.Input{
		ShortlistsRequested:      req.ShortlistsRequested,
		TotalSumRequested:        decision.Amount(req.TotalSumRequested),
		ShortlistCount:           req.ShortlistCount,
		FirstActivityDate:        firstActivity,
		PriorApprovedRefundCount: account.TotalRefundsApproved,
		RefundNotes:              req.RefundNotes,
	}

	unlock := s.locks.lock(caseId)
	defer unlock()

	d, err := s.engine.Evaluate(in)
	if err != nil {
		// The form changed, so an older decision must not be confirmable.
		s.pending.Delete(caseId)
		return nil, err
	}

	pending := &entity.PendingDecision{
		CaseId:     kase.Id,
		CaseNumber: kase.CaseNumber,
		AccountId:  account.Id,
		Input:      in,
		Decision:   d,
		ComputedAt: s.now(),
	}
	s.pending.Save(pending)

	s.logger.Info("REFUND", "Decision computed", map[string]interface{}{
		"case_id": caseId,
		"outcome": d.Outcome,
		"rule":    d.Rule,
	})

	return toDecisionResponse(pending), nil
}

func (s *refundService) GetPendingDecision(ctx context.Context, caseId uuid.UUID) (*dto.DecisionResponse, error) {
	pending, ok := s.pending.Get(caseId)
	if !ok {
		return nil, ErrNoPendingDecision
	}
	return toDecisionResponse(pending), nil
}

func (s *refundService) DiscardDecision(ctx context.Context, caseId uuid.UUID) error {
	unlock := s.locks.lock(caseId)
	defer unlock()

	s.pending.Delete(caseId)
	return nil
}

// ConfirmDecision writes the pending decision onto the case. On failure the
// case is untouched and the decision stays pending so it can be retried.
// Confirmations of the same case run one at a time.
func (s *refundService) ConfirmDecision(ctx context.Context, caseId uuid.UUID) (*dto.ConfirmDecisionResponse, error) {
	unlock := s.locks.lock(caseId)
	defer unlock()

	pending, ok := s.pending.Get(caseId)
	if !ok {
		return nil, ErrNoPendingDecision
	}

	patch := s.engine.Patch(pending.Input, pending.Decision)

	total, err := s.applyPatch(ctx, pending, patch)
	if err != nil {
		pending.Attempts++
		s.pending.Save(pending)

		s.logger.Error("REFUND", "Failed to persist decision", map[string]interface{}{
			"case_id":  caseId,
			"attempts": pending.Attempts,
			"error":    err.Error(),
		})
		s.notifier.Notify(caseId, websocket.Toast{Title: "Error", Message: toastUpdateError, Variant: "error"})
		s.events.PublishDecisionFailed(ctx, caseId, pending.CaseNumber, pending.Decision, err)
		s.publishAudit(ctx, pending, patch, entity.DecisionAuditFailed, err)

		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	s.pending.Delete(caseId)
	s.caseCache.Invalidate(ctx, caseId)

	s.logger.Info("REFUND", "Decision persisted", map[string]interface{}{
		"case_id": caseId,
		"outcome": pending.Decision.Outcome,
	})
	s.notifier.Notify(caseId, websocket.Toast{Title: "Success", Message: toastUpdated, Variant: "success"})
	s.events.PublishDecisionPersisted(ctx, caseId, pending.CaseNumber, pending.Decision, patch)
	s.publishAudit(ctx, pending, patch, entity.DecisionAuditPersisted, nil)

	return &dto.ConfirmDecisionResponse{
		CaseId:               caseId,
		Outcome:              string(patch.DecisionOutcome),
		DecisionReason:       patch.DecisionReason,
		AmountRefunded:       patch.AmountRefunded.StringFixed(2),
		RefundApproved:       patch.RefundApproved,
		RefundsApproved:      patch.RefundsApproved,
		TotalRefundsApproved: total,
	}, nil
}

func (s *refundService) GetDecisionHistory(ctx context.Context, caseId uuid.UUID) ([]*dto.DecisionAuditResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	audits, err := uow.DecisionAuditRepository().FindAll(ctx,
		specification.ForCase{CaseID: caseId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.DecisionAuditResponse, 0, len(audits))
	for _, a := range audits {
		res = append(res, &dto.DecisionAuditResponse{
			Id:         a.Id,
			Outcome:    a.Outcome,
			Rule:       a.Rule,
			Reason:     a.Reason,
			Ratio:      a.Ratio,
			Experience: a.Experience,
			Status:     string(a.Status),
			Error:      a.Error,
			CreatedAt:  a.CreatedAt,
		})
	}
	return res, nil
}

// applyPatch writes the case fields and refreshes the account rollup in
// one transaction. Returns the account's new approved refund total.
func (s *refundService) applyPatch(ctx context.Context, pending *entity.PendingDecision, patch decision.CasePatch) (total int, err error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			uow.Rollback()
		}
	}()

	if err = uow.CaseRepository().ApplyPatch(ctx, pending.CaseId, patch); err != nil {
		return 0, err
	}

	total, err = uow.AccountRepository().RecalculateRefundsApproved(ctx, pending.AccountId)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *refundService) loadCase(ctx context.Context, uow unitofwork.UnitOfWork, caseId uuid.UUID) (*entity.Case, error) {
	if kase, ok := s.caseCache.Get(ctx, caseId); ok {
		return kase, nil
	}

	kase, err := uow.CaseRepository().FindOne(ctx, specification.ByID{ID: caseId})
	if err != nil {
		return nil, err
	}
	if kase == nil {
		return nil, ErrCaseNotFound
	}

	s.caseCache.Set(ctx, kase)
	return kase, nil
}

func (s *refundService) publishAudit(ctx context.Context, pending *entity.PendingDecision, patch decision.CasePatch, status entity.DecisionAuditStatus, cause error) {
	patchJson, err := json.Marshal(patch)
	if err != nil {
		return
	}

	msg := dto.DecisionAuditMessage{
		CaseId:     pending.CaseId,
		Outcome:    string(pending.Decision.Outcome),
		Rule:       string(pending.Decision.Rule),
		Reason:     pending.Decision.Reason,
		Ratio:      pending.Decision.Ratio.String(),
		Experience: string(pending.Decision.Experience),
		Patch:      patchJson,
		Status:     string(status),
		OccurredAt: s.now(),
	}
	if cause != nil {
		msg.Error = cause.Error()
	}

	msgJson, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.audit.Publish(ctx, msgJson); err != nil {
		s.logger.Warn("REFUND", "Failed to publish decision audit", map[string]interface{}{"case_id": pending.CaseId, "error": err.Error()})
	}
}

func toDecisionResponse(p *entity.PendingDecision) *dto.DecisionResponse {
	d := p.Decision
	return &dto.DecisionResponse{
		CaseId:                 p.CaseId,
		Outcome:                string(d.Outcome),
		DisplayMessage:         d.DisplayMessage,
		DisplayStyle:           string(d.DisplayStyle),
		Reason:                 d.Reason,
		Rule:                   string(d.Rule),
		Experience:             string(d.Experience),
		Ratio:                  d.Ratio.String(),
		ApprovedAmount:         d.ApprovedAmount.StringFixed(2),
		ApprovedShortlistCount: d.ApprovedShortlistCount,
		Input: dto.DecisionInputResponse{
			ShortlistsRequested:      p.Input.ShortlistsRequested,
			TotalSumRequested:        p.Input.TotalSumRequested.StringFixed(2),
			ShortlistCount:           p.Input.ShortlistCount,
			FirstActivityDate:        p.Input.FirstActivityDate,
			PriorApprovedRefundCount: p.Input.PriorApprovedRefundCount,
			RefundNotes:              p.Input.RefundNotes,
		},
		ComputedAt: p.ComputedAt,
		Attempts:   p.Attempts,
	}
}
