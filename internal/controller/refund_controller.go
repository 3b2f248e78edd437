package controller

import (
	"errors"

	"refund-decision-be/internal/dto"
	"refund-decision-be/internal/pkg/serverutils"
	"refund-decision-be/internal/service"
	"refund-decision-be/pkg/refund/decision"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRefundController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetPolicy(ctx *fiber.Ctx) error
	GetCaseRefund(ctx *fiber.Ctx) error
	ComputeDecision(ctx *fiber.Ctx) error
	GetPendingDecision(ctx *fiber.Ctx) error
	DiscardDecision(ctx *fiber.Ctx) error
	ConfirmDecision(ctx *fiber.Ctx) error
	GetDecisionHistory(ctx *fiber.Ctx) error
}

type refundController struct {
	refundService service.IRefundService
}

func NewRefundController(refundService service.IRefundService) IRefundController {
	return &refundController{
		refundService: refundService,
	}
}

func (c *refundController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/refund/policy", auth, c.GetPolicy)

	h := r.Group("/cases/:id/refund")
	h.Use(auth)
	h.Get("", c.GetCaseRefund)
	h.Get("/audits", c.GetDecisionHistory)
	h.Post("/decision", c.ComputeDecision)
	h.Get("/decision", c.GetPendingDecision)
	h.Delete("/decision", c.DiscardDecision)
	h.Post("/decision/confirm", c.ConfirmDecision)
}

func (c *refundController) GetPolicy(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get refund policy", c.refundService.GetPolicy()))
}

func (c *refundController) GetCaseRefund(ctx *fiber.Ctx) error {
	caseId, err := caseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.refundService.GetCaseRefundState(ctx.UserContext(), caseId)
	if err != nil {
		return refundError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get case refund", res))
}

func (c *refundController) ComputeDecision(ctx *fiber.Ctx) error {
	caseId, err := caseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.ComputeDecisionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.refundService.ComputeDecision(ctx.UserContext(), caseId, &req)
	if err != nil {
		return refundError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success compute refund decision", res))
}

func (c *refundController) GetPendingDecision(ctx *fiber.Ctx) error {
	caseId, err := caseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.refundService.GetPendingDecision(ctx.UserContext(), caseId)
	if err != nil {
		return refundError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get pending decision", res))
}

func (c *refundController) DiscardDecision(ctx *fiber.Ctx) error {
	caseId, err := caseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.refundService.DiscardDecision(ctx.UserContext(), caseId); err != nil {
		return refundError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success discard decision", nil))
}

func (c *refundController) ConfirmDecision(ctx *fiber.Ctx) error {
	caseId, err := caseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.refundService.ConfirmDecision(ctx.UserContext(), caseId)
	if err != nil {
		return refundError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Record updated successfully", res))
}

func (c *refundController) GetDecisionHistory(ctx *fiber.Ctx) error {
	caseId, err := caseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.refundService.GetDecisionHistory(ctx.UserContext(), caseId)
	if err != nil {
		return refundError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get decision history", res))
}

func caseIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid case id")
	}
	return id, nil
}

// refundError maps service errors to HTTP statuses. Anything unknown falls
// through to the error middleware as a 500.
func refundError(ctx *fiber.Ctx, err error) error {
	var validationErr *decision.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return ctx.Status(fiber.StatusUnprocessableEntity).
			JSON(serverutils.ErrorResponseWithData(fiber.StatusUnprocessableEntity, validationErr.Error(), validationErr.Fields))
	case errors.Is(err, service.ErrCaseNotFound), errors.Is(err, service.ErrNoPendingDecision):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrRecordPending):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(fiber.StatusConflict, err.Error()))
	case errors.Is(err, service.ErrWriteFailed):
		return ctx.Status(fiber.StatusBadGateway).
			JSON(serverutils.ErrorResponse(fiber.StatusBadGateway, "An error occurred while updating the record"))
	}
	return err
}
