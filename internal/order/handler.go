package order

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/pipito7488/modas-betty-backend/internal/product"
	"github.com/pipito7488/modas-betty-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/orders", h.listOrders)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.getOrder)
	app.Post("/api/v1/orders/:id<[0-9]+>/payment-proof", h.submitPaymentProof)

	app.Post("/api/v1/vendor/orders/:id<[0-9]+>/confirm-payment", h.confirmPayment)
	app.Patch("/api/v1/vendor/orders/:id<[0-9]+>/update-status", h.updateStatus)
	app.Post("/api/v1/vendor/orders/:id<[0-9]+>/cancel", h.cancelOrder)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	actorID, role, err := user.GetIdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListForActor(actorID, role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	actorID, role, err := user.GetIdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, convErr := strconv.Atoi(c.Params("id"))
	if convErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	ord, err := h.service.GetForActor(id, actorID, role)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(ord)
}

type paymentProofRequest struct {
	ImageURL string `json:"imageUrl"`
}

func (h *Handler) submitPaymentProof(c *fiber.Ctx) error {
	customerID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, convErr := strconv.Atoi(c.Params("id"))
	if convErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(paymentProofRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ImageURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "imageUrl is required"})
	}

	ord, err := h.service.SubmitPaymentProof(id, customerID, payload.ImageURL)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(ord)
}

func (h *Handler) confirmPayment(c *fiber.Ctx) error {
	actorID, role, err := user.GetIdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, convErr := strconv.Atoi(c.Params("id"))
	if convErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	ord, err := h.service.ConfirmPayment(id, actorID, role)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(ord)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	actorID, role, err := user.GetIdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, convErr := strconv.Atoi(c.Params("id"))
	if convErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.UpdateStatus(id, actorID, role, Status(payload.Status))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(ord)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	actorID, role, err := user.GetIdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, convErr := strconv.Atoi(c.Params("id"))
	if convErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(cancelRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.Cancel(id, actorID, role, payload.Reason)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(ord)
}

func orderError(c *fiber.Ctx, err error) error {
	var stockErr *product.StockError
	switch {
	case err == ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	case err == ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})
	case err == ErrInvalidTransition, err == ErrReasonRequired, err == ErrProofSubmitted:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":   stockErr.Error(),
			"available": stockErr.Available,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
