package cart

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/pipito7488/modas-betty-backend/internal/product"
	"github.com/pipito7488/modas-betty-backend/internal/user"
)

// Handler delegates cart operations to the cart service. Responses carry the
// grouped-by-vendor view alongside the raw item list so the cart page can
// render per-vendor sections without a second call.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addToCart)
	app.Patch("/api/v1/cart/:itemID<[0-9]+>", h.updateQuantity)
	app.Delete("/api/v1/cart/:itemID<[0-9]+>", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type addRequest struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type cartResponse struct {
	Cart   Cart          `json:"cart"`
	Groups []VendorGroup `json:"groups"`
	Total  int           `json:"total"`
}

func respondCart(c *fiber.Ctx, crt Cart) error {
	return c.JSON(cartResponse{Cart: crt, Groups: GroupByVendor(crt.Items), Total: crt.Total()})
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return respondCart(c, crt)
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.Add(userID, payload.ProductID, payload.Quantity, payload.Size, payload.Color)
	if err != nil {
		return cartError(c, err)
	}
	return respondCart(c, crt)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("itemID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid item id"})
	}

	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.UpdateQuantity(userID, itemID, payload.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return respondCart(c, crt)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("itemID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid item id"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.Remove(userID, itemID)
	if err != nil {
		return cartError(c, err)
	}
	return respondCart(c, crt)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Clear(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func cartError(c *fiber.Ctx, err error) error {
	var stockErr *product.StockError
	switch {
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":   stockErr.Error(),
			"available": stockErr.Available,
		})
	case err == ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case err == ErrItemNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case err == ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
