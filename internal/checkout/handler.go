package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pipito7488/modas-betty-backend/internal/cart"
	"github.com/pipito7488/modas-betty-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.checkout)
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	customerID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(Request)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	summaries, err := h.service.Checkout(customerID, *payload)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"orders": summaries})
}

func checkoutError(c *fiber.Ctx, err error) error {
	var missingErr *MissingShippingError
	var vendorErr *VendorNotFoundError
	var zoneErr *InvalidZoneError
	switch {
	case err == ErrEmptyCart:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.As(err, &missingErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":  missingErr.Error(),
			"vendorId": missingErr.VendorID,
		})
	case errors.As(err, &vendorErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message":  vendorErr.Error(),
			"vendorId": vendorErr.VendorID,
		})
	case errors.As(err, &zoneErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":  zoneErr.Error(),
			"vendorId": zoneErr.VendorID,
			"zoneId":   zoneErr.ZoneID,
		})
	case err == cart.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
