package shipping

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/pipito7488/modas-betty-backend/internal/user"
)

// Handler exposes the checkout-time shipping calculator plus the vendor zone
// CRUD.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/shipping/calculate", h.calculate)

	app.Get("/api/v1/vendor/shipping-zones", h.listZones)
	app.Post("/api/v1/vendor/shipping-zones", h.createZone)
	app.Put("/api/v1/vendor/shipping-zones/:id<[0-9]+>", h.updateZone)
	app.Delete("/api/v1/vendor/shipping-zones/:id<[0-9]+>", h.deleteZone)
}

type calculateRequest struct {
	VendorID int    `json:"vendorId"`
	Commune  string `json:"commune"`
	Region   string `json:"region"`
}

func (h *Handler) calculate(c *fiber.Ctx) error {
	if _, err := user.GetUserIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(calculateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.VendorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid vendorId"})
	}

	return c.JSON(h.service.Resolve(payload.VendorID, payload.Commune, payload.Region))
}

type zoneRequest struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Commune       string `json:"commune"`
	Region        string `json:"region"`
	Station       string `json:"station"`
	Street        string `json:"street"`
	Cost          int    `json:"cost"`
	EstimatedDays int    `json:"estimatedDays"`
	Enabled       *bool  `json:"enabled"`
	PickupAllowed bool   `json:"pickupAllowed"`
	Instructions  string `json:"instructions"`
}

func (req zoneRequest) toZone(vendorID int) (Zone, error) {
	zoneType, err := ParseZoneType(req.Type)
	if err != nil {
		return Zone{}, err
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	return Zone{
		VendorID:      vendorID,
		Name:          req.Name,
		Type:          zoneType,
		Commune:       req.Commune,
		Region:        req.Region,
		Station:       req.Station,
		Street:        req.Street,
		Cost:          req.Cost,
		EstimatedDays: req.EstimatedDays,
		Enabled:       enabled,
		PickupAllowed: req.PickupAllowed || zoneType == TypePickupStore,
		Instructions:  req.Instructions,
	}, nil
}

func (h *Handler) listZones(c *fiber.Ctx) error {
	vendorID, _, err := vendorFromCtx(c)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(h.service.ListByVendor(vendorID))
}

func (h *Handler) createZone(c *fiber.Ctx) error {
	vendorID, _, err := vendorFromCtx(c)
	if err != nil {
		return authError(c, err)
	}

	payload := new(zoneRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	zone, err := payload.toZone(vendorID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(zone)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateZone(c *fiber.Ctx) error {
	vendorID, role, err := vendorFromCtx(c)
	if err != nil {
		return authError(c, err)
	}

	id, convErr := strconv.Atoi(c.Params("id"))
	if convErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid zone id"})
	}

	existing, getErr := h.service.GetByID(id)
	if getErr != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "zone not found"})
	}
	if existing.VendorID != vendorID && role != user.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "not your zone"})
	}

	payload := new(zoneRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// Admin edits keep the zone attached to its original vendor.
	zone, err := payload.toZone(existing.VendorID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, zone)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "zone not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteZone(c *fiber.Ctx) error {
	vendorID, role, err := vendorFromCtx(c)
	if err != nil {
		return authError(c, err)
	}

	id, convErr := strconv.Atoi(c.Params("id"))
	if convErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid zone id"})
	}

	existing, getErr := h.service.GetByID(id)
	if getErr != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "zone not found"})
	}
	if existing.VendorID != vendorID && role != user.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "not your zone"})
	}

	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// vendorFromCtx resolves the caller's identity and enforces the vendor role.
// Admins pass too since the admin dashboard reuses these endpoints; callers
// use the returned role to skip the ownership check for them.
func vendorFromCtx(c *fiber.Ctx) (int, string, error) {
	id, role, err := user.GetIdentityFromCtx(c)
	if err != nil {
		return 0, "", fiber.ErrUnauthorized
	}
	if role != user.RoleVendor && role != user.RoleAdmin {
		return 0, "", fiber.ErrForbidden
	}
	return id, role, nil
}

func authError(c *fiber.Ctx, err error) error {
	if err == fiber.ErrForbidden {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "vendor role required"})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
}
