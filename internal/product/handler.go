package product

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pipito7488/modas-betty-backend/internal/user"
)

var (
	errUnauthorized = errors.New("unauthorized")
	errForbidden    = errors.New("vendor role required")
)

// Handler exposes the public catalog plus the vendor/admin product CRUD.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/products/:id<[0-9]+>", h.getProduct)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/vendor/products", h.listOwnProducts)
	app.Post("/api/v1/vendor/products", h.createProduct)
	app.Put("/api/v1/vendor/products/:id<[0-9]+>", h.updateProduct)
	app.Delete("/api/v1/vendor/products/:id<[0-9]+>", h.deleteProduct)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.List(true))
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil || !p.Active {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(p)
}

func (h *Handler) listOwnProducts(c *fiber.Ctx) error {
	vendorID, role, err := vendorFromCtx(c)
	if err != nil {
		return authError(c, err)
	}
	if role == user.RoleAdmin {
		return c.JSON(h.service.List(false))
	}
	return c.JSON(h.service.ListByVendor(vendorID))
}

type productRequest struct {
	Name        string    `json:"productName"`
	Description string    `json:"productDesc"`
	Price       int       `json:"productPrice"`
	Stock       int       `json:"stock"`
	Active      *bool     `json:"active"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants"`
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	vendorID, _, err := vendorFromCtx(c)
	if err != nil {
		return authError(c, err)
	}

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productName is required"})
	}

	active := true
	if payload.Active != nil {
		active = *payload.Active
	}
	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Create(Product{
		VendorID:    vendorID,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Active:      active,
		Images:      payload.Images,
		Variants:    payload.Variants,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if err == ErrInvalidPrice {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	vendorID, role, err := vendorFromCtx(c)
	if err != nil {
		return authError(c, err)
	}

	id, convErr := strconv.Atoi(c.Params("id"))
	if convErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	existing, getErr := h.service.GetByID(id)
	if getErr != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	if existing.VendorID != vendorID && role != user.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "not your product"})
	}

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	existing.Name = payload.Name
	existing.Description = payload.Description
	existing.Price = payload.Price
	existing.Stock = payload.Stock
	if payload.Active != nil {
		existing.Active = *payload.Active
	}
	existing.Images = payload.Images
	existing.Variants = payload.Variants
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err := h.service.Update(id, existing)
	if err != nil {
		if err == ErrInvalidPrice {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	vendorID, role, err := vendorFromCtx(c)
	if err != nil {
		return authError(c, err)
	}

	id, convErr := strconv.Atoi(c.Params("id"))
	if convErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	existing, getErr := h.service.GetByID(id)
	if getErr != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	if existing.VendorID != vendorID && role != user.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "not your product"})
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
		return 0, "", errUnauthorized
	}
	if role != user.RoleVendor && role != user.RoleAdmin {
		return 0, "", errForbidden
	}
	return id, role, nil
}

func authError(c *fiber.Ctx, err error) error {
	if err == errForbidden {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
}
