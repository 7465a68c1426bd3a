package user

import (
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type Handler struct {
	service *Service
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-in", h.login)
	app.Post("/api/v1/sign-up", h.register)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/profile", h.getProfile)
	app.Put("/api/v1/profile", h.updateProfile)
	app.Patch("/api/v1/profile", h.updateProfile)

	// vendor payment/payout settings
	app.Put("/api/v1/vendor/payment-methods", h.updatePaymentMethods)

	// admin user management
	app.Get("/api/v1/admin/users", h.listUsers)
	app.Patch("/api/v1/admin/users/:id/role", h.setRole)
	app.Patch("/api/v1/admin/users/:id/commission", h.setCommission)
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	user, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    sanitizeUser(user),
		"token":   signed,
	})
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Email == "" || payload.Password == "" || payload.FirstName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "missing required fields"})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Register(User{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if err == ErrEmailExists {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(sanitizeUser(created))
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	user, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	return c.JSON(sanitizeUser(user))
}

// profileUpdateRequest accepts partial payloads so PATCH behaviour works with
// the same handler as PUT.
type profileUpdateRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	StoreName *string `json:"storeName"`
	Password  *string `json:"password"`
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(profileUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	current, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	if payload.FirstName != nil {
		current.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		current.LastName = *payload.LastName
	}
	if payload.Phone != nil {
		current.Phone = *payload.Phone
	}
	if payload.StoreName != nil {
		current.StoreName = *payload.StoreName
	}
	if payload.Password != nil {
		current.Password = *payload.Password
	} else {
		current.Password = ""
	}
	current.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err := h.service.Update(userID, current)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(sanitizeUser(updated))
}

type paymentMethodsRequest struct {
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
}

func (h *Handler) updatePaymentMethods(c *fiber.Ctx) error {
	userID, role, err := GetIdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if role != RoleVendor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "vendor role required"})
	}

	payload := new(paymentMethodsRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	current, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}
	current.PaymentMethods = payload.PaymentMethods
	current.Password = ""
	current.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err := h.service.Update(userID, current)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(sanitizeUser(updated))
}

func (h *Handler) listUsers(c *fiber.Ctx) error {
	if !requireAdmin(c) {
		return nil
	}

	users := h.service.List()
	response := make([]User, 0, len(users))
	for _, user := range users {
		response = append(response, sanitizeUser(user))
	}
	return c.JSON(response)
}

type setRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handler) setRole(c *fiber.Ctx) error {
	if !requireAdmin(c) {
		return nil
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	payload := new(setRoleRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	switch payload.Role {
	case RoleCustomer, RoleVendor, RoleAdmin:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown role"})
	}

	updated, err := h.service.SetRole(id, payload.Role)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(sanitizeUser(updated))
}

type setCommissionRequest struct {
	CommissionRate float64 `json:"commissionRate"`
}

func (h *Handler) setCommission(c *fiber.Ctx) error {
	if !requireAdmin(c) {
		return nil
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	payload := new(setCommissionRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.CommissionRate < 0 || payload.CommissionRate > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "commissionRate must be between 0 and 100"})
	}

	updated, err := h.service.SetCommissionRate(id, payload.CommissionRate)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "vendor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(sanitizeUser(updated))
}

// requireAdmin answers whether the caller holds the admin role. When it does
// not, the rejection response has already been written.
func requireAdmin(c *fiber.Ctx) bool {
	_, role, err := GetIdentityFromCtx(c)
	if err != nil {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		return false
	}
	if role != RoleAdmin {
		c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin role required"})
		return false
	}
	return true
}

func sanitizeUser(u User) User {
	u.Password = ""
	return u
}
