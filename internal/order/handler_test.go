package order

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/pipito7488/modas-betty-backend/internal/product"
	"github.com/pipito7488/modas-betty-backend/internal/user"
)

func makeAppWithOrderHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				if role := c.Get("X-User-Role"); role != "" {
					claims["role"] = role
				}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func newHandlerFixture(orders []Order, products []product.Product) *Handler {
	productService := product.NewService(product.NewInMemoryRepository(products))
	return NewHandler(NewService(NewInMemoryRepository(orders), productService))
}

func TestListOrdersScopedByRole(t *testing.T) {
	second := seedOrder(StatusPendingPayment)
	second.ID = 2
	second.CustomerID = 11
	second.VendorID = 5
	app := makeAppWithOrderHandler(newHandlerFixture([]Order{seedOrder(StatusPendingPayment), second}, nil))

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "10")
	req.Header.Set("X-User-Role", user.RoleCustomer)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var orders []Order
	if err := json.NewDecoder(res.Body).Decode(&orders); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(orders) != 1 || orders[0].CustomerID != 10 {
		t.Fatalf("customer should only see own orders: %+v", orders)
	}
}

func TestGetOrderForbiddenForStranger(t *testing.T) {
	app := makeAppWithOrderHandler(newHandlerFixture([]Order{seedOrder(StatusPendingPayment)}, nil))

	req := httptest.NewRequest("GET", "/api/v1/orders/1", nil)
	req.Header.Set("X-User-ID", "77")
	req.Header.Set("X-User-Role", user.RoleCustomer)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.StatusCode)
	}
}

func TestSubmitPaymentProofRoute(t *testing.T) {
	app := makeAppWithOrderHandler(newHandlerFixture([]Order{seedOrder(StatusPendingPayment)}, nil))

	req := httptest.NewRequest("POST", "/api/v1/orders/1/payment-proof",
		strings.NewReader(`{"imageUrl":"/uploads/transferencia.jpg"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "10")
	req.Header.Set("X-User-Role", user.RoleCustomer)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var ord Order
	if err := json.NewDecoder(res.Body).Decode(&ord); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if ord.Status != StatusPaymentSubmitted {
		t.Fatalf("status = %s, want %s", ord.Status, StatusPaymentSubmitted)
	}

	// missing imageUrl
	req = httptest.NewRequest("POST", "/api/v1/orders/1/payment-proof", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "10")
	req.Header.Set("X-User-Role", user.RoleCustomer)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without imageUrl, got %d", res.StatusCode)
	}
}

func TestConfirmPaymentConflictOnStock(t *testing.T) {
	app := makeAppWithOrderHandler(newHandlerFixture(
		[]Order{seedOrder(StatusPaymentSubmitted)},
		[]product.Product{{ID: 1, VendorID: 4, Price: 7990, Stock: 1, Active: true}},
	))

	req := httptest.NewRequest("POST", "/api/v1/vendor/orders/1/confirm-payment", nil)
	req.Header.Set("X-User-ID", "4")
	req.Header.Set("X-User-Role", user.RoleVendor)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for insufficient stock, got %d", res.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if available, ok := body["available"].(float64); !ok || int(available) != 1 {
		t.Fatalf("expected available=1 in response, got %v", body["available"])
	}
}

func TestUpdateStatusRouteRejectsInvalidTransition(t *testing.T) {
	app := makeAppWithOrderHandler(newHandlerFixture([]Order{seedOrder(StatusPendingPayment)}, nil))

	req := httptest.NewRequest("PATCH", "/api/v1/vendor/orders/1/update-status",
		strings.NewReader(`{"status":"shipped"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "4")
	req.Header.Set("X-User-Role", user.RoleVendor)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid transition, got %d", res.StatusCode)
	}
}

func TestCancelRouteRequiresReason(t *testing.T) {
	app := makeAppWithOrderHandler(newHandlerFixture([]Order{seedOrder(StatusPendingPayment)}, nil))

	req := httptest.NewRequest("POST", "/api/v1/vendor/orders/1/cancel", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "4")
	req.Header.Set("X-User-Role", user.RoleVendor)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without a reason, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/v1/vendor/orders/1/cancel",
		strings.NewReader(`{"reason":"sin stock del proveedor"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "4")
	req.Header.Set("X-User-Role", user.RoleVendor)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for cancel, got %d", res.StatusCode)
	}

	var ord Order
	if err := json.NewDecoder(res.Body).Decode(&ord); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if ord.Status != StatusCancelled || ord.CancelReason == "" {
		t.Fatalf("unexpected cancel result: %+v", ord)
	}
}
