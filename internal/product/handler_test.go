package product

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/pipito7488/modas-betty-backend/internal/user"
)

func makeAppWithProductHandler(h *Handler) *fiber.App {
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
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func TestPublicCatalogHidesInactiveProducts(t *testing.T) {
	handler := NewHandler(NewService(NewInMemoryRepository([]Product{
		{ID: 1, VendorID: 4, Name: "Blusa de lino", Price: 10000, Active: true},
		{ID: 2, VendorID: 4, Name: "Borrador viejo", Price: 5000, Active: false},
	})))
	app := makeAppWithProductHandler(handler)

	req := httptest.NewRequest("GET", "/api/v1/products", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var list []Product
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != 1 {
		t.Fatalf("expected only the active product, got %+v", list)
	}

	// detail of an inactive product is a 404, not a leak
	req = httptest.NewRequest("GET", "/api/v1/products/2", nil)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for inactive product, got %d", res.StatusCode)
	}
}

func TestVendorCRUDRequiresVendorRole(t *testing.T) {
	handler := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := makeAppWithProductHandler(handler)

	// unauthenticated
	req := httptest.NewRequest("POST", "/api/v1/vendor/products", strings.NewReader(`{"productName":"Blusa"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	// customer role
	req = httptest.NewRequest("POST", "/api/v1/vendor/products", strings.NewReader(`{"productName":"Blusa"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "10")
	req.Header.Set("X-User-Role", user.RoleCustomer)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", res.StatusCode)
	}

	// vendor role
	req = httptest.NewRequest("POST", "/api/v1/vendor/products",
		strings.NewReader(`{"productName":"Blusa de lino","productPrice":10000,"stock":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "4")
	req.Header.Set("X-User-Role", user.RoleVendor)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for vendor, got %d", res.StatusCode)
	}

	var created Product
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode created product: %v", err)
	}
	if created.VendorID != 4 {
		t.Fatalf("vendorId = %d, want the caller's id", created.VendorID)
	}
	if !created.Active {
		t.Fatal("new products should default to active")
	}
}

func TestVendorCannotEditForeignProduct(t *testing.T) {
	handler := NewHandler(NewService(NewInMemoryRepository([]Product{
		{ID: 1, VendorID: 4, Name: "Blusa de lino", Price: 10000, Active: true},
	})))
	app := makeAppWithProductHandler(handler)

	req := httptest.NewRequest("PUT", "/api/v1/vendor/products/1",
		strings.NewReader(`{"productName":"Pirateada","productPrice":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "9")
	req.Header.Set("X-User-Role", user.RoleVendor)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for foreign vendor, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("DELETE", "/api/v1/vendor/products/1", nil)
	req.Header.Set("X-User-ID", "9")
	req.Header.Set("X-User-Role", user.RoleVendor)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for foreign delete, got %d", res.StatusCode)
	}
}

func TestVendorListShowsInactiveProducts(t *testing.T) {
	handler := NewHandler(NewService(NewInMemoryRepository([]Product{
		{ID: 1, VendorID: 4, Name: "Blusa de lino", Price: 10000, Active: true},
		{ID: 2, VendorID: 4, Name: "Borrador", Price: 5000, Active: false},
		{ID: 3, VendorID: 9, Name: "De otra tienda", Price: 8000, Active: true},
	})))
	app := makeAppWithProductHandler(handler)

	req := httptest.NewRequest("GET", "/api/v1/vendor/products", nil)
	req.Header.Set("X-User-ID", "4")
	req.Header.Set("X-User-Role", user.RoleVendor)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var list []Product
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected both own products, got %+v", list)
	}
}
