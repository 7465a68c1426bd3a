package checkout

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func makeAppWithCheckoutHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func postCheckout(t *testing.T, app *fiber.App, userID string, req Request) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/api/v1/checkout", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	if userID != "" {
		r.Header.Set("X-User-ID", userID)
	}
	res, err := app.Test(r)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	rec.Code = res.StatusCode
	_, err = rec.Body.ReadFrom(res.Body)
	require.NoError(t, err)
	return rec
}

func TestCheckoutRoute(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f)
	app := makeAppWithCheckoutHandler(NewHandler(f.service))

	// unauthenticated
	rec := postCheckout(t, app, "", validRequest())
	require.Equal(t, fiber.StatusUnauthorized, rec.Code)

	rec = postCheckout(t, app, "10", validRequest())
	require.Equal(t, fiber.StatusCreated, rec.Code)

	var body struct {
		Orders []OrderSummary `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Orders, 2)

	totals := map[int]int{}
	for _, o := range body.Orders {
		totals[o.Vendor.VendorID] = o.Total
	}
	require.Equal(t, 23000, totals[4])
	require.Equal(t, 15000, totals[7])
}

func TestCheckoutRouteEmptyCart(t *testing.T) {
	f := newFixture(t)
	app := makeAppWithCheckoutHandler(NewHandler(f.service))

	rec := postCheckout(t, app, "10", validRequest())
	require.Equal(t, fiber.StatusBadRequest, rec.Code)
}

func TestCheckoutRouteMissingShipping(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f)
	app := makeAppWithCheckoutHandler(NewHandler(f.service))

	req := validRequest()
	delete(req.ShippingData, 7)
	rec := postCheckout(t, app, "10", req)
	require.Equal(t, fiber.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.EqualValues(t, 7, body["vendorId"])
}

func TestCheckoutRouteInvalidZone(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f)
	app := makeAppWithCheckoutHandler(NewHandler(f.service))

	req := validRequest()
	req.ShippingData[4] = ShippingSelection{ZoneID: 99, Selected: true}
	rec := postCheckout(t, app, "10", req)
	require.Equal(t, fiber.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.EqualValues(t, 4, body["vendorId"])
	require.EqualValues(t, 99, body["zoneId"])
}
