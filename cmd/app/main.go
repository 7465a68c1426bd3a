package main

import (
	"database/sql"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/pipito7488/modas-betty-backend/internal/cart"
	"github.com/pipito7488/modas-betty-backend/internal/checkout"
	"github.com/pipito7488/modas-betty-backend/internal/order"
	"github.com/pipito7488/modas-betty-backend/internal/product"
	"github.com/pipito7488/modas-betty-backend/internal/shipping"
	"github.com/pipito7488/modas-betty-backend/internal/user"
)

func main() {
	_ = godotenv.Load()

	app := fiber.New()
	app.Use(fiberlogger.New())
	setupCORS(app)

	db := mustOpenDB()
	defer db.Close()
	migrate(db)

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService)

	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo, productService)
	cartHandler := cart.NewHandler(cartService)

	shippingRepo := shipping.NewPostgresRepository(db)
	shippingService := shipping.NewService(shippingRepo)
	shippingHandler := shipping.NewHandler(shippingService)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, productService)
	orderHandler := order.NewHandler(orderService)

	checkoutService := checkout.NewService(cartService, productService, userService, shippingService, orderService)
	checkoutHandler := checkout.NewHandler(checkoutService)

	// public routes must be registered before the JWT middleware
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(os.Getenv("JWT_SECRET")),
		// allow unauthenticated GETs for the public catalog
		Filter: func(c *fiber.Ctx) bool {
			if c.Method() != fiber.MethodGet {
				return false
			}
			p := c.Path()
			if p == "/api/v1/products" {
				return true
			}
			if strings.HasPrefix(p, "/api/v1/products/") {
				rest := strings.TrimPrefix(p, "/api/v1/products/")
				seg := strings.SplitN(rest, "/", 2)[0]
				if _, err := strconv.Atoi(seg); err == nil {
					return true
				}
			}
			return false
		},
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	shippingHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterProtectedRoutes(app)

	addr := os.Getenv("APP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("starting server on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB() *sql.DB {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// migrate keeps the schema in step on startup; every statement is idempotent.
func migrate(db *sql.DB) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'cliente',
			store_name TEXT NOT NULL DEFAULT '',
			commission_rate NUMERIC NOT NULL DEFAULT 0,
			payment_methods JSONB NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			vendor_id INT NOT NULL,
			product_name TEXT NOT NULL,
			product_desc TEXT NOT NULL DEFAULT '',
			product_price INT NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			images TEXT[] NOT NULL DEFAULT '{}',
			variants JSONB NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			cart_id SERIAL PRIMARY KEY,
			user_id INT UNIQUE NOT NULL,
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			item_id SERIAL PRIMARY KEY,
			cart_id INT NOT NULL REFERENCES carts(cart_id),
			product_id INT NOT NULL,
			vendor_id INT NOT NULL,
			quantity INT NOT NULL DEFAULT 1,
			unit_price INT NOT NULL DEFAULT 0,
			size TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			added_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS shipping_zones (
			zone_id SERIAL PRIMARY KEY,
			vendor_id INT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			commune TEXT NOT NULL DEFAULT '',
			region TEXT NOT NULL DEFAULT '',
			station TEXT NOT NULL DEFAULT '',
			street TEXT NOT NULL DEFAULT '',
			cost INT NOT NULL DEFAULT 0,
			estimated_days INT NOT NULL DEFAULT 0,
			enabled BOOLEAN NOT NULL DEFAULT TRUE,
			pickup_allowed BOOLEAN NOT NULL DEFAULT FALSE,
			instructions TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			order_number TEXT UNIQUE NOT NULL,
			customer_id INT NOT NULL,
			vendor_id INT NOT NULL,
			items JSONB NOT NULL DEFAULT '[]',
			subtotal INT NOT NULL DEFAULT 0,
			shipping_cost INT NOT NULL DEFAULT 0,
			total INT NOT NULL DEFAULT 0,
			commission_rate NUMERIC NOT NULL DEFAULT 0,
			commission_amount INT NOT NULL DEFAULT 0,
			vendor_net_amount INT NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending_payment',
			shipping_method TEXT NOT NULL DEFAULT 'delivery',
			shipping_address JSONB NOT NULL DEFAULT '{}',
			customer_name TEXT NOT NULL DEFAULT '',
			customer_phone TEXT NOT NULL DEFAULT '',
			customer_email TEXT NOT NULL DEFAULT '',
			vendor_contact JSONB NOT NULL DEFAULT '{}',
			cancel_reason TEXT NOT NULL DEFAULT '',
			payment_proof JSONB,
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
