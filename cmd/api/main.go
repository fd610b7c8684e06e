package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-boutique-ws/internal/catalog"
	"go-boutique-ws/internal/events"
	"go-boutique-ws/internal/handler"
	"go-boutique-ws/internal/middleware"
	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/repository"
	"go-boutique-ws/internal/service"
	"go-boutique-ws/internal/ws"
	"go-boutique-ws/pkg/database"
	"go-boutique-ws/pkg/storage"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Product{}, &model.Customer{}, &model.Sale{}, &model.User{}, &model.Profile{})

	// 3. Change-event plumbing: one bus, two consumers (catalog store below,
	// websocket fan-out to browsers here)
	bus := events.NewBus()
	wsHub := ws.NewHub()
	go wsHub.Run()
	go wsHub.Relay(bus.Subscribe(64))

	// 4. Repositories
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	userRepo := repository.NewUserRepo(db)
	profileRepo := repository.NewProfileRepo(db)

	// 5. Live catalog cache: initial bounded fetch, then fed by the bus
	store := catalog.NewStore(catalog.NewFetcher(productRepo), bus)
	store.Open()

	// 6. Blob storage for product images, served under /uploads
	uploadDir := getenv("UPLOAD_DIR", "./uploads")
	blobs, err := storage.NewLocalStore(uploadDir, getenv("PUBLIC_BASE_URL", "http://localhost:3000")+"/uploads")
	if err != nil {
		log.Fatal("Failed to init blob storage: ", err)
	}

	// 7. Dependency Injection (Wiring Layers)
	productService := service.NewProductService(productRepo, blobs, bus)
	saleService := service.NewSaleService(productRepo, customerRepo, saleRepo, db, bus)
	customerService := service.NewCustomerService(customerRepo)
	authService := service.NewAuthService(userRepo, profileRepo)

	seedAdmin(authService, profileRepo)

	catalogHandler := handler.NewCatalogHandler(store, productService, getenv("SELLER_PHONE", "919876543210"))
	invHandler := handler.NewInventoryHandler(productService)
	saleHandler := handler.NewSaleHandler(saleService)
	customerHandler := handler.NewCustomerHandler(customerService)
	authHandler := handler.NewAuthHandler(authService)
	staffHandler := handler.NewStaffHandler(authService)

	// 8. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Bella Boutique API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	app.Static("/uploads", uploadDir)

	// 9. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Storefront (no authentication required)
	api.Get("/products", catalogHandler.GetProducts)
	api.Get("/products/:id", catalogHandler.GetProduct)
	api.Get("/categories", catalogHandler.GetCategories)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))
	protected.Get("/me", authHandler.Me)

	// Back-office console (admin role required)
	admin := protected.Group("/admin", middleware.RequireAdmin(profileRepo))

	admin.Post("/products", invHandler.CreateProduct)
	admin.Put("/products/:id", invHandler.UpdateProduct)
	admin.Delete("/products/:id", invHandler.DeleteProduct)
	admin.Post("/products/images", invHandler.UploadImages)
	admin.Post("/catalog/refetch", catalogHandler.Refetch)

	admin.Get("/sales", saleHandler.GetSales)
	admin.Get("/sales/:id", saleHandler.GetSale)
	admin.Post("/sales", saleHandler.RecordSale)

	admin.Get("/customers", customerHandler.GetCustomers)
	admin.Get("/customers/:id", customerHandler.GetCustomer)
	admin.Post("/customers", customerHandler.CreateCustomer)
	admin.Put("/customers/:id", customerHandler.UpdateCustomer)
	admin.Delete("/customers/:id", customerHandler.DeleteCustomer)

	admin.Get("/staff", staffHandler.GetProfiles)
	admin.Put("/staff/:id/role", staffHandler.ToggleRole)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 10. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	store.Close()
	bus.Close()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// seedAdmin promotes the configured bootstrap account to admin. Sign-ups are
// always role=user, so without this there would be no way to reach the
// console.
func seedAdmin(authService service.AuthService, profileRepo repository.ProfileRepository) {
	email := getenv("ADMIN_EMAIL", "admin@bellaboutique.com")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	resp, err := authService.SignUp(&service.Credentials{Email: email, Password: password})
	if err != nil {
		if err == service.ErrEmailTaken {
			return
		}
		log.Printf("Warning: Failed to seed admin user: %v", err)
		return
	}

	if err := profileRepo.UpdateRole(resp.UserID, model.RoleAdmin); err != nil {
		log.Printf("Warning: Failed to promote admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", email)
}
