package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-dealer-stock/internal/config"
	"go-dealer-stock/internal/handler"
	"go-dealer-stock/internal/lock"
	"go-dealer-stock/internal/middleware"
	"go-dealer-stock/internal/model"
	"go-dealer-stock/internal/repository"
	"go-dealer-stock/internal/service"
	"go-dealer-stock/internal/ws"
	"go-dealer-stock/pkg/database"
	"go-dealer-stock/pkg/jwt"
	"go-dealer-stock/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()
	jwt.SetSecret(cfg.JWTSecret)
	_ = logger.Init("dealer-stock")

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Dealer{}, &model.Brand{}, &model.VehicleModel{}, &model.StockMovement{})

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	dealerRepo := repository.NewDealerRepo(db)
	brandRepo := repository.NewBrandRepo(db)
	modelRepo := repository.NewVehicleModelRepo(db)
	movementRepo := repository.NewMovementRepo(db)

	// Catalog and ledger share the keyed locks so catalog mutations and
	// movement appends on the same model serialize.
	locks := lock.NewKeyed()

	authService := service.NewAuthService(dealerRepo)
	catalogService := service.NewCatalogService(brandRepo, modelRepo, movementRepo, locks, cfg.LockWaitTimeout)
	ledgerService := service.NewLedgerService(modelRepo, movementRepo, locks, cfg.LockWaitTimeout, wsHub)
	queryService := service.NewQueryService(modelRepo, movementRepo)
	dashService := service.NewDashboardService(movementRepo)

	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService, queryService)
	dashHandler := handler.NewDashboardHandler(dashService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Dealer Stock v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	} else {
		app.Use(cors.New())
	}

	// 6. Routes
	api := app.Group("/api/dealer")

	// ============ PUBLIC ROUTES ============
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireDealer())

	// Catalog
	protected.Get("/brands", catalogHandler.ListBrands)
	protected.Post("/brands", catalogHandler.CreateBrand)
	protected.Put("/brands/:id", catalogHandler.UpdateBrand)
	protected.Delete("/brands/:id", catalogHandler.DeleteBrand)
	protected.Get("/brands/:brandId/models", catalogHandler.ListModels)
	protected.Post("/brands/:brandId/models", catalogHandler.CreateModel)
	protected.Put("/models/:id", catalogHandler.UpdateModel)
	protected.Delete("/models/:id", catalogHandler.DeleteModel)

	// Ledger
	protected.Post("/stock", ledgerHandler.AddPurchase)
	protected.Post("/sell", ledgerHandler.AddSale)
	protected.Get("/stock", ledgerHandler.GetStock)
	protected.Get("/models/:id/position", ledgerHandler.GetPosition)
	protected.Get("/models/:id/history", ledgerHandler.GetHistory)

	// Dashboard
	protected.Get("/overview", dashHandler.GetOverview)
	protected.Get("/overview/daily", dashHandler.GetDailyMovement)

	// WebSocket Route (bearer-authenticated; query token accepted for
	// browser clients)
	app.Use("/ws", middleware.RequireDealer(), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		raw, _ := c.Locals("dealer_id").(string)
		dealerID, err := uuid.Parse(raw)
		if err != nil {
			c.Close()
			return
		}

		wsHub.Register <- ws.Client{Conn: c, DealerID: dealerID}
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := cfg.HTTPPort
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
