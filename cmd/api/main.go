package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"ppe-inventory-ws/internal/handler"
	"ppe-inventory-ws/internal/middleware"
	"ppe-inventory-ws/internal/model"
	"ppe-inventory-ws/internal/notify"
	"ppe-inventory-ws/internal/repository"
	"ppe-inventory-ws/internal/service"
	"ppe-inventory-ws/internal/ws"
	"ppe-inventory-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.InventoryItem{},
		&model.DispenseRequest{},
		&model.RequestLine{},
		&model.ReceiveLog{},
		&model.ReceiveLine{},
		&model.AdjustLog{},
		&model.User{},
		&model.Department{},
	)

	// 3. Seed default admin and departments
	seedAdminAndDepartments(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. LINE notifier (best-effort sink; empty token disables delivery)
	notifier := notify.NewLineNotifier()

	// 6. Dependency Injection (Wiring Layers)
	itemRepo := repository.NewInventoryRepo(db)
	requestRepo := repository.NewRequestRepo(db)
	receiveLogRepo := repository.NewReceiveLogRepo(db)
	adjustLogRepo := repository.NewAdjustLogRepo(db)
	userRepo := repository.NewUserRepo(db)
	deptRepo := repository.NewDepartmentRepo(db)
	reportRepo := repository.NewReportRepo(db)

	workflowService := service.NewWorkflowService(itemRepo, requestRepo, receiveLogRepo, adjustLogRepo, db, wsHub, notifier)
	invService := service.NewInventoryService(itemRepo, db, wsHub)
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo)

	invHandler := handler.NewInventoryHandler(invService)
	requestHandler := handler.NewRequestHandler(workflowService)
	stockHandler := handler.NewStockHandler(workflowService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	deptHandler := handler.NewDepartmentHandler(deptRepo)
	reportHandler := handler.NewReportHandler(reportRepo)
	lineHandler := handler.NewLineHandler(notifier)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "PPE Inventory v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// LINE relay keeps the channel token server-side; All() so non-POST gets 405
	app.All("/api/line", lineHandler.Relay)

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))
	admin := middleware.RequireAdmin()

	// Inventory catalog
	protected.Get("/items", invHandler.GetItems)
	protected.Post("/items", admin, invHandler.CreateItem)
	protected.Put("/items/:id", admin, invHandler.UpdateItem)
	protected.Delete("/items/:id", admin, invHandler.DeleteItem)

	// Dispense request workflow
	protected.Get("/requests", requestHandler.GetRequests)
	protected.Get("/requests/:id", requestHandler.GetRequest)
	protected.Post("/requests", requestHandler.SubmitRequest)
	protected.Post("/requests/:id/approve", admin, requestHandler.ApproveRequest)
	protected.Post("/requests/:id/reject", admin, requestHandler.RejectRequest)
	protected.Post("/requests/:id/pickup", admin, requestHandler.ConfirmPickup)
	protected.Post("/walkin", admin, requestHandler.WalkInDispense)

	// Stock operations
	protected.Post("/stock/receive", admin, stockHandler.ReceiveStock)
	protected.Post("/stock/adjust", admin, stockHandler.AdjustStock)
	protected.Post("/stock/take", admin, stockHandler.StockTake)
	protected.Get("/stock/receive-logs", stockHandler.GetReceiveLogs)
	protected.Get("/stock/adjust-logs", admin, stockHandler.GetAdjustLogs)

	// Departments
	protected.Get("/departments", deptHandler.GetDepartments)
	protected.Post("/departments", admin, deptHandler.CreateDepartment)
	protected.Delete("/departments/:name", admin, deptHandler.DeleteDepartment)

	// Users
	protected.Get("/users", admin, userHandler.GetUsers)
	protected.Put("/users/role", admin, userHandler.UpsertUser)
	protected.Put("/users/name", userHandler.SetOwnName)

	// Reports
	protected.Get("/reports/movement", reportHandler.GetMovement)

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

	// 9. Graceful Shutdown
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
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdminAndDepartments creates the default admin account and department
// picklist if they don't exist yet.
func seedAdminAndDepartments(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)
	deptRepo := repository.NewDepartmentRepo(db)

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}

	if _, err := userRepo.FindByEmail(adminEmail); err != nil {
		admin := &model.User{
			Email:    adminEmail,
			FullName: "Administrator",
			Role:     model.RoleAdmin,
			IsActive: true,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}
		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Printf("✅ Admin user created: %s / admin123", adminEmail)
		}
	}

	for _, name := range model.DefaultDepartments {
		if _, err := deptRepo.FindByName(name); err == nil {
			continue
		}
		dept := &model.Department{Name: name}
		dept.CreatedBy = "system"
		dept.UpdatedBy = "system"
		if err := deptRepo.Create(dept); err != nil {
			log.Printf("Warning: Failed to seed department %s: %v", name, err)
		}
	}
}
