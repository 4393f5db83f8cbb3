package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-storage-hub/internal/handler"
	"go-storage-hub/internal/middleware"
	"go-storage-hub/internal/model"
	"go-storage-hub/internal/repository"
	"go-storage-hub/internal/service"
	"go-storage-hub/internal/ws"
	"go-storage-hub/pkg/catalog"
	"go-storage-hub/pkg/database"

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
		&model.Department{},
		&model.User{},
		&model.Location{},
		&model.Box{},
		&model.Item{},
		&model.ItemStock{},
		&model.ItemSize{},
		&model.ItemImage{},
		&model.StockMovement{},
		&model.ItemRequest{},
		&model.BorrowRequest{},
		&model.ReturnRequest{},
		&model.ItemClearance{},
		&model.SystemSetting{},
	)

	// 3. Seed default departments and superadmin user
	seedDefaults(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	departmentRepo := repository.NewDepartmentRepo(db)
	locationRepo := repository.NewLocationRepo(db)
	itemRepo := repository.NewItemRepo(db)
	stockRepo := repository.NewStockRepo(db)
	requestRepo := repository.NewRequestRepo(db)
	clearanceRepo := repository.NewClearanceRepo(db)
	settingRepo := repository.NewSettingRepo(db)

	catalogClient := catalog.NewFromEnv()
	if catalogClient == nil {
		log.Println("Catalog API not configured, intake SKU validation disabled")
	}

	ledgerService := service.NewLedgerService(stockRepo, wsHub)
	intakeService := service.NewIntakeService(requestRepo, itemRepo, db, wsHub, catalogClient)
	borrowService := service.NewBorrowService(requestRepo, itemRepo, userRepo, settingRepo, ledgerService, db, wsHub)
	clearanceService := service.NewClearanceService(clearanceRepo, itemRepo, requestRepo, ledgerService, db, wsHub)
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, departmentRepo)
	dashService := service.NewDashboardService(stockRepo, db)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	departmentHandler := handler.NewDepartmentHandler(departmentRepo)
	locationHandler := handler.NewLocationHandler(locationRepo)
	itemHandler := handler.NewItemHandler(itemRepo, ledgerService)
	intakeHandler := handler.NewIntakeHandler(intakeService)
	borrowHandler := handler.NewBorrowHandler(borrowService)
	clearanceHandler := handler.NewClearanceHandler(clearanceService)
	dashHandler := handler.NewDashboardHandler(dashService)
	settingHandler := handler.NewSettingHandler(settingRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Storage Hub v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/logout", middleware.RequireAuth(userRepo), authHandler.Logout)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication; transition-level role,
	// department and ownership rules live in the authz policy.
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)

	// Items
	protected.Get("/items", itemHandler.List)
	protected.Get("/items/:id/stock", itemHandler.GetStock)
	protected.Get("/items/:id/movements", itemHandler.GetMovements)
	protected.Post("/items/:id/images", itemHandler.AddImage)
	protected.Post("/items/revert-from-clearance", clearanceHandler.RevertQuantity)
	protected.Get("/items/:id", itemHandler.Get)

	// Intake (item requests)
	protected.Post("/item-requests", intakeHandler.Create)
	protected.Get("/item-requests", intakeHandler.List)
	protected.Post("/item-requests/:id/approve", intakeHandler.Approve)
	protected.Post("/item-requests/:id/reject", intakeHandler.Reject)

	// Borrow requests (dual approval)
	protected.Post("/borrow-requests", borrowHandler.Create)
	protected.Get("/borrow-requests", borrowHandler.List)
	protected.Get("/borrow-requests/:id", borrowHandler.Get)
	protected.Post("/borrow-requests/:id/manager-approve", borrowHandler.ManagerApprove)
	protected.Post("/borrow-requests/:id/approve", borrowHandler.StorageApprove)
	protected.Post("/borrow-requests/:id/reject", borrowHandler.Reject)
	protected.Post("/borrow-requests/:id/return", borrowHandler.RequestReturn)

	// Legacy single-stage requests resource
	protected.Post("/requests/:id/reject", borrowHandler.LegacyReject)
	protected.Post("/requests/:id/approve-return", borrowHandler.ApproveReturn)
	protected.Post("/requests/:id/receive", borrowHandler.Receive)

	// Clearance / seeding
	protected.Post("/clearance", clearanceHandler.Create)
	protected.Get("/clearance/seeding", clearanceHandler.ListSeeding)
	protected.Post("/clearance/seeding/:id/revert", clearanceHandler.RevertSeeding)

	// User management (admin surface)
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequireRole(model.RoleSuperadmin), userHandler.DeleteUser)

	// Departments
	protected.Get("/departments", departmentHandler.List)
	protected.Post("/departments", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), departmentHandler.Create)
	protected.Put("/departments/:id", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), departmentHandler.Update)
	protected.Delete("/departments/:id", middleware.RequireRole(model.RoleSuperadmin), departmentHandler.Delete)

	// Locations and boxes
	protected.Get("/locations", locationHandler.List)
	protected.Post("/locations", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), locationHandler.Create)
	protected.Put("/locations/:id", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), locationHandler.Update)
	protected.Delete("/locations/:id", middleware.RequireRole(model.RoleSuperadmin), locationHandler.Delete)
	protected.Get("/boxes", locationHandler.ListBoxes)
	protected.Post("/boxes", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), locationHandler.CreateBox)
	protected.Put("/boxes/:id", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), locationHandler.UpdateBox)
	protected.Delete("/boxes/:id", middleware.RequireRole(model.RoleSuperadmin), locationHandler.DeleteBox)

	// System settings
	protected.Get("/settings", middleware.RequireRole(model.RoleSuperadmin), settingHandler.List)
	protected.Put("/settings", middleware.RequireRole(model.RoleSuperadmin), settingHandler.Update)

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

	// 8. Graceful Shutdown
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

// seedDefaults creates default departments and a superadmin user if they
// don't exist
func seedDefaults(db *gorm.DB) {
	departmentRepo := repository.NewDepartmentRepo(db)
	userRepo := repository.NewUserRepo(db)
	settingRepo := repository.NewSettingRepo(db)

	if err := departmentRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed departments: %v", err)
	}

	if _, err := settingRepo.Get(model.SettingRestockOnStorageReject); err != nil {
		if err := settingRepo.Set(model.SettingRestockOnStorageReject, "false", "system"); err != nil {
			log.Printf("Warning: Failed to seed settings: %v", err)
		}
	}

	email := os.Getenv("SUPERADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	admin := &model.User{
		Email:    email,
		FullName: "Super Administrator",
		Role:     model.RoleSuperadmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	password := os.Getenv("SUPERADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash superadmin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create superadmin user: %v", err)
	} else {
		log.Printf("✅ Superadmin user created: %s", email)
	}
}
