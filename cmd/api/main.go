package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pharmacy-stock/internal/handler"
	"go-pharmacy-stock/internal/middleware"
	"go-pharmacy-stock/internal/model"
	"go-pharmacy-stock/internal/repository"
	"go-pharmacy-stock/internal/service"
	"go-pharmacy-stock/internal/ws"
	"go-pharmacy-stock/pkg/database"

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
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.Store{}, &model.Product{}, &model.Batch{},
		&model.MutationLogEntry{}, &model.User{}, &model.Privilege{}, &model.Role{},
	)

	// 3. Seed default privileges, roles, root user and main store
	seedDefaults(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	storeRepo := repository.NewStoreRepo(db)
	logRepo := repository.NewLogEntryRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	invService := service.NewInventoryService(productRepo, storeRepo, logRepo, db, wsHub)
	auditService := service.NewAuditService(logRepo, productRepo, db, wsHub)
	dashService := service.NewDashboardService(logRepo)
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	invHandler := handler.NewInventoryHandler(invService)
	auditHandler := handler.NewAuditHandler(auditService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)
	storeHandler := handler.NewStoreHandler(storeRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Pharmacy Stock Pro v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	// Auth Routes (No authentication required)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat) // Heartbeat uses Auth but available to all authenticated

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard Routes (authenticated users can view)
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)

	// Store Routes
	protected.Get("/stores", storeHandler.GetStores)
	protected.Get("/stores/:id", storeHandler.GetStore)

	// Product Routes (with privilege checks)
	protected.Get("/products", invHandler.GetProducts)
	protected.Get("/products/:id", invHandler.GetProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("stock:adjust"), invHandler.AdjustProduct)
	protected.Put("/products/:id/batches/:batchId", middleware.RequirePrivilege("stock:adjust"), invHandler.AdjustBatch)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), invHandler.DeleteProduct)
	protected.Post("/products/import", middleware.RequirePrivilege("product:import"), invHandler.ImportProducts)
	protected.Post("/products/:id/batches", middleware.RequirePrivilege("product:import"), invHandler.ImportBatch)

	// Stock Movement Routes (with privilege checks)
	protected.Post("/stock/inbound", middleware.RequirePrivilege("stock:inbound"), invHandler.Inbound)
	protected.Post("/stock/outbound", middleware.RequirePrivilege("stock:outbound"), invHandler.Outbound)

	// Mutation Log Routes (with privilege checks)
	protected.Get("/logs", middleware.RequirePrivilege("log:view"), auditHandler.GetEntries)
	protected.Get("/logs/:id", middleware.RequirePrivilege("log:view"), auditHandler.GetEntry)
	protected.Post("/logs/:id/revoke", middleware.RequirePrivilege("log:revoke"), auditHandler.Revoke)

	// User Management Routes (with privilege checks)
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Role Routes
	protected.Get("/roles", roleHandler.GetRoles)

	// Privileges Route (list all available privileges)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

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

// seedDefaults creates default privileges, roles, the root user and the
// main store if they don't exist
func seedDefaults(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	storeRepo := repository.NewStoreRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// ROOT and BOSS get ALL privileges
	for _, code := range []model.RoleCode{model.RoleRoot, model.RoleBoss} {
		role, err := roleRepo.FindByCode(code)
		if err == nil && len(role.Privileges) == 0 {
			db.Model(role).Association("Privileges").Replace(allPrivileges)
			log.Printf("Role %s assigned all privileges", code)
		}
	}

	// Other roles get everything except user management and log revocation
	for _, code := range []model.RoleCode{
		model.RoleFrontDesk, model.RolePurchaseManager,
		model.RoleWarehouseManager, model.RoleSalesManager, model.RoleStaff,
	} {
		role, err := roleRepo.FindByCode(code)
		if err != nil || len(role.Privileges) > 0 {
			continue
		}
		limited := []model.Privilege{}
		for _, p := range allPrivileges {
			switch p.Code {
			case "user:create", "user:update", "user:delete", "user:update_privilege", "log:revoke":
				continue
			}
			limited = append(limited, p)
		}
		db.Model(role).Association("Privileges").Replace(limited)
	}

	// 4. Seed the main store
	var mainStore model.Store
	if err := db.Where("name = ?", "Main Store").First(&mainStore).Error; err != nil {
		mainStore = model.Store{Name: "Main Store", Type: model.StoreLeaf}
		mainStore.CreatedBy = "system"
		if err := storeRepo.Create(&mainStore); err != nil {
			log.Printf("Warning: Failed to create main store: %v", err)
		}
	}

	// 5. Create default root user
	_, err := userRepo.FindByEmail("root@example.com")
	if err != nil {
		rootRole, _ := roleRepo.FindByCode(model.RoleRoot)

		root := &model.User{
			Email:         "root@example.com",
			FullName:      "Root Administrator",
			RoleCode:      model.RoleRoot,
			LogPermission: model.LogPermissionA,
			IsActive:      true,
		}
		if rootRole != nil {
			root.Privileges = rootRole.Privileges
		}
		root.CreatedBy = "system"
		root.UpdatedBy = "system"

		if err := root.SetPassword("root1234"); err != nil {
			log.Printf("Warning: Failed to hash root password: %v", err)
			return
		}

		if err := userRepo.Create(root); err != nil {
			log.Printf("Warning: Failed to create root user: %v", err)
		} else {
			log.Println("Root user created: root@example.com / root1234 (ROOT)")
		}
	}
}
