package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"droneops/internal/auth"
	"droneops/internal/catalog"
	"droneops/internal/dronetype"
	"droneops/internal/expense"
	"droneops/internal/export"
	"droneops/internal/inventory"
	"droneops/internal/movement"
	"droneops/internal/template"
	"droneops/internal/wiki"
	"droneops/pkg/database"
	"droneops/pkg/middleware"
	"droneops/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ No .env file found, using environment variables")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Database migration failed: %v", err)
	}
	log.Printf("✅ Database migrated")

	// Redis is optional: the login rate limiter fails open without it.
	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Printf("⚠️ Redis unavailable, login rate limiting disabled: %v", err)
			redisClient = nil
		} else {
			log.Printf("✅ Redis connected")
		}
	}

	// Object storage is optional: attachments and receipts are disabled
	// without it.
	var store *storage.S3Client
	if os.Getenv("S3_BUCKET") != "" {
		store, err = storage.NewS3Client(context.Background())
		if err != nil {
			log.Fatalf("❌ S3 client setup failed: %v", err)
		}
		log.Printf("✅ Object storage connected")
	} else {
		log.Printf("⚠️ S3_BUCKET not set, file attachments disabled")
	}

	// Services
	authService := auth.NewService(db)
	catalogService := catalog.NewService(db)
	templateService := template.NewService(db)
	typeService := dronetype.NewService(db)
	ledger := movement.NewLedger(db)
	registry := inventory.NewRegistry(db, typeService, ledger)
	assignment := inventory.NewAssignment(db, typeService)
	expenseService := expense.NewService(db, storeOrNil(store))
	wikiService := wiki.NewService(db, storeOrNil(store))
	exportService := export.NewService(db, typeService)

	// Handlers
	authHandler := auth.NewHandler(authService, middleware.NewLoginRateLimiter(redisClient))
	catalogHandler := catalog.NewHandler(catalogService)
	templateHandler := template.NewHandler(templateService)
	typeHandler := dronetype.NewHandler(typeService)
	inventoryHandler := inventory.NewHandler(registry, assignment)
	movementHandler := movement.NewHandler(ledger)
	expenseHandler := expense.NewHandler(expenseService)
	wikiHandler := wiki.NewHandler(wikiService)
	exportHandler := export.NewHandler(exportService)

	router := setupRouter(authService, authHandler, catalogHandler, templateHandler,
		typeHandler, inventoryHandler, movementHandler, expenseHandler, wikiHandler, exportHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

// storeOrNil avoids handing a typed-nil pointer to an interface field.
func storeOrNil(s *storage.S3Client) wiki.ObjectStore {
	if s == nil {
		return nil
	}
	return s
}

func setupRouter(
	authService *auth.Service,
	authHandler *auth.Handler,
	catalogHandler *catalog.Handler,
	templateHandler *template.Handler,
	typeHandler *dronetype.Handler,
	inventoryHandler *inventory.Handler,
	movementHandler *movement.Handler,
	expenseHandler *expense.Handler,
	wikiHandler *wiki.Handler,
	exportHandler *export.Handler,
) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// Public endpoints
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Authenticated, read-only
	authed := api.Group("")
	authed.Use(middleware.Auth(authService))
	{
		authed.GET("/auth/me", authHandler.Me)
		authed.GET("/auth/users", authHandler.ListUsers)
		authed.POST("/auth/approve", authHandler.Approve)

		authed.GET("/catalog/manufacturers", catalogHandler.ListManufacturers)
		authed.GET("/catalog/models", catalogHandler.ListDroneModels)
		authed.GET("/catalog/purposes", catalogHandler.ListPurposes)
		authed.GET("/catalog/roles", catalogHandler.ListRoles)
		authed.GET("/catalog/frequencies", catalogHandler.ListFrequencies)

		authed.GET("/templates/power", templateHandler.ListPowerTemplates)
		authed.GET("/templates/video", templateHandler.ListVideoTemplates)

		authed.GET("/drone-types", typeHandler.ListTypes)

		authed.GET("/uavs", inventoryHandler.ListUAVs)
		authed.GET("/uavs/:id", inventoryHandler.GetUAV)
		authed.GET("/components", inventoryHandler.ListComponents)
		authed.GET("/components/available-uavs", inventoryHandler.AvailableUAVs)
		authed.GET("/components/:id", inventoryHandler.GetComponent)
		authed.GET("/component-types", inventoryHandler.ListOtherTypes)

		authed.GET("/movements", movementHandler.GetHistory)
		authed.GET("/movements/uav/:id", movementHandler.GetUAVHistory)
		authed.GET("/locations", movementHandler.ListLocations)

		authed.GET("/expenses", expenseHandler.List)
		authed.GET("/expenses/:id/receipt", expenseHandler.DownloadReceipt)

		authed.GET("/wiki/topics", wikiHandler.ListTopics)
		authed.GET("/wiki/articles", wikiHandler.ListArticles)
		authed.GET("/wiki/articles/:slug", wikiHandler.GetArticle)
		authed.GET("/wiki/attachments/:id", wikiHandler.DownloadAttachment)

		authed.GET("/export/inventory", exportHandler.Inventory)
	}

	// Mutating endpoints, viewers excluded
	manage := api.Group("")
	manage.Use(middleware.Auth(authService), middleware.RequireEquipmentManager())
	{
		manage.POST("/catalog/manufacturers", catalogHandler.CreateManufacturer)
		manage.PUT("/catalog/manufacturers/:id", catalogHandler.UpdateManufacturer)
		manage.DELETE("/catalog/manufacturers/:id", catalogHandler.DeleteManufacturer)
		manage.POST("/catalog/models", catalogHandler.CreateDroneModel)
		manage.DELETE("/catalog/models/:id", catalogHandler.DeleteDroneModel)
		manage.POST("/catalog/purposes", catalogHandler.CreatePurpose)
		manage.POST("/catalog/roles", catalogHandler.CreateRole)
		manage.POST("/catalog/frequencies", catalogHandler.CreateFrequency)

		manage.POST("/templates/power", templateHandler.CreatePowerTemplate)
		manage.PUT("/templates/power/:id", templateHandler.UpdatePowerTemplate)
		manage.DELETE("/templates/power/:id", templateHandler.DeletePowerTemplate)
		manage.POST("/templates/power/:id/retire", templateHandler.RetirePowerTemplate)
		manage.POST("/templates/video", templateHandler.CreateVideoTemplate)
		manage.PUT("/templates/video/:id", templateHandler.UpdateVideoTemplate)
		manage.DELETE("/templates/video/:id", templateHandler.DeleteVideoTemplate)
		manage.POST("/templates/video/:id/retire", templateHandler.RetireVideoTemplate)

		manage.POST("/drone-types/fpv", typeHandler.CreateFPVType)
		manage.POST("/drone-types/optical", typeHandler.CreateOpticalType)
		manage.DELETE("/drone-types/fpv/:id", typeHandler.DeleteFPVType)
		manage.DELETE("/drone-types/optical/:id", typeHandler.DeleteOpticalType)

		manage.POST("/uavs", inventoryHandler.CreateUAVs)
		manage.PUT("/uavs/:id", inventoryHandler.UpdateUAV)
		manage.DELETE("/uavs/:id", inventoryHandler.DeleteUAV)
		manage.POST("/uavs/bulk", inventoryHandler.BulkAction)
		manage.POST("/uavs/:id/toggle-given", inventoryHandler.ToggleGiven)

		manage.POST("/components", inventoryHandler.CreateComponents)
		manage.PUT("/components/:id", inventoryHandler.UpdateComponent)
		manage.DELETE("/components/:id", inventoryHandler.DeleteComponent)
		manage.POST("/components/:id/attach", inventoryHandler.AttachComponent)
		manage.POST("/components/:id/detach", inventoryHandler.DetachComponent)
		manage.POST("/components/:id/damage", inventoryHandler.DamageComponent)
		manage.POST("/components/:id/restore", inventoryHandler.RestoreComponent)
		manage.POST("/component-types", inventoryHandler.CreateOtherType)
		manage.DELETE("/component-types/:id", inventoryHandler.DeleteOtherType)

		manage.POST("/expenses", expenseHandler.Create)
		manage.PUT("/expenses/:id", expenseHandler.Update)
		manage.DELETE("/expenses/:id", expenseHandler.Delete)
		manage.POST("/expenses/:id/receipt", expenseHandler.UploadReceipt)

		manage.POST("/wiki/topics", wikiHandler.CreateTopic)
		manage.DELETE("/wiki/topics/:id", wikiHandler.DeleteTopic)
		manage.POST("/wiki/articles", wikiHandler.CreateArticle)
		manage.PUT("/wiki/articles/:id", wikiHandler.UpdateArticle)
		manage.DELETE("/wiki/articles/:id", wikiHandler.DeleteArticle)
		manage.POST("/wiki/articles/:id/attachments", wikiHandler.UploadAttachment)
		manage.DELETE("/wiki/attachments/:id", wikiHandler.DeleteAttachment)
	}

	return router
}
