package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/blueprint-wear/storefront-api/cache"
	"github.com/blueprint-wear/storefront-api/cart"
	maibControllers "github.com/blueprint-wear/storefront-api/controllers/maib"
	npControllers "github.com/blueprint-wear/storefront-api/controllers/novaposhta"
	orderControllers "github.com/blueprint-wear/storefront-api/controllers/order"
	"github.com/blueprint-wear/storefront-api/mailer"
	"github.com/blueprint-wear/storefront-api/models"
	"github.com/blueprint-wear/storefront-api/routes"
)

func main() {
	log.Println("✅ Starting storefront API...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Event{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-KEY", "X-MAIB-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Shared backends: Redis when configured, in-process otherwise
	locationCache, cartRepo := initBackends()

	deps := routes.Deps{
		MAIB:     maibControllers.NewClientFromEnv(),
		NP:       npControllers.NewClientFromEnv(locationCache),
		Hub:      orderControllers.NewHub(),
		Mailer:   mailer.NewFromEnv(),
		CartRepo: cartRepo,
	}

	// Setup routes
	routes.SetupRoutes(r, db, deps)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// initBackends picks the cache and cart backends. With REDIS_ADDR set both
// move to Redis so several app processes share state.
func initBackends() (cache.Cache, cart.Repository) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return cache.NewMemoryCache(), cart.NewMemoryRepository()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	log.Printf("✅ Using Redis backends at %s", addr)
	return cache.NewRedisCache(client), cart.NewRedisRepository(client)
}
