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

	"github.com/ivanfarhani22/management-ecommerce-sub000/events"
	"github.com/ivanfarhani22/management-ecommerce-sub000/gateway"
	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	pgrepo "github.com/ivanfarhani22/management-ecommerce-sub000/repository/postgres"
	"github.com/ivanfarhani22/management-ecommerce-sub000/routes"
	"github.com/ivanfarhani22/management-ecommerce-sub000/services"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Redis holds checkout sessions
	rdb := redis.NewClient(&redis.Options{
		Addr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	// RabbitMQ publisher for order/payment events. The API still works
	// without a broker, so a failed connect only downgrades to a no-op.
	var pub events.Publisher
	if amqpURL := os.Getenv("RABBITMQ_URL"); amqpURL != "" {
		p, err := events.NewPublisher(amqpURL, getenvDefault("RABBITMQ_EXCHANGE", "shop.events"))
		if err != nil {
			log.Printf("⚠️ RabbitMQ unavailable, events disabled: %v", err)
			pub = events.NopPublisher{}
		} else {
			pub = p
		}
	} else {
		pub = events.NopPublisher{}
	}

	// Payment gateway
	gwCfg, err := gateway.ConfigFromEnv()
	if err != nil {
		log.Fatalf("❌ Payment gateway config: %v", err)
	}
	gw := gateway.NewClient(gwCfg)

	// Repositories
	productRepo := pgrepo.NewProductRepository(db)
	cartRepo := pgrepo.NewCartRepository(db)
	orderRepo := pgrepo.NewOrderRepository(db)
	paymentRepo := pgrepo.NewPaymentRepository(db)

	// Services
	cartSvc := services.NewCartService(cartRepo, productRepo)
	orderSvc := services.NewOrderService(orderRepo, cartRepo, productRepo, paymentRepo, pub)
	paymentSvc := services.NewPaymentService(paymentRepo, orderRepo, pub)
	checkoutSvc := services.NewCheckoutService(services.NewRedisSessionStore(rdb), orderSvc, cartSvc, gw)
	chatbotSvc := services.NewChatbotService(productRepo, orderRepo)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		DB:       db,
		Carts:    cartSvc,
		Orders:   orderSvc,
		Payments: paymentSvc,
		Checkout: checkoutSvc,
		Chatbot:  chatbotSvc,
		Gateway:  gw,
	})

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

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
