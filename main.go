package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lootopia-service/handlers"
	"lootopia-service/middleware"
	"lootopia-service/models"
	"lootopia-service/services"
	"lootopia-service/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New()

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		AllowCredentials: true, // the session cookie must travel with requests
		MaxAge:           86400,
	}))

	app.Use(middleware.SessionMiddleware())

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	// TranslateError lets the integrity layer discriminate duplicate-key and
	// foreign-key failures without parsing driver messages.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Map{},
		&models.Hunt{},
		&models.Cache{},
		&models.Collection{},
		&models.Theme{},
		&models.Illustration{},
		&models.Artifact{},
		&models.Badge{},
		&models.Offer{},
		&models.OtherReward{},
		&models.Transaction{},
		&models.PartnerColor{},
		&models.FaqEntry{},
		&models.HelpRequest{},
		&models.UserBadge{},
		&models.UserArtifact{},
		&models.UserOffer{},
		&models.UserOtherReward{},
		&models.HuntArtifact{},
		&models.HuntParticipant{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	catalog := services.NewCatalog(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go workers.PollSuspensions(ctx, db, 1*time.Minute)

	catalog.Hunts.StartScheduler()

	handlers.SetupRoutes(app, catalog)

	go func() {
		if err := app.Listen(":5200"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5200")
	log.Println("✅ Hunt lifecycle scheduler running (every 1m)")
	log.Println("✅ Suspension polling running (every 1m)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
