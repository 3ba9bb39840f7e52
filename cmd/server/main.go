package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mkobayashi/relationship-tracker-api/internal/config"
	"github.com/mkobayashi/relationship-tracker-api/internal/constants"
	"github.com/mkobayashi/relationship-tracker-api/internal/database"
	"github.com/mkobayashi/relationship-tracker-api/internal/handlers"
	"github.com/mkobayashi/relationship-tracker-api/internal/middleware"
	"github.com/mkobayashi/relationship-tracker-api/internal/repository"
	"github.com/mkobayashi/relationship-tracker-api/internal/services"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Info: no .env file loaded: %v", err)
	}
	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Idempotent: safe on every start, never duplicates a catalog entry.
	if err := database.Seed(db, cfg.SeedDemo); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.NoCache())

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	userRepo := repository.NewUserRepository(db)
	personRepo := repository.NewPersonRepository(db)
	typeRepo := repository.NewRelationshipTypeRepository(db)
	edgeRepo := repository.NewRelationshipEdgeRepository(db)

	authService := services.NewAuthService(userRepo)
	personService := services.NewPersonService(personRepo)
	relationshipService := services.NewRelationshipService(typeRepo, edgeRepo, personRepo)

	authHandler := handlers.NewAuthHandler(authService)
	personHandler := handlers.NewPersonHandler(personService)
	relationshipHandler := handlers.NewRelationshipHandler(relationshipService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Relationship Tracker API is running",
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/signin", authHandler.Signin)
			auth.POST("/signout", middleware.RequireAuth(), authHandler.Signout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PATCH("/me", middleware.RequireAuth(), authHandler.UpdateName)
		}

		persons := api.Group("/persons")
		persons.Use(middleware.RequireAuth())
		{
			persons.GET("", personHandler.ListPersons)
			persons.POST("", personHandler.CreatePerson)
			persons.GET("/:id", personHandler.GetPerson)
			persons.PUT("/:id", middleware.RequirePersonWrite(db), personHandler.UpdatePerson)
			persons.DELETE("/:id", middleware.RequirePersonWrite(db), personHandler.DeletePerson)
			persons.GET("/:id/relationships", relationshipHandler.ListPersonRelationships)
			persons.POST("/:id/relationships", relationshipHandler.AddRelationship)
		}

		relationships := api.Group("/relationships")
		relationships.Use(middleware.RequireAuth())
		{
			relationships.GET("", relationshipHandler.ListRelationshipTypes)
			relationships.PATCH("/:id", relationshipHandler.UpdateRelationship)
			relationships.DELETE("/:id", relationshipHandler.DeleteRelationship)
		}
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsHandler.Handler(r),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := database.Close(db); err != nil {
		log.Printf("Database close error: %v", err)
	}
	log.Println("Server stopped")
}
