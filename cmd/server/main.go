package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"parkspot/internal/api"
	"parkspot/internal/auth"
	"parkspot/internal/cache"
	"parkspot/internal/config"
	"parkspot/internal/repository"
	"parkspot/internal/service"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer database.Close()

	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	spotCache := cache.NewSpotCache(redisClient, cfg.SpotCacheTTL)

	hub := api.NewHub()
	go hub.Run()

	spotRepo := repository.NewSpotRepository(database)
	reservationRepo := repository.NewReservationRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	videoRepo := repository.NewVideoRepository(database)
	syncRepo := repository.NewSyncRepository(database)

	var detector service.Detector
	if cfg.Detector == "rekognition" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Fatalf("Failed to load AWS config: %v", err)
		}
		detector = service.NewRekognitionDetector(rekognition.NewFromConfig(awsCfg))
		log.Println("Vision detector: rekognition")
	} else {
		detector = service.NewRandomDetector(time.Now().UnixNano())
		log.Println("Vision detector: random")
	}

	sender := service.NewSenderService()
	authService := service.NewAuthService(profileRepo, cfg.JWTSecret, cfg.JWTExpiration)
	spotService := service.NewSpotService(spotRepo, spotCache, hub)
	reservationService := service.NewReservationService(reservationRepo, spotRepo, profileRepo, spotCache, hub, sender, cfg.AMQPURL)
	videoService := service.NewVideoService(videoRepo)
	visionService := service.NewVisionService(spotRepo, spotCache, hub, detector)
	jobService := service.NewJobService(syncRepo)

	authHandler := api.NewAuthHandler(authService)
	spotHandler := api.NewSpotHandler(spotService)
	reservationHandler := api.NewReservationHandler(reservationService)
	videoHandler := api.NewVideoHandler(videoService)
	visionHandler := api.NewVisionHandler(visionService, videoService)
	adminHandler := api.NewAdminHandler(spotService, reservationService, jobService)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")
	r.HandleFunc("/api/complexes", spotHandler.ListComplexes).Methods("GET")
	r.HandleFunc("/api/complexes/{complex}/spots", spotHandler.ListSpots).Methods("GET")
	r.HandleFunc("/api/complexes/{complex}/spots/{spot_id}", spotHandler.GetSpot).Methods("GET")
	r.HandleFunc("/api/vision", visionHandler.Analyze).Methods("POST")
	r.HandleFunc("/ws", hub.Serve)

	// Reservation creation validates the form before the login check, so it
	// carries optional auth instead of requiring it up front.
	create := r.Path("/api/reservations").Methods("POST").Subrouter()
	create.Use(auth.OptionalAuth(authService))
	create.HandleFunc("", reservationHandler.CreateReservation)

	// Authenticated endpoints
	user := r.PathPrefix("/api").Subrouter()
	user.Use(auth.RequireAuth(authService))
	user.HandleFunc("/me/reservations", reservationHandler.MyReservations).Methods("GET")
	user.HandleFunc("/reservations/{id}", reservationHandler.GetReservation).Methods("GET")
	user.HandleFunc("/reservations/{id}", reservationHandler.CancelReservation).Methods("DELETE")
	user.HandleFunc("/me/profile", authHandler.GetProfile).Methods("GET")
	user.HandleFunc("/me/profile", authHandler.UpdateProfile).Methods("PUT")
	user.HandleFunc("/me/password", authHandler.ChangePassword).Methods("PUT")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.RequireAuth(authService), auth.RequireAdmin)
	admin.HandleFunc("/spots", adminHandler.CreateSpot).Methods("POST")
	admin.HandleFunc("/spots/{id}/status", adminHandler.UpdateSpotStatus).Methods("PUT")
	admin.HandleFunc("/spots/{id}", adminHandler.DeleteSpot).Methods("DELETE")
	admin.HandleFunc("/complexes", adminHandler.CreateComplex).Methods("POST")
	admin.HandleFunc("/complexes/{complex}", adminHandler.RenameComplex).Methods("PUT")
	admin.HandleFunc("/reservations", adminHandler.ListReservations).Methods("GET")
	admin.HandleFunc("/reservations/{id}/status", adminHandler.UpdateReservationStatus).Methods("PUT")
	admin.HandleFunc("/sync", adminHandler.TriggerSync).Methods("POST")
	admin.HandleFunc("/feeds", videoHandler.CreateFeed).Methods("POST")
	admin.HandleFunc("/feeds", videoHandler.ListFeeds).Methods("GET")
	admin.HandleFunc("/feeds/{id}", videoHandler.GetFeed).Methods("GET")
	admin.HandleFunc("/feeds/{id}", videoHandler.UpdateFeed).Methods("PUT")
	admin.HandleFunc("/feeds/{id}", videoHandler.DeleteFeed).Methods("DELETE")
	admin.HandleFunc("/feeds/{id}/definitions", videoHandler.CreateDefinition).Methods("POST")
	admin.HandleFunc("/feeds/{id}/definitions", videoHandler.ListDefinitions).Methods("GET")
	admin.HandleFunc("/definitions/{definition_id}", videoHandler.DeleteDefinition).Methods("DELETE")

	// Periodic reservation-status / spot-state synchronization.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every "+cfg.SyncInterval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		jobService.Run(ctx)
	}); err != nil {
		log.Fatalf("Failed to schedule sync job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: handlers.LoggingHandler(os.Stdout, corsHandler(r)),
	}

	go func() {
		log.Printf("Server running on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
