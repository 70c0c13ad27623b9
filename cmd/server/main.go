package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/Talgatov/MentorWay/internal/config"
	"github.com/Talgatov/MentorWay/internal/database"
	"github.com/Talgatov/MentorWay/internal/handlers"
	"github.com/Talgatov/MentorWay/internal/repository"
	"github.com/Talgatov/MentorWay/internal/services"
	"github.com/Talgatov/MentorWay/internal/storage"
	"github.com/Talgatov/MentorWay/pkg/logger"
	"github.com/Talgatov/MentorWay/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	client, db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			logger.Log.WithError(err).Error("Failed to disconnect from database")
		}
	}()

	store := storage.NewMongoStore(client, db)
	storage.EnsureIndexes(context.Background(), db)

	// --- Repositories ---
	userRepo := repository.NewUserRepository(store)
	wayRepo := repository.NewWayRepository(store)
	dayReportRepo := repository.NewDayReportRepository(store)

	// --- Services ---
	userService := services.NewUserService(store, userRepo)
	dayReportService := services.NewDayReportService(store, dayReportRepo, wayRepo)
	wayService := services.NewWayService(store, wayRepo, userRepo, dayReportService)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	wayHandler := handlers.NewWayHandler(wayService, userService, cfg)
	dayReportHandler := handlers.NewDayReportHandler(dayReportService, cfg)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public way listings
	router.HandleFunc("/ways", wayHandler.GetWayPreviewsHandler).Methods("GET")
	router.HandleFunc("/ways/full", wayHandler.GetWaysHandler).Methods("GET")
	router.HandleFunc("/ways/{uuid}", wayHandler.GetWayHandler).Methods("GET")

	// Protected way routes
	protectedWayRoutes := router.PathPrefix("/ways").Subrouter()
	protectedWayRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedWayRoutes.HandleFunc("", wayHandler.CreateWayHandler).Methods("POST")
	protectedWayRoutes.HandleFunc("/{uuid}", wayHandler.UpdateWayHandler).Methods("PATCH")
	protectedWayRoutes.HandleFunc("/{uuid}", wayHandler.DeleteWayHandler).Methods("DELETE")
	protectedWayRoutes.HandleFunc("/{uuid}/copy", wayHandler.CopyWayHandler).Methods("POST")
	protectedWayRoutes.HandleFunc("/{uuid}/mentor-requests", wayHandler.RequestMentoringHandler).Methods("POST")
	protectedWayRoutes.HandleFunc("/{uuid}/mentor-requests/{userUuid}", wayHandler.DeclineMentorRequestHandler).Methods("DELETE")
	protectedWayRoutes.HandleFunc("/{uuid}/mentors/{userUuid}", wayHandler.AddMentorHandler).Methods("POST")
	protectedWayRoutes.HandleFunc("/{uuid}/mentors/{userUuid}", wayHandler.RemoveMentorHandler).Methods("DELETE")
	protectedWayRoutes.HandleFunc("/{uuid}/favorite", wayHandler.AddFavoriteHandler).Methods("POST")
	protectedWayRoutes.HandleFunc("/{uuid}/favorite", wayHandler.RemoveFavoriteHandler).Methods("DELETE")
	protectedWayRoutes.HandleFunc("/{wayUuid}/day-reports", dayReportHandler.CreateDayReportHandler).Methods("POST")
	protectedWayRoutes.HandleFunc("/{wayUuid}/day-reports/{uuid}", dayReportHandler.DeleteDayReportHandler).Methods("DELETE")

	// Protected day report routes
	protectedReportRoutes := router.PathPrefix("/day-reports").Subrouter()
	protectedReportRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedReportRoutes.HandleFunc("/{uuid}", dayReportHandler.GetDayReportHandler).Methods("GET")
	protectedReportRoutes.HandleFunc("/{uuid}", dayReportHandler.UpdateDayReportHandler).Methods("PATCH")
	protectedReportRoutes.HandleFunc("/{uuid}/records", dayReportHandler.AddRecordHandler).Methods("POST")
	protectedReportRoutes.HandleFunc("/{uuid}/records/{recordUuid}", dayReportHandler.UpdateRecordHandler).Methods("PATCH")

	// Register User routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")

	// Protected user routes (only authenticated users can access)
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("", userHandler.GetUsersHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/me", userHandler.GetCurrentUserHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{uuid}", userHandler.GetUserHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{uuid}", userHandler.UpdateUserHandler).Methods("PATCH")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // adjust to frontend origin
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
