package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"lending-office/configs"
	"lending-office/internal/handler"
	"lending-office/internal/middleware"
	"lending-office/internal/repository"
	"lending-office/internal/service"
	"lending-office/pkg/scheduler"
)

func main() {
	// Initialize logger
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	// Load configuration
	cfg, err := configs.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	repos := repository.NewRepository(db)

	// Initialize services
	services := service.NewService(service.Dependencies{
		Repos:  repos,
		Logger: log,
		Config: cfg,
	})

	// Initialize handlers
	handlers := handler.NewHandler(handler.Dependencies{
		Services: services,
		Logger:   log,
		Config:   cfg,
	})

	// Initialize router
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc("/register", handlers.User.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", handlers.User.Login).Methods(http.MethodPost)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Protected routes with middleware
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	api.Use(middleware.LogMiddleware(log))
	api.Use(middleware.MetricsMiddleware())

	// User endpoints
	api.HandleFunc("/me", handlers.User.GetProfile).Methods(http.MethodGet)

	// Loan product endpoints
	api.HandleFunc("/products", handlers.Product.Create).Methods(http.MethodPost)
	api.HandleFunc("/products", handlers.Product.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", handlers.Product.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", handlers.Product.Update).Methods(http.MethodPut)

	// Loan application endpoints
	api.HandleFunc("/applications", handlers.Application.Submit).Methods(http.MethodPost)
	api.HandleFunc("/applications", handlers.Application.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/applications/{id}", handlers.Application.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/applications/{id}/approve", handlers.Application.Approve).Methods(http.MethodPost)
	api.HandleFunc("/applications/{id}/reject", handlers.Application.Reject).Methods(http.MethodPost)

	// Loan endpoints
	api.HandleFunc("/loans", handlers.Loan.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}", handlers.Loan.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/schedule", handlers.Loan.GetSchedule).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/statement", handlers.Loan.GetStatement).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/default", handlers.Loan.MarkDefaulted).Methods(http.MethodPost)

	// Payment endpoints
	api.HandleFunc("/loans/{id}/payments", handlers.Payment.Record).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}/payments", handlers.Payment.GetAll).Methods(http.MethodGet)

	// Report endpoints
	api.HandleFunc("/reports/portfolio", handlers.Report.Portfolio).Methods(http.MethodGet)

	// Start the overdue-marking scheduler
	overdueScheduler := scheduler.NewScheduler(services.Loan, log)
	overdueScheduler.Start(time.Duration(cfg.Scheduler.IntervalHours) * time.Hour)
	defer overdueScheduler.Stop()

	// Configure and start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}

	// Start the server in a goroutine
	go func() {
		log.Infof("Starting server on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Create a deadline context for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	// Shutdown the server
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Info("Server gracefully stopped")
}

func initDB(cfg *configs.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.DBName)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}
