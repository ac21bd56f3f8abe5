// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/gurkanbulca/taskmanager/internal/api"
	"github.com/gurkanbulca/taskmanager/internal/cache"
	"github.com/gurkanbulca/taskmanager/internal/config"
	"github.com/gurkanbulca/taskmanager/internal/database"
	"github.com/gurkanbulca/taskmanager/internal/middleware"
	"github.com/gurkanbulca/taskmanager/internal/repository"
	"github.com/gurkanbulca/taskmanager/internal/service"
	"github.com/gurkanbulca/taskmanager/pkg/auth"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Connecting to %s database...", cfg.Database.Driver)
	db, err := database.Open(cfg.ToDatabaseConfig())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database connection: %v", err)
		}
	}()

	if cfg.Server.AutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			log.Fatalf("Failed to run auto migration: %v", err)
		}
	}

	tokenManager, err := auth.NewTokenManager(cfg.ToTokenConfig())
	if err != nil {
		log.Fatalf("Failed to create token manager: %v", err)
	}

	validationConfig := cfg.ToValidationConfig()
	validator := middleware.NewValidator(validationConfig)
	passwordManager := auth.NewPasswordManager(cfg.Security.BcryptCost).WithMinLength(validationConfig.MinPasswordLength)

	var users repository.UserStore = repository.NewUserRepository(db)
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedis(context.Background(), cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("[WARN] Redis unavailable, user lookups are not cached: %v", err)
		} else {
			defer client.Close()
			users = repository.NewCachedUserRepository(users, cache.NewRedisCache(client), cfg.Redis.UserCacheTTL)
			log.Printf("User lookups cached in Redis at %s", cfg.Redis.Addr)
		}
	}

	authService := service.NewAuthService(
		users,
		tokenManager,
		passwordManager,
		validator,
		service.NewSecurityLogger(nil),
	)
	taskService := service.NewTaskService(repository.NewTaskRepository(db), validator)

	httpServer := &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.Server.HTTPPort),
		Handler: api.NewRouter(api.Dependencies{
			AuthService:       authService,
			TaskService:       taskService,
			DB:                db,
			TrustProxyHeaders: cfg.Server.TrustProxy,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING) // For overall health

	// Register reflection for development
	if cfg.Server.EnableReflection {
		reflection.Register(grpcServer)
		log.Println("gRPC reflection enabled (disable in production)")
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCPort))
	if err != nil {
		log.Fatalf("Failed to listen: %v", err)
	}

	go func() {
		log.Printf("gRPC health server listening on port %s", cfg.Server.GRPCPort)
		if err := grpcServer.Serve(listener); err != nil {
			log.Fatalf("Failed to serve gRPC: %v", err)
		}
	}()

	go func() {
		log.Printf("Task Manager API listening on port %s", cfg.Server.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	healthServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	grpcServer.GracefulStop()
	log.Println("Server shutdown complete")
}
