package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lmsplatform/config"
	"lmsplatform/internal/application/usecase"
	"lmsplatform/internal/infrastructure/cache"
	"lmsplatform/internal/infrastructure/repository"
	"lmsplatform/internal/infrastructure/security"
	"lmsplatform/internal/middleware"
	grpc_server "lmsplatform/internal/transport/grpc"
	handlers "lmsplatform/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatalf("DB connect failed: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	hasher := security.NewPasswordHasher()

	if cfg.SeedData {
		seeder := usecase.NewSeeder(userRepo, courseRepo, moduleRepo, lessonRepo, assignmentRepo, hasher)
		if _, err := seeder.Seed(context.Background()); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	courseUC := usecase.NewCourseUseCase(courseRepo, userRepo)
	userUC := usecase.NewUserUseCase(userRepo, hasher)
	enrollmentUC := usecase.NewEnrollmentUseCase(courseRepo, userRepo, enrollmentRepo, usecase.CapacityPolicy(cfg.EnrollmentPolicy))
	assignmentUC := usecase.NewAssignmentUseCase(courseRepo, assignmentRepo, submissionRepo, userRepo)

	h := handlers.Handlers{
		Courses:     handlers.NewCourseHandler(courseUC),
		Users:       handlers.NewUserHandler(userUC, enrollmentUC, assignmentUC),
		Content:     handlers.NewContentHandler(usecase.NewContentUseCase(courseRepo, moduleRepo, lessonRepo)),
		Assignments: handlers.NewAssignmentHandler(assignmentUC),
		Enrollments: handlers.NewEnrollmentHandler(enrollmentUC),
	}

	var rdb *redis.Client
	if cfg.AuthEnabled {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis at", cfg.RedisAddr)

		tokenCache := cache.NewTokenCache(rdb, security.RefreshTokenTTL)
		tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)
		authUC := usecase.NewAuthUseCase(userRepo, tokenCache, hasher, tokenManager)

		h.Auth = handlers.NewAuthHandler(authUC)
		h.Validator = authUC
		h.Limiter = middleware.NewRateLimiter(rdb)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		AllowedOrigins: cfg.Origins(),
		AuthEnabled:    cfg.AuthEnabled,
	}, h)
	httpServer := &http.Server{Addr: cfg.HTTPPort, Handler: router}

	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatalf("Failed to listen: %v", err)
	}
	grpcServer, healthServer := grpc_server.NewServer(courseUC)

	go func() {
		log.Printf("LMS HTTP API running on %s (enrollment policy: %s, auth: %t)", cfg.HTTPPort, cfg.EnrollmentPolicy, cfg.AuthEnabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run HTTP server: %v", err)
		}
	}()
	go func() {
		log.Printf("LMS catalog gRPC running on %s", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Println("Shutting down server...")
	healthServer.Shutdown()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	grpcServer.GracefulStop()
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func openDB(cfg config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == "sqlite" {
		log.Printf("Using SQLite database at %s", cfg.SQLitePath)
		return repository.OpenSQLite(cfg.SQLitePath)
	}
	return repository.OpenPostgres(cfg.PostgresDSN())
}
