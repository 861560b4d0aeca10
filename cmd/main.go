package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davidkairu/TaskManagerApp/db"
	"github.com/davidkairu/TaskManagerApp/internal/auth"
	"github.com/davidkairu/TaskManagerApp/internal/config"
	"github.com/davidkairu/TaskManagerApp/internal/session"
	"github.com/davidkairu/TaskManagerApp/internal/task"
	"github.com/davidkairu/TaskManagerApp/internal/web"
	"github.com/davidkairu/TaskManagerApp/middleware"
)

// Split loggers so normal output and failures land on separate streams
var (
	infoLogger  = log.New(os.Stdout, "", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		errorLogger.Fatalf("Failed to load configuration: %v", err)
	}

	// Storage failures at startup are fatal; there is no degraded mode.
	sqliteDB, err := db.ConnectToSQLite(cfg.SQLitePath)
	if err != nil {
		errorLogger.Fatalf("Failed to connect to SQLite: %v", err)
	}
	defer sqliteDB.Close()

	if err := db.InitializeSchema(sqliteDB); err != nil {
		errorLogger.Fatalf("Failed to initialize database schema: %v", err)
	}

	repoFactory := db.NewRepositoryFactory(sqliteDB)
	userRepo := repoFactory.NewUserRepository()
	taskRepo := repoFactory.NewTaskRepository()

	// Serialize writes for SQLite's single-writer model
	writer := db.NewWriter()
	defer writer.Stop()

	authService := auth.NewAuthService(userRepo, writer)
	taskService := task.NewTaskService(taskRepo, writer)
	sessionManager := session.NewManager(cfg.SessionSecret)

	renderer, err := web.NewHTMLRenderer(cfg.TemplateGlob)
	if err != nil {
		errorLogger.Fatalf("Failed to load templates: %v", err)
	}

	webHandler := web.NewWebHandler(authService, taskService, sessionManager, renderer)
	mw := middleware.NewMiddleware(sessionManager)
	router := webHandler.SetupRoutes(mw)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: middleware.LoggingMiddleware(router),
	}

	go func() {
		infoLogger.Printf("Server is starting on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errorLogger.Fatalf("Server ListenAndServe error: %v", err)
		}
	}()

	waitForShutdown(server)
}

func waitForShutdown(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	sig := <-stop
	infoLogger.Printf("Received shutdown signal: %v", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	infoLogger.Println("Shutting down the server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		errorLogger.Printf("Server Shutdown error: %v", err)
		os.Exit(1)
	}
	infoLogger.Println("Server stopped")
}
