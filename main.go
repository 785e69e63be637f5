package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/config"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/database"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/handlers"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/middleware"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/routes"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/websocket"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/workflow"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	config.LoadConfig()

	// Database connection
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Printf("Index creation warning: %v", err)
	}
	cancel()

	repos := database.NewRepos()
	hub := websocket.NewHub()
	engine := workflow.NewEngine(repos.Stores(), nil, hub)
	handlers.Init(engine, repos)

	// Router setup
	router := mux.NewRouter()
	routes.RegisterRoutes(router, hub)

	// Global middlewares (order matters!)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.CorsMiddleware)
	router.Use(middleware.RateLimitMiddleware)

	// HTTP server configuration
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Asset workflow service listening on http://localhost:%s", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	database.Disconnect()
	log.Println("Server stopped gracefully")
}
