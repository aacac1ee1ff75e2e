package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"token-registry-service/conf"
	"token-registry-service/controller"
	"token-registry-service/database"
	"token-registry-service/service/event_service"
	"token-registry-service/service/registry_service"
)

var ENV string

func init() {
	flag.StringVar(&ENV, "env", "mainnet", "Environment: loc/mainnet/testnet")
}

// @title           Token Registry Service API
// @version         1.0
// @description     Token Registry Service API, provides token mint, transfer, approval and event log functionality
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:7461
// @BasePath  /

// @schemes https http

func main() {
	// Initialize all components
	srv, cleanup := initAll()
	defer cleanup()

	// Start HTTP API service (in goroutine)
	go startServer(srv)
	log.Println("Registry API service started successfully")

	// Wait for shutdown signal
	waitForShutdown()

	log.Println("Shutting down registry service...")

	// Gracefully shutdown HTTP service
	shutdownServer(srv)

	log.Println("Server exited")
}

// initEnv initialize environment
func initEnv() {
	if ENV == "loc" {
		conf.SystemEnvironmentEnum = conf.LocalEnvironmentEnum
	} else if ENV == "mainnet" {
		conf.SystemEnvironmentEnum = conf.MainnetEnvironmentEnum
	} else if ENV == "testnet" {
		conf.SystemEnvironmentEnum = conf.TestnetEnvironmentEnum
	}
	fmt.Printf("Environment: %s\n", ENV)
}

// initAll initialize all components
func initAll() (*http.Server, func()) {
	// Parse command line parameters
	flag.Parse()

	// Set environment
	initEnv()

	// Initialize configuration
	if err := conf.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	log.Printf("Configuration loaded: env=%s, contract=%s, port=%s", ENV, conf.Cfg.Contract.AccountID, conf.Cfg.Server.Port)

	// Initialize database
	if err := initDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Create registry service
	registryService, err := registry_service.NewRegistryService()
	if err != nil {
		log.Fatalf("Failed to create registry service: %v", err)
	}

	// Wire post-commit event sinks
	var zmqPub *event_service.ZmqPublisher
	if conf.Cfg.Events.ZmqEnabled {
		zmqPub, err = event_service.NewZmqPublisher(conf.Cfg.Events.ZmqAddress)
		if err != nil {
			log.Fatalf("Failed to start ZMQ publisher: %v", err)
		}
		registryService.AddEventSink(zmqPub)
		log.Printf("ZMQ event publisher listening on %s", conf.Cfg.Events.ZmqAddress)
	}
	if conf.Cfg.Events.WebhookUrl != "" {
		registryService.AddEventSink(event_service.NewWebhookNotifier(conf.Cfg.Events.WebhookUrl))
		log.Printf("Webhook event notifier targeting %s", conf.Cfg.Events.WebhookUrl)
	}

	// Setup registry service router
	router := controller.SetupRegistryRouter(registryService)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + conf.Cfg.Server.Port,
		Handler: router,
	}

	// Return server and cleanup function
	cleanup := func() {
		if zmqPub != nil {
			zmqPub.Close()
		}
		if database.DB != nil {
			database.DB.Close()
		}
	}

	return srv, cleanup
}

// initDatabase initialize database based on configuration
func initDatabase() error {
	dbType := database.DBType(conf.Cfg.Database.Type)

	switch dbType {
	case database.DBTypePebble:
		config := &database.PebbleConfig{
			DataDir: conf.Cfg.Database.DataDir,
		}
		return database.InitDatabase(database.DBTypePebble, config)
	default:
		return fmt.Errorf("unsupported database type: %s", dbType)
	}
}

// startServer start HTTP server
func startServer(srv *http.Server) {
	log.Printf("Registry API service starting on port %s...", conf.Cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// waitForShutdown wait for shutdown signal
func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}

// shutdownServer gracefully shutdown server
func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
