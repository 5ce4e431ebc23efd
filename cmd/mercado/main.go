// cmd/mercado/main.go
package main

import (
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/gfranca/mercado/internal/cli"
	"github.com/gfranca/mercado/internal/config"
	"github.com/gfranca/mercado/internal/models"
	"github.com/gfranca/mercado/internal/services"
	"github.com/gfranca/mercado/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Configure logging
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	models.SetShippingVolumeFactor(cfg.Shipping.VolumeFactor)

	// Initialize the flat-file store and the services over it
	db, err := storage.NewDB(cfg.Storage.DataDir)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	users, err := services.NewUserService(db)
	if err != nil {
		log.Fatal("Failed to load users:", err)
	}

	catalog, err := services.NewCatalogStore(db)
	if err != nil {
		log.Fatal("Failed to load catalog:", err)
	}

	orders, err := services.NewOrderBook(db, catalog)
	if err != nil {
		log.Fatal("Failed to load order book:", err)
	}

	app := cli.NewApp(cfg, users, catalog, orders, os.Stdin, os.Stdout)
	if err := app.Run(); err != nil {
		log.Fatal("Session aborted:", err)
	}
}
