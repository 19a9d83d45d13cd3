package main

import (
	"log"

	"github.com/storeops/retaildesk/config"
	"github.com/storeops/retaildesk/controllers"
	"github.com/storeops/retaildesk/routes"
	"github.com/storeops/retaildesk/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Seed a manager account so the desk is usable on first boot
	if err := controllers.CreateDefaultManager(); err != nil {
		utils.LogError("Failed to create default manager: %v", err)
		log.Fatal("Failed to create default manager:", err)
	}

	// Set up router
	router := routes.SetupRouter()

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
