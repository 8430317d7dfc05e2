package main

import (
	"log"
	"net/http"
	"os"

	"careconnect/internal/config"
	"careconnect/internal/controllers"
	"careconnect/internal/location"
	"careconnect/internal/logger"
	"careconnect/internal/middleware"
	"careconnect/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Google Places client (falls back to mocks without an API key)
	controllers.Places = location.NewClientFromEnv()

	// Setup Gin router (recovery + request logging live inside)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server running at :%s", port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, handler))
}
