package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/pharmadash/backend-go/internal/audit"
	"github.com/pharmadash/backend-go/internal/config"
	"github.com/pharmadash/backend-go/internal/intake"
	"github.com/pharmadash/backend-go/internal/repository/postgres"
	"github.com/pharmadash/backend-go/internal/service"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Create router
	r := mux.NewRouter()

	// Initialize Database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Repositories
	medicineRepo := postgres.NewMedicineRepository(db)
	batchRepo := postgres.NewBatchRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	// Initialize Services
	recorder := audit.NewRecorder(auditRepo)
	inventoryService := service.NewInventoryService(batchRepo, medicineRepo, recorder, cfg.App.AlertDays)

	// Register routes
	intakeHandler := intake.NewHandler(inventoryService)
	intakeHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Intake server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
