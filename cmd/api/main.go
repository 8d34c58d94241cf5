package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	apicompliance "financials_automation/pkg/api/compliance"
	"financials_automation/pkg/api/config"
	"financials_automation/pkg/core/compliance"
	"financials_automation/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Load rule configuration, falling back to defaults
	cfg, err := compliance.LoadConfig("config/compliance.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Failed to load rule config: %v\n", err)
		fmt.Println("  Falling back to default thresholds")
		cfg = compliance.DefaultConfig()
	}

	// Database
	if err := store.InitDB(context.Background()); err != nil {
		fmt.Printf("[FATAL] Database init failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	snapshots := store.NewSnapshotRepo(store.GetPool())
	evaluator := compliance.NewEvaluator(snapshots, cfg)

	// Compliance endpoints
	apicompliance.InitHandler(evaluator, snapshots)
	http.HandleFunc("/api/compliance/validate", apicompliance.HandleValidate)
	http.HandleFunc("/api/compliance/note", apicompliance.HandleNote)
	http.HandleFunc("/api/compliance/statement-format", apicompliance.HandleStatementFormat)

	// Config endpoints
	configHandler := config.NewHandler(cfg)
	http.HandleFunc("/api/config", configHandler.HandleConfig)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/compliance/validate")
	fmt.Println("  - POST /api/compliance/note")
	fmt.Println("  - POST /api/compliance/statement-format")
	fmt.Println("  - GET  /api/config")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
