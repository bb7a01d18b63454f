// Command profilesrv is the HTTP front-end over the Algorithm Registry.
// Grounded on leanlp-BTC-coinjoin's cmd/engine/main.go: env-driven
// config with safe fallbacks for non-secret settings, optional Postgres
// connection that degrades to in-memory-only operation on failure
// rather than refusing to start.
package main

import (
	"context"
	"log"
	"os"

	"github.com/katalvlaran/profila/httpapi"
	"github.com/katalvlaran/profila/store"
)

func main() {
	log.Println("Starting profilesrv (FD/MFD profiling registry HTTP front-end)...")

	var sink *store.ResultSink
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		s, err := store.Connect(context.Background(), dbURL)
		if err != nil {
			log.Printf("warning: failed to connect to Postgres, continuing without persisted results: %v", err)
		} else {
			defer s.Close()
			if err := s.InitSchema(context.Background()); err != nil {
				log.Printf("warning: schema init failed: %v", err)
			}
			sink = s
		}
	} else {
		log.Println("DATABASE_URL not set — running without a persisted result store")
	}

	handler := httpapi.NewHandler(sink)
	router := httpapi.SetupRouter(handler)

	port := getEnvOrDefault("PORT", "8080")
	log.Printf("profilesrv listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
