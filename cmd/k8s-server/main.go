// Сервер для Kubernetes - читає конфігурацію зі змінних середовища
package main

import (
	"log"

	"genuka-bridge/internal/config"
)

func main() {
	cfg, err := config.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := config.StartServer(cfg); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
