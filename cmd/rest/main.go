package main

import (
	"context"
	"log"

	"syncpad-be/internal/bootstrap"
	"syncpad-be/internal/config"
	"syncpad-be/internal/server"
	"syncpad-be/internal/tracer"
	"syncpad-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	if err := container.ConsumerService.Start(context.Background()); err != nil {
		log.Printf("Background consumer error: %v", err)
	}

	// 5. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
