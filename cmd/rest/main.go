package main

import (
	"context"
	"log"

	"propscore-webapp-be/internal/bootstrap"
	"propscore-webapp-be/internal/config"
	"propscore-webapp-be/internal/server"
	"propscore-webapp-be/internal/tracer"
	"propscore-webapp-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Archive Database (optional)
	var gormDB *gorm.DB
	if cfg.Archive.Connection != "" {
		db, err := database.NewGormDB(cfg.Archive.Connection)
		if err != nil {
			log.Panicf("Unable to connect to archive DB: %v", err)
		}
		gormDB = db
	} else {
		log.Println("[WARN] DB_CONNECTION_STRING not set; search archiving disabled")
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
