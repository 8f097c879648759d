package main

import (
	"context"
	"log"
	"os"

	"requisition/internal/config"
	"requisition/internal/database"
	"requisition/internal/handler"
	"requisition/internal/repository"
	"requisition/internal/service"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("Cannot open log file %s: %v", cfg.LogFile, err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	db, err := database.NewConnection(database.MemoryDSN(cfg.DBName), cfg.DBDebug)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}
	log.Printf("In-memory ledger %q ready", cfg.DBName)

	// Set up dependencies (Repository -> Service -> Handler)
	requisitionRepo := repository.NewRequisitionRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	requisitionService := service.NewRequisitionService(requisitionRepo, auditRepo, txManager)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	requisitionHandler := handler.NewRequisitionHandler(requisitionService)
	statisticsHandler := handler.NewStatisticsHandler(requisitionService, auditService)

	menu := handler.NewMenu(handler.NewConsole(os.Stdin, os.Stdout))
	requisitionHandler.RegisterRoutes(menu)
	statisticsHandler.RegisterRoutes(menu)
	menu.HandleExit("5", "Exit")

	if err := menu.Run(context.Background()); err != nil {
		log.Fatalf("Console failed: %v", err)
	}
}
