package main

import (
	"context"
	"log"
	"os"

	"pricehypo/adapters/tabular"
	"pricehypo/app"
	"pricehypo/internal"
	"pricehypo/internal/config"
	"pricehypo/internal/report"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
	service := app.NewHypothesisService(tabular.NewDataReader(appConfig.Data.Sheet, logger), logger)

	outcome := service.PerformHypothesisTests(context.Background(), appConfig.Data.File)

	// the standalone run always prints the plain-text report
	if err := report.Write(os.Stdout, report.FormatText, outcome); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}
