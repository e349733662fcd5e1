package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pricehypo/adapters/tabular"
	"pricehypo/app"
	"pricehypo/internal"
	"pricehypo/internal/config"
	"pricehypo/internal/report"
	"pricehypo/ui"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "pricehypo",
		Short:         "Fuel-type price t-test and price regression for used-car listings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newServeCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var format string
	var workers int
	var sheet string

	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Run the hypothesis tests on one or more CSV/XLSX files",
		Long: `Run the t-test and regression on each file. With no arguments the file
named by DATA_FILE is analysed. Files are processed concurrently, reports are
printed in argument order.

Example: pricehypo analyze listings.csv archive.xlsx --format markdown --workers 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			appConfig, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = appConfig.Report.Format
			}
			if !cmd.Flags().Changed("workers") {
				workers = appConfig.Batch.Workers
			}
			if !cmd.Flags().Changed("sheet") {
				sheet = appConfig.Data.Sheet
			}
			if len(args) == 0 {
				args = []string{appConfig.Data.File}
			}

			reportFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			service := newService(appConfig, sheet)
			if len(args) == 1 {
				outcome := service.PerformHypothesisTests(cmd.Context(), args[0])
				return report.Write(cmd.OutOrStdout(), reportFormat, outcome)
			}
			records := service.RunBatch(cmd.Context(), args, workers)
			return report.WriteBatch(cmd.OutOrStdout(), reportFormat, records)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Report format: text, json, markdown, html")
	cmd.Flags().IntVar(&workers, "workers", 4, "Maximum files analysed concurrently")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read from XLSX inputs (default first sheet)")

	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis endpoint over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			appConfig, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("port") {
				port = appConfig.Server.Port
			}

			logger := newLogger(appConfig)
			server := ui.NewApp(newService(appConfig, appConfig.Data.Sheet), logger)
			return server.Start(cmd.Context(), ui.Config{Port: port})
		},
	}

	cmd.Flags().StringVar(&port, "port", "8080", "Port to listen on")

	return cmd
}

func newLogger(appConfig *config.Config) *internal.Logger {
	return internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
}

func newService(appConfig *config.Config, sheet string) *app.HypothesisService {
	logger := newLogger(appConfig)
	return app.NewHypothesisService(tabular.NewDataReader(sheet, logger), logger)
}
