package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/btvapps/timelogr/internal/airtable"
	"github.com/btvapps/timelogr/internal/app"
	"github.com/btvapps/timelogr/internal/config"
	"github.com/btvapps/timelogr/internal/report"
	"github.com/btvapps/timelogr/internal/timelog"
)

var (
	datesFlag  string
	usersFlag  string
	sourceFlag string
	outputDir  string
	jsonOut    bool
	xlsxOut    bool
	csvOut     bool

	serveAddr string

	exportUser  string
	confirmedBy string
)

var rootCmd = &cobra.Command{
	Use:   "timelogr",
	Short: "Aggregate and share team timelogs from GitLab or Jira",
	Long: `timelogr fetches time-tracking entries from GitLab (GraphQL) or Jira (REST)
for a set of dates and users, groups them per day, totals them per user,
and renders a shareable text report.`,
	Run: runFetch,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the aggregation pipeline over HTTP",
	Run:   runServe,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Push one user's aggregated timelogs to Airtable",
	Run:   runExport,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)

	rootCmd.PersistentFlags().StringVarP(&datesFlag, "dates", "d", "", "Comma-separated dates (YYYY-MM-DD); defaults to the previous workday(s)")
	rootCmd.PersistentFlags().StringVarP(&usersFlag, "users", "u", "", "Comma-separated user display names (required)")
	rootCmd.PersistentFlags().StringVarP(&sourceFlag, "source", "s", "gitlab", `Data source: "gitlab" or "jira"`)

	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for exports (defaults to OUTPUT_DIR)")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Export the raw aggregation result as JSON")
	rootCmd.Flags().BoolVar(&xlsxOut, "xlsx", false, "Export an xlsx workbook with dashboard and per-day sheets")
	rootCmd.Flags().BoolVar(&csvOut, "csv", false, "Export entry list and totals as CSV")

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")

	exportCmd.Flags().StringVar(&exportUser, "user", "", "User whose entries are exported (required)")
	exportCmd.Flags().StringVar(&confirmedBy, "confirmed-by", "", "Name of the person confirming the export (required)")
}

// resolveRequest turns the shared flags into an aggregation request.
func resolveRequest() timelog.Request {
	dates := parseCommaList(datesFlag)
	if len(dates) == 0 {
		dates = timelog.DatesToFetch(time.Now())
	}
	return timelog.Request{
		TargetDates:   dates,
		SelectedUsers: parseCommaList(usersFlag),
		DataSource:    sourceFlag,
	}
}

func setup() (*config.Config, *app.Application, bool) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		color.Red("Configuration error: %v", err)
		return nil, nil, false
	}
	if err := cfg.ValidateSource(sourceFlag); err != nil {
		color.Red("Configuration error: %v", err)
		return nil, nil, false
	}
	return cfg, app.New(cfg), true
}

func runFetch(cmd *cobra.Command, args []string) {
	req := resolveRequest()
	if len(req.SelectedUsers) == 0 {
		color.Red("At least one user is required. Use --users")
		os.Exit(1)
	}

	cfg, application, ok := setup()
	if !ok {
		os.Exit(1)
	}

	fmt.Printf("Fetching timelogs from %s for %s\n", sourceFlag, timelog.FormatDateRange(req.TargetDates))

	bar := newSpinner("Fetching timelogs")
	data, err := application.Service.Fetch(context.Background(), req)
	finishBar(bar)

	if err != nil {
		color.Red("\nError fetching timelogs: %v", err)
		os.Exit(1)
	}

	for _, warning := range data.Warnings {
		color.Yellow("warning: %s", warning)
	}

	fmt.Println()
	printEntryTable(data, req.TargetDates)
	fmt.Println()

	builder := report.NewTextBuilder(cfg.Aliases)
	fmt.Println(builder.BuildReport(data, req.TargetDates))

	stats, err := report.Statistics(data, req.TargetDates)
	if err != nil {
		color.Red("Error computing statistics: %v", err)
		os.Exit(1)
	}
	fmt.Printf("Team members: %d  Entries: %d  Days with data: %d  Total time: %s\n",
		stats["members"], stats["entries"], stats["days"], stats["total_time"])

	if jsonOut || xlsxOut || csvOut {
		exportResults(cfg, data, req.TargetDates)
	}
}

func exportResults(cfg *config.Config, data *timelog.Data, dates []string) {
	dir := outputDir
	if dir == "" {
		dir = cfg.Output.Directory
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		color.Red("Failed to create output directory: %v", err)
		os.Exit(1)
	}

	if jsonOut {
		filename := fmt.Sprintf("timelogs_%s.json", time.Now().Format("20060102_150405"))
		exporter := report.NewExporter(dir)
		if err := exporter.ExportJSON(data, filename); err != nil {
			color.Red("Failed to export JSON: %v", err)
		} else {
			fmt.Printf("  -> %s (JSON)\n", filename)
		}
	}

	if xlsxOut {
		exporter := report.NewExcelExporter(dir)
		path, err := exporter.Export(data, dates)
		if err != nil {
			color.Red("Failed to export xlsx: %v", err)
		} else {
			fmt.Printf("  -> %s (xlsx)\n", path)
		}
	}

	if csvOut {
		exporter := report.NewCSVExporter(dir)
		if err := exporter.Export(data, dates); err != nil {
			color.Red("Failed to export CSV: %v", err)
		} else {
			fmt.Printf("  -> CSV reports in %s/\n", dir)
		}
	}
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		color.Red("Configuration error: %v", err)
		os.Exit(1)
	}

	application := app.New(cfg)
	handler := apiHandler(application)

	application.Logger.Info("listening", "addr", serveAddr)
	if err := http.ListenAndServe(serveAddr, handler); err != nil {
		color.Red("Server error: %v", err)
		os.Exit(1)
	}
}

func runExport(cmd *cobra.Command, args []string) {
	if exportUser == "" || confirmedBy == "" {
		color.Red("--user and --confirmed-by are required")
		os.Exit(1)
	}

	req := resolveRequest()
	if len(req.SelectedUsers) == 0 {
		req.SelectedUsers = []string{exportUser}
	}

	cfg, application, ok := setup()
	if !ok {
		os.Exit(1)
	}
	if err := cfg.ValidateAirtable(); err != nil {
		color.Red("Configuration error: %v", err)
		os.Exit(1)
	}

	bar := newSpinner("Fetching timelogs")
	data, err := application.Service.Fetch(context.Background(), req)
	finishBar(bar)
	if err != nil {
		color.Red("\nError fetching timelogs: %v", err)
		os.Exit(1)
	}

	records := airtable.Transform(data, exportUser)
	if len(records) == 0 {
		color.Yellow("No records found for %s, nothing to export", exportUser)
		return
	}

	client := airtable.NewClient(cfg.Airtable.AccessToken, cfg.Airtable.BaseID, cfg.Airtable.TableName)
	created, err := client.Export(context.Background(), records)
	if err != nil {
		color.Red("Export failed: %v", err)
		os.Exit(1)
	}

	color.Green("Exported %d records to Airtable (confirmed by %s)", created, confirmedBy)
}
