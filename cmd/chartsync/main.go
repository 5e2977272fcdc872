package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/raykavin/chartsync/pkg/chart"
	"github.com/raykavin/chartsync/pkg/chart/indicator"
	"github.com/raykavin/chartsync/pkg/chart/remote"
	zerologger "github.com/raykavin/chartsync/pkg/logger/zerolog"
	"github.com/raykavin/chartsync/pkg/series"
	"github.com/raykavin/chartsync/pkg/storage"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// Command line flags
var (
	tokenID   string
	timeRange string
	port      int
	logLevel  string
	showFloor bool
	showGtwap bool
	maPeriod  int
	prefsFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "chartsync",
		Short:   "Chart synchronization engine for synthetic price series",
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVarP(&tokenID, "token", "t", "DEMO", "Token identifier seeding the price scenario")
	rootCmd.PersistentFlags().StringVarP(&timeRange, "range", "r", "1D", "Time range selector (1H, 1D, 1W, 1M, 1Y or a duration)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level")

	rootCmd.AddCommand(buildServeCmd(), buildSummaryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an interactive chart for a generated series",
		RunE:  runServe,
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port")
	serveCmd.Flags().BoolVar(&showFloor, "floor", true, "Show the floor price overlay")
	serveCmd.Flags().BoolVar(&showGtwap, "gtwap", true, "Show the GTWAP overlay")
	serveCmd.Flags().IntVar(&maPeriod, "ma", 0, "Add a simple moving average overlay with this period")
	serveCmd.Flags().StringVar(&prefsFile, "prefs", "", "Preference database file (default in-memory)")

	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	log, err := zerologger.New(logLevel, dateTimeLayout, true, false)
	if err != nil {
		return err
	}

	store, err := openPreferences()
	if err != nil {
		return err
	}

	prefs, err := store.Preferences(cmd.Context(), tokenID)
	if err != nil {
		log.WithError(err).Warn("falling back to default preferences")
	}

	server, err := remote.NewServer(log, remote.WithPort(port))
	if err != nil {
		return err
	}

	adapter := chart.NewAdapter(remote.NewFactory(server, log), chart.WithLogger(log))
	defer adapter.Dispose()

	result := series.Generate(tokenID, timeRange)
	summary := result.Summary()
	log.WithFields(map[string]any{
		"token":  tokenID,
		"range":  timeRange,
		"points": len(result.Candles),
		"floor":  summary.FloorPrice,
		"gtwap":  summary.GTWAPPrice,
	}).Info("series generated")

	adapter.ApplyChartData(result.Candles, result.FloorSeries, result.GTWAPSeries)
	adapter.SetAxisType(prefs.AxisType)
	adapter.SetFloorVisible(showFloor)
	adapter.SetGTWAPVisible(showGtwap)
	if prefs.Timezone != "" {
		adapter.SetTimezone(prefs.Timezone)
	}
	if maPeriod > 0 {
		ma := indicator.SMA(maPeriod)
		adapter.SetMAOverlay(true, ma.Load(result.Candles))
	}

	prefs.ShowFloor = showFloor
	prefs.ShowGTWAP = showGtwap
	if err := store.SavePreferences(cmd.Context(), prefs); err != nil {
		log.WithError(err).Warn("failed to persist preferences")
	}

	go func() {
		if err := adapter.Init(context.Background()); err != nil {
			log.WithError(err).Error("chart initialization failed")
		}
	}()

	return server.Start()
}

func openPreferences() (storage.Storage, error) {
	if prefsFile == "" {
		return storage.NewFromMemory()
	}
	return storage.NewFromFile(prefsFile)
}

func buildSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print a summary of the generated series",
		RunE:  runSummary,
	}
}

func runSummary(_ *cobra.Command, _ []string) error {
	result := series.Generate(tokenID, timeRange)
	if len(result.Candles) == 0 {
		return fmt.Errorf("no candles generated for %q", timeRange)
	}

	first, last := result.Candles[0], result.Candles[len(result.Candles)-1]
	summary := result.Summary()
	closes := result.Closes()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"Token", tokenID},
		{"Range", timeRange},
		{"Points", strconv.Itoa(len(result.Candles))},
		{"From", first.Time().Format(dateTimeLayout)},
		{"To", last.Time().Format(dateTimeLayout)},
		{"Last close", formatPrice(closes.Last(0))},
		{"Recent closes", formatPrices(closes.LastValues(5))},
		{"Floor price", formatPrice(summary.FloorPrice)},
		{"GTWAP price", formatPrice(summary.GTWAPPrice)},
	})
	table.Render()

	return nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatPrices(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatPrice(v)
	}
	return strings.Join(parts, " ")
}
