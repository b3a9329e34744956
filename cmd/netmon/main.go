// Package main is the CLI entry point for netmon.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eliteGoblin/focusd/netmon/internal/config"
	"github.com/eliteGoblin/focusd/netmon/internal/daemon"
	"github.com/eliteGoblin/focusd/netmon/internal/domain"
	"github.com/eliteGoblin/focusd/netmon/internal/infra"
	"github.com/eliteGoblin/focusd/netmon/internal/ui"
	"github.com/eliteGoblin/focusd/netmon/internal/ui/tui"
	"github.com/eliteGoblin/focusd/netmon/internal/usecase"
)

var (
	// Version info (set via ldflags)
	Version   = "0.1.0"
	Commit    = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "netmon",
	Short: "Network connectivity monitor",
	Long: `netmon watches network connectivity, logs every connect and disconnect
with a timestamp, and keeps a running total of connected time.

Use 'netmon run' for a headless monitor, 'netmon watch' for an interactive
view, and 'netmon report' to print the log for a day.`,
	Version: Version,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the connectivity monitor in the foreground",
	Long: `Samples connectivity until interrupted, recording transitions.
With --render the day report is redrawn to stdout every refresh interval.`,
	RunE: runRun,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive status and day log",
	Long: `Shows status, network type, the log for a selected day and the total
connected time. Use the arrow keys to change day, t for today, q to quit.
A monitor is started in-process unless one is already running.`,
	RunE: runWatch,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the log for a day",
	RunE:  runReport,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show monitor and connectivity status",
	RunE:  runStatus,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete recorded transitions",
	Long:  `Deletes the transition log. The total connected time is kept unless --all is given.`,
	RunE:  runClear,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints version, commit, and build time. Use --json for machine-readable output.`,
	Run:   runVersion,
}

var (
	configPath string
	renderRun  bool
	reportDate string
	colorOut   bool
	clearAll   bool
	jsonOutput bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", infra.DetectPaths().ConfigPath, "Path to YAML config")
	runCmd.Flags().BoolVar(&renderRun, "render", false, "Redraw the day report to stdout")
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Day to show (YYYY-MM-DD, default today)")
	reportCmd.Flags().BoolVar(&colorOut, "color", false, "Color Connected/Disconnected lines")
	clearCmd.Flags().BoolVar(&clearAll, "all", false, "Also reset the total connected time")
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(versionCmd)
}

// app bundles the stores every command needs.
type app struct {
	cfg    config.Config
	kv     domain.KeyValueStore
	logs   *usecase.KVLogStore
	totals *usecase.KVTotalStore
}

func openApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	kv, err := cfg.OpenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return &app{
		cfg:    cfg,
		kv:     kv,
		logs:   usecase.NewLogStore(kv),
		totals: usecase.NewTotalStore(kv),
	}, nil
}

func (a *app) Close() {
	_ = a.kv.Close()
}

func (a *app) registry() *usecase.MonitorRegistry {
	return usecase.NewMonitorRegistry(a.kv, infra.NewProcessChecker())
}

// newMonitor wires probe, tracker and registry into a monitor.
func (a *app) newMonitor(logger *zap.Logger) (*daemon.Monitor, *usecase.Tracker, error) {
	tracker, err := usecase.NewTracker(a.logs, a.totals, logger)
	if err != nil {
		return nil, nil, err
	}
	monitorConfig := daemon.DefaultMonitorConfig()
	monitorConfig.PollInterval = a.cfg.PollInterval()
	monitorConfig.ClearLogsOnStart = a.cfg.ClearLogsOnStart

	monitor := daemon.NewMonitor(
		monitorConfig,
		infra.NewNetProbe(a.cfg.ProbeConfig()),
		tracker,
		a.logs,
		a.registry(),
		logger,
	)
	return monitor, tracker, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	logger := createLogger(a.cfg)
	defer func() { _ = logger.Sync() }()

	if pid, alive := a.registry().RunningPID(); alive {
		return fmt.Errorf("monitor already running (pid %d)", pid)
	}

	monitor, tracker, err := a.newMonitor(logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	var wg sync.WaitGroup
	if renderRun {
		refresher := daemon.NewRefresher(
			daemon.RefresherConfig{Interval: a.cfg.RefreshInterval()},
			tracker,
			a.logs,
			ui.NewWriterDisplay(os.Stdout, ui.NewRenderer(a.cfg.Color), true),
			logger,
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = refresher.Run(ctx)
		}()
	}

	err = monitor.Run(ctx)
	cancel()
	wg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// Logs must not reach the terminal the TUI draws on.
	logger := createFileLogger(a.cfg)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var status ui.StatusSource
	var wg sync.WaitGroup
	if pid, alive := a.registry().RunningPID(); alive {
		logger.Info("attaching to running monitor", zap.Int("pid", pid))
		status = usecase.NewPersistedStatus(a.logs, a.totals)
	} else {
		monitor, tracker, err := a.newMonitor(logger)
		if err != nil {
			return err
		}
		status = tracker
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = monitor.Run(ctx)
		}()
	}

	model := tui.NewModel(status, a.logs, ui.NewRenderer(a.cfg.Color))
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	cancel()
	wg.Wait()
	return err
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	date := time.Now()
	if reportDate != "" {
		if date, err = usecase.ParseDay(reportDate); err != nil {
			return err
		}
	}

	entries, err := a.logs.LoadAll()
	if err != nil {
		return err
	}
	total, err := a.totals.Load()
	if err != nil {
		return err
	}

	// Status lines are omitted: without a live tracker they are stale.
	surfaces := ui.Surfaces{Report: usecase.BuildReport(date, entries, total)}
	fmt.Print(ui.NewRenderer(colorOut).Render(surfaces))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	status := usecase.NewPersistedStatus(a.logs, a.totals)

	fmt.Println("\n=== netmon Status ===")
	if pid, alive := a.registry().RunningPID(); alive {
		fmt.Printf("Monitor: RUNNING (pid %d)\n", pid)
		fmt.Println(status.StatusLine())
	} else {
		fmt.Println("Monitor: NOT RUNNING")
		fmt.Println("\nRun 'netmon run' to start recording transitions.")
	}
	if last, ok := status.LastEntry(); ok {
		fmt.Printf("Last change: %s\n", usecase.FormatLine(last))
	}
	fmt.Println(usecase.TotalLine(status.Total()))
	fmt.Printf("Data dir: %s (%s backend)\n", a.cfg.DataDir, a.cfg.Backend)
	fmt.Println("=====================")
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.logs.Clear(); err != nil {
		return err
	}
	fmt.Println("Transition log cleared")

	if clearAll {
		if err := a.totals.Save(0); err != nil {
			return err
		}
		fmt.Println("Total connected time reset")
	}
	return nil
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext(logger *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			logger.Info("received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()
	return ctx, cancel
}

func loggerConfig(cfg config.Config) zap.Config {
	paths := infra.DetectPaths()
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{paths.LogPath}
	zc.ErrorOutputPaths = []string{paths.ErrorLogPath}
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if level, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zc.Level = level
	}
	_ = os.MkdirAll(filepath.Dir(paths.LogPath), 0755)
	return zc
}

func createLogger(cfg config.Config) *zap.Logger {
	logger, err := loggerConfig(cfg).Build()
	if err != nil {
		// Fallback to stdout if file logging fails
		logger, _ = zap.NewProduction()
	}
	return logger
}

func createFileLogger(cfg config.Config) *zap.Logger {
	logger, err := loggerConfig(cfg).Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		fmt.Printf(`{"version":"%s","commit":"%s","build_time":"%s"}`+"\n",
			Version, Commit, BuildTime)
	} else {
		fmt.Printf("netmon %s (commit: %s, built: %s)\n",
			Version, Commit, BuildTime)
	}
}
