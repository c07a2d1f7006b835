package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"anomalyd/internal/config"
	"anomalyd/internal/fetch"
	"anomalyd/internal/httpapi"
	"anomalyd/internal/ledger"
	"anomalyd/internal/logging"
	"anomalyd/internal/manager"
	"anomalyd/internal/registry"
	"anomalyd/internal/store"
)

// splitCSV splits a comma-separated flag value, trimming whitespace and
// dropping empty items.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	// Flags with environment variable defaults
	addr := flag.String("addr", envDefault("ANOMALYD_ADDR", ":8091"), "HTTP listen address, e.g. :8091")
	weightsDir := flag.String("weights-dir", envDefault("ANOMALYD_WEIGHTS_DIR", ""), "Weights cache directory (default ~/.cache/anomalyd/weights)")
	registryCSV := flag.String("registry", envDefault("ANOMALYD_REGISTRY", ""), "Comma-separated registry YAML files merged over the builtin table")
	ledgerPath := flag.String("ledger", envDefault("ANOMALYD_LEDGER", ""), "Fetch-ledger path (default <weights-dir>/.ledger.db)")
	configPath := flag.String("config", envDefault("ANOMALYD_CONFIG", ""), "Config file (.yaml/.json/.toml); explicit flags win")
	logLevel := flag.String("log-level", envDefault("ANOMALYD_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	logFile := flag.String("log-file", envDefault("ANOMALYD_LOG_FILE", ""), "Also write logs to this rotated file")
	corsOrigins := flag.String("cors-origins", envDefault("ANOMALYD_CORS_ORIGINS", ""), "Comma-separated allowed CORS origins (empty disables CORS)")
	maxBodyBytes := flag.Int64("max-body-bytes", 0, "Maximum request body size in bytes (0 = default)")
	fetchTimeoutS := flag.Int64("fetch-timeout-s", 0, "Per-fetch timeout in seconds (0 = unbounded)")
	flag.Parse()

	// Overlay the config file under explicitly set flags.
	if *configPath != "" {
		fileCfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["addr"] && fileCfg.Addr != "" {
			*addr = fileCfg.Addr
		}
		if !set["weights-dir"] && fileCfg.WeightsDir != "" {
			*weightsDir = fileCfg.WeightsDir
		}
		if !set["registry"] && len(fileCfg.Registry) > 0 {
			*registryCSV = strings.Join(fileCfg.Registry, ",")
		}
		if !set["ledger"] && fileCfg.LedgerPath != "" {
			*ledgerPath = fileCfg.LedgerPath
		}
		if !set["log-level"] && fileCfg.LogLevel != "" {
			*logLevel = fileCfg.LogLevel
		}
		if !set["log-file"] && fileCfg.LogFile != "" {
			*logFile = fileCfg.LogFile
		}
		if !set["max-body-bytes"] && fileCfg.MaxBodyBytes > 0 {
			*maxBodyBytes = fileCfg.MaxBodyBytes
		}
		if !set["fetch-timeout-s"] && fileCfg.FetchTimeoutS > 0 {
			*fetchTimeoutS = fileCfg.FetchTimeoutS
		}
	}

	logger, closeLogs := logging.Setup(*logLevel, *logFile)
	defer closeLogs()
	// Route stdlib log lines from the internal packages through zerolog.
	log.SetFlags(0)
	log.SetOutput(logger)

	dir, err := store.ResolveDir(*weightsDir)
	if err != nil {
		log.Fatalf("failed to resolve weights dir: %v", err)
	}
	st, err := store.New(dir)
	if err != nil {
		log.Fatalf("failed to open weights dir: %v", err)
	}

	watcher, err := registry.NewWatcher(splitCSV(*registryCSV), nil)
	if err != nil {
		log.Fatalf("failed to load registry: %v", err)
	}
	defer watcher.Close()

	lp := *ledgerPath
	if lp == "" {
		lp = filepath.Join(dir, ".ledger.db")
	}
	led, err := ledger.Open(lp)
	if err != nil {
		log.Printf("ledger disabled: %v", err)
		led = ledger.Disabled()
	}

	mgr := manager.New(manager.Config{
		Registry: watcher,
		Fetcher:  fetch.New(watcher, dir),
		Store:    st,
		Ledger:   led,
	})
	defer mgr.Close()

	httpapi.SetLogger(logger)
	if *maxBodyBytes > 0 {
		httpapi.SetMaxBodyBytes(*maxBodyBytes)
	}
	if *fetchTimeoutS > 0 {
		httpapi.SetFetchTimeoutSeconds(*fetchTimeoutS)
	}
	if *corsOrigins != "" {
		httpapi.SetCORSOptions(true, splitCSV(*corsOrigins), nil, nil)
	}
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(mgr) // registers /weights, /fetch, /verify, /evict, /history, /status, health and metrics
	srv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		log.Printf("anomalyd listening on %s (weights dir: %s, registry entries: %d)", *addr, dir, watcher.Snapshot().Len())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase() // aborts in-flight downloads
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}
