package anomctl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"anomalyd/internal/fetch"
	"anomalyd/internal/ledger"
	"anomalyd/internal/manager"
	"anomalyd/internal/registry"
	"anomalyd/internal/store"
)

// openManager wires a local manager from the CLI config. The returned
// closer stops the registry watcher and closes the ledger.
func openManager(cfg *Config) (*manager.Manager, func(), error) {
	dir, err := store.ResolveDir(cfg.WeightsDir)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.New(dir)
	if err != nil {
		return nil, nil, err
	}
	watcher, err := registry.NewWatcher(splitCSV(cfg.Registry), nil)
	if err != nil {
		return nil, nil, err
	}
	ledgerPath := cfg.LedgerPath
	if ledgerPath == "" {
		ledgerPath = filepath.Join(dir, ".ledger.db")
	}
	led, err := ledger.Open(ledgerPath)
	if err != nil {
		warn("[anomalyctl] ledger disabled: %v", err)
		led = ledger.Disabled()
	}
	mgr := manager.New(manager.Config{
		Registry: watcher,
		Fetcher:  fetch.New(watcher, dir),
		Store:    st,
		Ledger:   led,
	})
	closer := func() {
		watcher.Close()
		_ = mgr.Close()
	}
	return mgr, closer, nil
}

func fetchWeight(cfg *Config, name string, force bool) error {
	mgr, closer, err := openManager(cfg)
	if err != nil {
		return err
	}
	defer closer()

	var lastPct int64 = -1
	var lastBytes int64
	onProgress := func(p fetch.Progress) {
		if p.Total > 0 {
			pct := p.Received * 100 / p.Total
			if pct != lastPct {
				lastPct = pct
				fmt.Fprintf(os.Stderr, "\r%s: %3d%% (%d/%d bytes)", name, pct, p.Received, p.Total)
			}
			return
		}
		if p.Received-lastBytes >= 32<<20 {
			lastBytes = p.Received
			fmt.Fprintf(os.Stderr, "\r%s: %d MiB", name, p.Received>>20)
		}
	}

	res, err := mgr.Ensure(context.Background(), name, force, onProgress)
	if lastPct >= 0 || lastBytes > 0 {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}
	switch {
	case res.Cached:
		info("[anomalyctl] %s already cached", name)
	case res.Redownloaded:
		info("[anomalyctl] %s was corrupt, re-downloaded %d bytes", name, res.Size)
	default:
		info("[anomalyctl] %s downloaded, %d bytes", name, res.Size)
	}
	fmt.Println(res.Path)
	return nil
}

func listWeights(cfg *Config, asJSON bool) error {
	mgr, closer, err := openManager(cfg)
	if err != nil {
		return err
	}
	defer closer()

	weights, err := mgr.List()
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(weights)
	}
	for _, w := range weights {
		mark := " "
		if w.Cached {
			mark = "*"
		}
		if w.SizeBytes > 0 {
			fmt.Printf("%s %-20s %12d  %s\n", mark, w.Name, w.SizeBytes, w.Filename)
		} else {
			fmt.Printf("%s %-20s %12s  %s\n", mark, w.Name, "-", w.Filename)
		}
	}
	return nil
}

func weightInfo(cfg *Config, name string) error {
	mgr, closer, err := openManager(cfg)
	if err != nil {
		return err
	}
	defer closer()

	w, err := mgr.Info(name)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(w)
}

func verifyWeight(cfg *Config, name string) error {
	mgr, closer, err := openManager(cfg)
	if err != nil {
		return err
	}
	defer closer()

	res, err := mgr.Verify(context.Background(), name)
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", name, res.Expected, res.Actual)
	}
	info("[anomalyctl] %s verified: %s", name, res.Actual)
	return nil
}

func evictWeight(cfg *Config, name string) error {
	mgr, closer, err := openManager(cfg)
	if err != nil {
		return err
	}
	defer closer()

	filename, err := mgr.Evict(context.Background(), name)
	if err != nil {
		return err
	}
	info("[anomalyctl] evicted %s (%s)", name, filename)
	return nil
}

func weightPath(cfg *Config, name string) error {
	mgr, closer, err := openManager(cfg)
	if err != nil {
		return err
	}
	defer closer()

	w, err := mgr.Info(name)
	if err != nil {
		return err
	}
	if !w.Cached {
		return manager.ErrNotCached(name)
	}
	fmt.Println(w.Path)
	return nil
}

func showHistory(cfg *Config, limit int) error {
	mgr, closer, err := openManager(cfg)
	if err != nil {
		return err
	}
	defer closer()

	events, err := mgr.History(context.Background(), limit)
	if err != nil {
		return err
	}
	for _, e := range events {
		fmt.Printf("%d\t%d\t%-18s %-20s %s\n", e.ID, e.CreatedAtUnix, e.Action, e.Name, e.Path)
	}
	return nil
}
