package anomctl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"anomalyd/pkg/types"
)

// baseURL normalizes a listen address into an http base URL.
func baseURL(addr string) string {
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return strings.TrimSuffix(addr, "/")
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr
}

// waitHTTP polls url until it returns want or the timeout elapses.
func waitHTTP(url string, want int, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	client := &http.Client{Timeout: 2 * time.Second}
	for {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == want {
				return nil
			}
		}
		select {
		case <-time.After(500 * time.Millisecond):
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for %s to return %d", url, want)
		}
	}
}

func showStatus(cfg *Config, wait time.Duration) error {
	base := baseURL(cfg.Addr)
	if wait > 0 {
		info("[anomalyctl] waiting up to %s for %s", wait, base)
		if err := waitHTTP(base+"/readyz", http.StatusOK, wait); err != nil {
			return err
		}
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(base + "/status")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status: %s returned %d", base, resp.StatusCode)
	}
	var st types.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return err
	}

	fmt.Printf("weights_dir       %s\n", st.WeightsDir)
	fmt.Printf("registry_entries  %d\n", st.RegistryEntries)
	fmt.Printf("cached_files      %d\n", st.CachedFiles)
	fmt.Printf("cache_bytes       %d\n", st.CacheBytes)
	fmt.Printf("fetches_total     %d\n", st.FetchesTotal)
	fmt.Printf("evictions_total   %d\n", st.EvictionsTotal)
	fmt.Printf("registry_reloads  %d\n", st.RegistryReloads)
	fmt.Printf("uptime_seconds    %d\n", st.UptimeSeconds)
	if len(st.InFlight) > 0 {
		fmt.Printf("in_flight         %s\n", strings.Join(st.InFlight, ", "))
	}
	if st.LastError != "" {
		fmt.Printf("last_error        %s\n", st.LastError)
	}
	if len(st.EventCounts) > 0 {
		actions := make([]string, 0, len(st.EventCounts))
		for a := range st.EventCounts {
			actions = append(actions, a)
		}
		sort.Strings(actions)
		for _, a := range actions {
			fmt.Printf("events.%-11s %d\n", a, st.EventCounts[a])
		}
	}
	return nil
}
