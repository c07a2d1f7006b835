package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"anomalyd/internal/fetch"
	"anomalyd/internal/manager"
)

// failAfterProgress emits one progress line and then fails verification.
type failAfterProgress struct {
	mockService
}

func (f *failAfterProgress) Ensure(ctx context.Context, name string, force bool, onProgress func(fetch.Progress)) (fetch.Result, error) {
	if onProgress != nil {
		onProgress(fetch.Progress{Received: 0, Total: 10})
	}
	return fetch.Result{}, fetch.ErrIntegrity("/tmp/w.pt", "aaaa", "bbbb")
}

func TestFetch_NotFoundMaps404(t *testing.T) {
	svc := &mockService{fetchErr: fetch.ErrNotFound("w-missing", []string{"RN50", "ViT-B/16"})}
	r := NewMux(svc)
	w := postFetch(r, `{"name":"w-missing"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "available weights") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestFetch_IntegrityMaps502(t *testing.T) {
	svc := &mockService{fetchErr: fetch.ErrIntegrity("/tmp/w.pt", "aaaa", "bbbb")}
	r := NewMux(svc)
	w := postFetch(r, `{"name":"w"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestFetch_ExistsMaps409(t *testing.T) {
	svc := &mockService{fetchErr: fetch.ErrExists("/tmp/w.pt")}
	r := NewMux(svc)
	w := postFetch(r, `{"name":"w"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestVerify_NotCachedMaps404(t *testing.T) {
	svc := &mockService{verifyErr: manager.ErrNotCached("w")}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/verify", bytes.NewBufferString(`{"name":"w"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestEvict_NotFoundMaps404(t *testing.T) {
	svc := &mockService{evictErr: fetch.ErrNotFound("w", nil)}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/evict", bytes.NewBufferString(`{"name":"w"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestFetch_ErrorAfterStreamRidesTheStream(t *testing.T) {
	// Progress lines already went out, so the error arrives as a final
	// NDJSON line instead of an error status.
	r := NewMux(&failAfterProgress{})
	w := postFetch(r, `{"name":"w"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	last := lines[len(lines)-1]
	if !strings.Contains(last, `"phase":"error"`) || !strings.Contains(last, "checksum") {
		t.Fatalf("unexpected final line: %q", last)
	}
}
