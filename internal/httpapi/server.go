package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"anomalyd/internal/fetch"
	"anomalyd/internal/manager"
	"anomalyd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	List() ([]types.Weight, error)
	Info(name string) (types.Weight, error)
	Ensure(ctx context.Context, name string, force bool, onProgress func(fetch.Progress)) (fetch.Result, error)
	Verify(ctx context.Context, name string) (types.VerifyResponse, error)
	Evict(ctx context.Context, name string) (string, error)
	History(ctx context.Context, limit int) ([]types.FetchEvent, error)
	Status(ctx context.Context) types.StatusResponse
	Ready() bool
}

// progressStride spaces download progress lines. One NDJSON line per stride
// keeps multi-gigabyte downloads from flooding the stream.
const progressStride = 8 << 20

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)

	r.Get("/weights", func(w http.ResponseWriter, r *http.Request) {
		ws, err := svc.List()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.WeightsResponse{Weights: ws}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/weights/info", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			writeJSONError(w, http.StatusBadRequest, "name is required")
			return
		}
		wt, err := svc.Info(name)
		if err != nil {
			writeJSONError(w, statusForError(err), err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(wt); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		st := svc.Status(r.Context())
		SetCacheBytes(st.CacheBytes)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(st); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/history", func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeJSONError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = n
		}
		events, err := svc.History(r.Context(), limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.HistoryResponse{Events: events}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Post("/fetch", func(w http.ResponseWriter, r *http.Request) {
		var req types.FetchRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeJSONError(w, http.StatusBadRequest, "name is required")
			return
		}

		// Stream NDJSON progress lines while the fetch runs.
		w.Header().Set("Content-Type", "application/x-ndjson")
		var flush func()
		if f, ok := w.(http.Flusher); ok {
			flush = f.Flush
		}
		writer := io.Writer(w)
		lvl := requestLogLevel(r)
		if lvl >= LevelDebug {
			writer = io.MultiWriter(w, &loggingLineWriter{})
		}
		enc := json.NewEncoder(writer)

		start := time.Now()
		logFetchStart(r, req, lvl)

		// Join server base context with request context so shutdown cancels work too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		if fetchTimeout > 0 {
			var tcancel context.CancelFunc
			joinedCtx, tcancel = context.WithTimeout(joinedCtx, time.Duration(fetchTimeout)*time.Second)
			defer tcancel()
		}

		var streamed bool
		emit := func(p types.FetchProgress) {
			if err := enc.Encode(p); err != nil {
				return
			}
			streamed = true
			if flush != nil {
				flush()
			}
		}
		last := int64(-1)
		res, err := svc.Ensure(joinedCtx, req.Name, req.Force, func(p fetch.Progress) {
			if p.Received == 0 || p.Received-last >= progressStride || (p.Total > 0 && p.Received >= p.Total) {
				last = p.Received
				emit(types.FetchProgress{Phase: "download", Received: p.Received, Total: p.Total})
			}
		})
		if err != nil {
			observeFetch("error", 0)
			// If context was canceled (client disconnect), just return.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := statusForError(err)
			if streamed {
				// The status line is already on the wire; the error rides the stream.
				emit(types.FetchProgress{Phase: "error", Error: err.Error()})
			} else {
				writeJSONError(w, status, err.Error())
			}
			logFetchEnd(r, lvl, status, time.Since(start), err)
			return
		}
		outcome := "download"
		var downloaded int64
		switch {
		case res.Cached:
			outcome = "cache_hit"
		case res.Direct:
			outcome = "direct"
		default:
			downloaded = res.Size
		}
		observeFetch(outcome, downloaded)
		emit(types.FetchProgress{
			Phase:    "done",
			Received: res.Size,
			Total:    res.Size,
			Done:     true,
			Path:     res.Path,
			Checksum: res.Checksum,
			Cached:   res.Cached,
		})
		logFetchEnd(r, lvl, http.StatusOK, time.Since(start), nil)
	})

	r.Post("/verify", func(w http.ResponseWriter, r *http.Request) {
		var req types.VerifyRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeJSONError(w, http.StatusBadRequest, "name is required")
			return
		}
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		resp, err := svc.Verify(joinedCtx, req.Name)
		if err != nil {
			writeJSONError(w, statusForError(err), err.Error())
			return
		}
		observeVerification(resp.OK)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Post("/evict", func(w http.ResponseWriter, r *http.Request) {
		var req types.EvictRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeJSONError(w, http.StatusBadRequest, "name is required")
			return
		}
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		filename, err := svc.Evict(joinedCtx, req.Name)
		if err != nil {
			writeJSONError(w, statusForError(err), err.Error())
			return
		}
		evictionsTotal.Inc()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.EvictResponse{Name: req.Name, Filename: filename}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("initializing"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// decodeJSONBody enforces the JSON content type and body size limit shared by
// the POST endpoints.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		// An exceeded MaxBytesReader lands here too; 400 avoids leaking size details
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// statusForError maps well-known service errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case fetch.IsNotFound(err), manager.IsNotCached(err):
		return http.StatusNotFound
	case fetch.IsIntegrity(err):
		return http.StatusBadGateway
	case fetch.IsExists(err):
		return http.StatusConflict
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

func logFetchStart(r *http.Request, req types.FetchRequest, lvl LogLevel) {
	if lvl < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path).Str("weight", req.Name).Bool("force", req.Force)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg("fetch start")
		return
	}
	log.Printf("fetch start path=%s weight=%s force=%t", r.URL.Path, req.Name, req.Force)
}

func logFetchEnd(r *http.Request, lvl LogLevel, status int, dur time.Duration, err error) {
	if lvl < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Int("status", status).Dur("dur", dur)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg("fetch end")
		return
	}
	if err != nil {
		log.Printf("fetch end status=%d dur=%s err=%v", status, dur, err)
		return
	}
	log.Printf("fetch end status=%d dur=%s", status, dur)
}
