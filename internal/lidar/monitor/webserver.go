package monitor

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/banshee-data/rangesim/internal/db"
	"github.com/banshee-data/rangesim/internal/httputil"
	"github.com/banshee-data/rangesim/internal/security"
	"github.com/banshee-data/rangesim/internal/version"
)

//go:embed status.html
var statusFS embed.FS

// WebServer serves the live simulation state and the debug charts.
type WebServer struct {
	address   string
	snapshots *SnapshotHolder
	db        *db.DB
	sessionID string
	plotDir   string
	templates TemplateProvider
	server    *http.Server
}

// WebServerConfig contains configuration options for the web server.
type WebServerConfig struct {
	Address   string
	Snapshots *SnapshotHolder
	// DB and SessionID are optional; without them /api/ticks answers 404
	// and no admin routes are mounted.
	DB        *db.DB
	SessionID string
	// PlotDir is served under /plots/ when set.
	PlotDir   string
	Templates TemplateProvider
}

// NewWebServer creates a new web server with the provided configuration.
func NewWebServer(config WebServerConfig) *WebServer {
	ws := &WebServer{
		address:   config.Address,
		snapshots: config.Snapshots,
		db:        config.DB,
		sessionID: config.SessionID,
		plotDir:   config.PlotDir,
		templates: config.Templates,
	}
	if ws.snapshots == nil {
		ws.snapshots = NewSnapshotHolder()
	}
	if ws.templates == nil {
		ws.templates = NewEmbeddedTemplateProvider(statusFS)
	}

	ws.server = &http.Server{
		Addr:              ws.address,
		Handler:           ws.setupRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return ws
}

// Handler returns the root handler, for tests and embedding.
func (ws *WebServer) Handler() http.Handler { return ws.server.Handler }

// Start serves until ctx is cancelled, then shuts the server down.
func (ws *WebServer) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		if err := ws.server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}

	log.Printf("HTTP server routine stopped")
	return nil
}

func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/", ws.handleStatus)
	mux.HandleFunc("/api/cloud", ws.handleCloud)
	mux.HandleFunc("/api/ticks", ws.handleTicks)
	mux.HandleFunc("/debug/cloud", ws.handleCloudChart)
	if ws.plotDir != "" {
		mux.HandleFunc("/plots/", ws.handlePlot)
	}

	if ws.db != nil {
		if err := ws.db.AttachAdminRoutes(mux); err != nil {
			log.Printf("admin routes disabled: %v", err)
		}
	}
	return mux
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{
		"status":    "ok",
		"service":   "rangesim",
		"version":   version.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type statusPage struct {
	Version   string
	SessionID string
	HasState  bool
	State     TickState
}

func (ws *WebServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	st, ok := ws.snapshots.Latest()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := statusPage{Version: version.String(), SessionID: ws.sessionID, HasState: ok, State: st}
	if err := ws.templates.ExecuteTemplate(w, "status.html", page); err != nil {
		log.Printf("render status page: %v", err)
		http.Error(w, "failed to render status page", http.StatusInternalServerError)
	}
}

func (ws *WebServer) handleCloud(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	st, ok := ws.snapshots.Latest()
	if !ok {
		httputil.NotFound(w, "no scan published yet")
		return
	}
	httputil.WriteJSONOK(w, st)
}

func (ws *WebServer) handleTicks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	if ws.db == nil || ws.sessionID == "" {
		httputil.NotFound(w, "persistence disabled")
		return
	}
	ticks, err := ws.db.ListTicks(ws.sessionID)
	if err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	httputil.WriteJSONOK(w, map[string]interface{}{
		"session_id": ws.sessionID,
		"ticks":      ticks,
	})
}

// handlePlot serves PNG frames from the plot directory. /plots/latest
// serves the frame of the most recent tick.
func (ws *WebServer) handlePlot(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/plots/")
	if name == "latest" {
		st, ok := ws.snapshots.Latest()
		if !ok || st.PlotFile == "" {
			httputil.NotFound(w, "no plot written yet")
			return
		}
		name = st.PlotFile
	}
	if !strings.HasSuffix(name, ".png") {
		httputil.WriteJSONError(w, http.StatusBadRequest, "only .png frames are served")
		return
	}

	path, err := security.ResolveWithin(ws.plotDir, name)
	if errors.Is(err, security.ErrPathEscape) {
		httputil.WriteJSONError(w, http.StatusBadRequest, "invalid plot path")
		return
	}
	if err != nil {
		httputil.NotFound(w, "plot not found")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	http.ServeFile(w, r, path)
}
