package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dstanton/trivianight/internal/middleware"
)

//go:embed static
var staticFS embed.FS

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger    *slog.Logger
	WSHandler http.Handler
}

// NewRouter creates the HTTP router: the websocket endpoint, a health
// check and the static browser client.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	r.Handle("/ws", cfg.WSHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/health", healthHandler).Methods(http.MethodGet)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		// embed is compile-time; this cannot fail at runtime
		panic(err)
	}

	r.HandleFunc("/game", servePage(static, "game.html")).Methods(http.MethodGet)
	r.PathPrefix("/js/").Handler(http.FileServer(http.FS(static))).Methods(http.MethodGet)
	r.PathPrefix("/css/").Handler(http.FileServer(http.FS(static))).Methods(http.MethodGet)
	r.HandleFunc("/", servePage(static, "index.html")).Methods(http.MethodGet)

	return r
}

func servePage(static fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(static, name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(data)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
