package server

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/imishinist/logger-dev/internal/config"
	"github.com/imishinist/logger-dev/internal/fakeapi"
	"github.com/imishinist/logger-dev/internal/logging"
	"github.com/imishinist/logger-dev/internal/logstore"
	"github.com/imishinist/logger-dev/internal/proxy"
)

const entryDocument = "index.html"

// NewHandler builds the request router for cfg. API requests go to the fake
// backend when cfg.Fake is set and to the controller at cfg.Robot otherwise.
func NewHandler(cfg *config.Config, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	var api http.Handler
	if cfg.Fake {
		store := logstore.New(cfg.RunsDir)
		api = fakeapi.New(store, config.APIPrefix, logging.WithComponent(logger, "fakeapi"))
	} else {
		api = proxy.New(cfg.Robot, cfg.ProxyTimeout, logging.WithComponent(logger, "proxy"))
	}
	return NewRouter(cfg.Root, api, logging.WithComponent(logger, "router"))
}

// NewRouter dispatches GET requests:
//   - /logger/api/... to api
//   - / to the entry document under assetRoot
//   - /logger and /logger/... to assetRoot with the /logger prefix removed
//   - anything else to assetRoot as is
func NewRouter(assetRoot string, api http.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	files := http.FileServer(http.Dir(assetRoot))
	ui := http.StripPrefix(config.UIPrefix, files)

	r.Get(config.APIPrefix+"*", api.ServeHTTP)
	r.Get("/", entryHandler(assetRoot))
	r.Get(config.UIPrefix, ui.ServeHTTP)
	r.Get(config.UIPrefix+"/*", ui.ServeHTTP)
	r.Get("/*", files.ServeHTTP)

	return r
}

// entryHandler serves the UI entry document for the bare root path.
func entryHandler(assetRoot string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(assetRoot, entryDocument)
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "failed to open entry document", http.StatusInternalServerError)
			return
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, entryDocument, info.ModTime(), file)
	}
}
