package app

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/learnsets/internal/catalog"
	"github.com/heartmarshall/learnsets/internal/config"
	"github.com/heartmarshall/learnsets/internal/transport/middleware"
	"github.com/heartmarshall/learnsets/internal/transport/rest"
)

// newServer builds the HTTP server exposing health probes and learnset
// queries over cat.
func newServer(cfg config.ServerConfig, cat *catalog.Catalog, logger *slog.Logger) *http.Server {
	health := rest.NewHealthHandler(cat, BuildVersion())
	learnsets := rest.NewLearnsetHandler(cat, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /learnsets/{name}", learnsets.Get)

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)(mux)

	return &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
