package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/heartmarshall/learnsets/internal/catalog"
	"github.com/heartmarshall/learnsets/internal/config"
	"github.com/heartmarshall/learnsets/internal/source"
)

// Options are the command-line choices of one run.
type Options struct {
	// Pokemon, when set, is printed as a learnset once the catalog is ready.
	Pokemon string
	// Serve keeps the process running behind the HTTP server. The server is
	// also started when server.enabled is set in the configuration.
	Serve bool
	// Out receives the printed learnset. Defaults to os.Stdout.
	Out io.Writer
}

// Run is the application entry point. It loads configuration, initializes
// the logger, builds the catalog and either loads it once or serves it until
// ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("base_url", cfg.Sources.BaseURL),
		slog.String("language", cfg.Sources.Language),
	)

	return run(ctx, cfg, logger, opts)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	fetcher := source.NewFetcher(cfg.Sources.BaseURL, cfg.Sources.FetchTimeout, logger)
	cat, err := catalog.New(cfg.Sources, fetcher, logger)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}

	cat.OnReady(func() {
		logger.Info("catalog ready",
			slog.Int("moves", cat.Moves.Len()),
			slog.Int("pokemon", cat.Pokemon.Len()),
			slog.String("language", cat.Language()),
		)
	})

	if !opts.Serve && !cfg.Server.Enabled {
		if err := cat.Load(ctx); err != nil {
			return fmt.Errorf("app: %w", err)
		}
		return printLearnset(ctx, opts.Out, cat, opts.Pokemon)
	}

	return serve(ctx, cfg.Server, cat, logger, opts)
}

// serve runs the HTTP server while the catalog loads in the background.
// A failed load keeps the server up with /ready reporting 503.
func serve(ctx context.Context, cfg config.ServerConfig, cat *catalog.Catalog, logger *slog.Logger, opts Options) error {
	srv := newServer(cfg, cat, logger)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	loaded := cat.Start(ctx)
	for {
		select {
		case err := <-loaded:
			loaded = nil
			if err != nil {
				logger.Error("catalog load failed", slog.String("error", err.Error()))
				continue
			}
			if err := printLearnset(ctx, opts.Out, cat, opts.Pokemon); err != nil {
				logger.Error("print learnset", slog.String("error", err.Error()))
			}

		case err, ok := <-serveErr:
			if ok {
				return fmt.Errorf("app: serve: %w", err)
			}
			return nil

		case <-ctx.Done():
			logger.Info("shutting down http server")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("app: shutdown: %w", err)
			}
			return nil
		}
	}
}

// printLearnset writes the learnset of name as aligned columns. An empty
// name prints nothing.
func printLearnset(ctx context.Context, w io.Writer, cat *catalog.Catalog, name string) error {
	if name == "" {
		return nil
	}

	ls, err := cat.Learnset(ctx, strings.ToUpper(name))
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}

	types := ls.Pokemon.Type1
	if ls.Pokemon.Type2 != "" {
		types += "/" + ls.Pokemon.Type2
	}
	fmt.Fprintf(w, "%s (%s) %s\n", ls.DisplayName, ls.Pokemon.Name, types)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	section := func(key, fallback string, moves []catalog.LearnsetMove) {
		title, ok := cat.Text(key)
		if !ok {
			title = fallback
		}
		fmt.Fprintf(tw, "%s:\n", title)
		for _, lm := range moves {
			fmt.Fprintf(tw, "  %s\t%s\t%s\tpower=%g\tdps=%.2f\teps=%.2f\n",
				lm.DisplayName, lm.Move.Name, lm.Move.Type,
				lm.Move.Power, lm.Move.DamagePerSecond(), lm.Move.EnergyPerSecond())
		}
	}
	section("fast_attack", "Fast moves", ls.FastMoves)
	section("charged_attack", "Charged moves", ls.ChargedMoves)
	if len(ls.Missing) > 0 {
		fmt.Fprintf(tw, "missing:\t%s\n", strings.Join(ls.Missing, ", "))
	}
	return tw.Flush()
}
