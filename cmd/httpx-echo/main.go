// Command httpx-echo serves an echo endpoint, a small session login flow and
// the in-process metrics on top of httpx.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"dqx0.com/go/httpmsg/httpx"
	"dqx0.com/go/httpmsg/httpx/stdhttp"
	"dqx0.com/go/httpmsg/internal/obs"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	addr := flag.String("addr", "", "listen address, overrides the config file")
	level := flag.String("log-level", "", "log level, overrides the config file")
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Str("svc", "httpx-echo").Logger()
	cfg := loadConfig(*configPath, log)
	overrides := func(c *Config) {
		if *addr != "" {
			c.Addr = *addr
		}
		if *level != "" {
			c.LogLevel = *level
		}
	}
	overrides(cfg)

	meter := obs.NewMemoryMeter()
	a := newApp(cfg, log, meter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *configPath != "" {
		go watchConfig(ctx, *configPath, log, func() {
			next := loadConfig(*configPath, log)
			overrides(next)
			if next.Addr != cfg.Addr || next.UseStdHTTP != cfg.UseStdHTTP {
				log.Warn().Msg("listener settings changed; restart to apply")
			}
			a.apply(next)
			log.Info().Str("log_level", next.LogLevel).Msg("config reloaded")
		})
	}

	serve, shutdown := newServer(cfg, a, log, meter)
	errc := make(chan error, 1)
	go func() { errc <- serve() }()
	log.Info().Str("addr", cfg.Addr).Bool("net_http", cfg.UseStdHTTP).Msg("listening")

	select {
	case err := <-errc:
		log.Fatal().Err(err).Msg("server stopped")
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	if err := <-errc; err != nil && !errors.Is(err, httpx.ErrServerClosed) && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("serve")
	}
	log.Info().Msg("bye")
}

// newServer builds either the native httpx server or a net/http server
// running the same handler through stdhttp.
func newServer(cfg *Config, h httpx.Handler, log zerolog.Logger, meter obs.Meter) (serve func() error, shutdown func(context.Context) error) {
	if cfg.UseStdHTTP {
		s := &http.Server{
			Addr:        cfg.Addr,
			Handler:     stdhttp.LimitHandler(h, cfg.MaxBodyBytes),
			ReadTimeout: cfg.ReadTimeout(),
			IdleTimeout: cfg.IdleTimeout(),
		}
		return s.ListenAndServe, s.Shutdown
	}
	s := &httpx.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout(),
		IdleTimeout:  cfg.IdleTimeout(),
		MaxBodyBytes: cfg.MaxBodyBytes,
		Logger:       obs.ZerologLogger{L: log},
		Meter:        meter,
	}
	return s.ListenAndServe, s.Shutdown
}

// watchConfig calls reload after each write to path until ctx ends. The
// directory is watched so editors that replace the file are seen too.
func watchConfig(ctx context.Context, path string, log zerolog.Logger, reload func()) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error().Err(err).Msg("config watcher")
		return
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		log.Error().Err(err).Str("path", path).Msg("watch config")
		return
	}
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			reload()
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("config watcher")
		}
	}
}
