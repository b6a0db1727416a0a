package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayumu-h/curio/extract"
	"github.com/ayumu-h/curio/gofeed"
	curiohttp "github.com/ayumu-h/curio/http"
	curioslog "github.com/ayumu-h/curio/slog"
	"github.com/caarlos0/env/v11"
)

// ServerConfig holds the environment-driven server settings.
type ServerConfig struct {
	Addr        string        `env:"CURIO_ADDR" envDefault:":8080"`
	RatePerHost float64       `env:"CURIO_RATE_PER_HOST" envDefault:"1.0"`
	PageTimeout time.Duration `env:"CURIO_PAGE_TIMEOUT" envDefault:"8s"`
	FeedTimeout time.Duration `env:"CURIO_FEED_TIMEOUT" envDefault:"7s"`
	UserAgent   string        `env:"CURIO_USER_AGENT"`
}

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cfg, err := env.ParseAs[ServerConfig]()
	if err != nil {
		return fmt.Errorf("failed to parse server config: %w", err)
	}

	pipeline := extract.DefaultConfig()
	pipeline.PageTimeout = cfg.PageTimeout
	pipeline.FeedTimeout = cfg.FeedTimeout
	if cfg.UserAgent != "" {
		pipeline.UserAgent = cfg.UserAgent
	}

	limiter := extract.NewHostLimiter(cfg.RatePerHost)
	pages := curiohttp.NewFetcher(
		curiohttp.WithUserAgent(pipeline.UserAgent),
		curiohttp.WithTimeout(pipeline.PageTimeout),
		curiohttp.WithLimiter(limiter),
	)
	feedFetcher := curiohttp.NewFetcher(
		curiohttp.WithUserAgent(pipeline.UserAgent),
		curiohttp.WithAccept(curiohttp.AcceptFeed),
		curiohttp.WithTimeout(pipeline.FeedTimeout),
		curiohttp.WithLimiter(limiter),
	)
	resolver := gofeed.NewResolver(feedFetcher, gofeed.NewParser())

	srv := curiohttp.NewServer()
	srv.Addr = cfg.Addr
	srv.Logger = deps.Logger
	srv.MetadataService = curioslog.NewLoggingMetadataService(extract.NewAssembler(pages, resolver, pipeline), deps.Logger)
	srv.PreviewService = curioslog.NewLoggingPreviewService(extract.NewPreviewer(pages, pipeline), deps.Logger)
	srv.CabinetService = deps.Cabinets
	srv.ItemService = deps.Items
	srv.NoteService = deps.Notes

	if err := srv.Open(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	defer srv.Close()

	fmt.Fprintf(deps.Stdout, "listening on %s\n", srv.URL())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
	case <-deps.Ctx.Done():
	}

	fmt.Fprintln(deps.Stdout, "shutting down")
	return nil
}
