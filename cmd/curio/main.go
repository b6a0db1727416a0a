package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/ayumu-h/curio"
	"github.com/ayumu-h/curio/extract"
	"github.com/ayumu-h/curio/gofeed"
	curiohttp "github.com/ayumu-h/curio/http"
	curioslog "github.com/ayumu-h/curio/slog"
	"github.com/ayumu-h/curio/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	CabinetService curio.CabinetService
	ItemService    curio.ItemService
	NoteService    curio.NoteService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("curio"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'curio --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CURIO_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.CabinetService = sqlite.NewCabinetService(m.DB)
	m.ItemService = sqlite.NewItemService(m.DB)
	m.NoteService = sqlite.NewNoteService(m.DB)
	deps.DB = m.DB
	deps.Cabinets = m.CabinetService
	deps.Items = m.ItemService
	deps.Notes = m.NoteService

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	cfg := extract.DefaultConfig()
	limiter := extract.NewHostLimiter(1.0)

	pages := curiohttp.NewFetcher(
		curiohttp.WithUserAgent(cfg.UserAgent),
		curiohttp.WithTimeout(cfg.PageTimeout),
		curiohttp.WithLimiter(limiter),
	)
	feedFetcher := curiohttp.NewFetcher(
		curiohttp.WithUserAgent(cfg.UserAgent),
		curiohttp.WithAccept(curiohttp.AcceptFeed),
		curiohttp.WithTimeout(cfg.FeedTimeout),
		curiohttp.WithLimiter(limiter),
	)
	resolver := gofeed.NewResolver(feedFetcher, gofeed.NewParser())

	deps.Metadata = curioslog.NewLoggingMetadataService(extract.NewAssembler(pages, resolver, cfg), logger)
	deps.Preview = curioslog.NewLoggingPreviewService(extract.NewPreviewer(pages, cfg), logger)
	deps.Logger = logger

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("CURIO_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "curio.db"
	}
	dir := filepath.Join(home, ".curio")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "curio.db")
}
