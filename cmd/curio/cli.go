package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/ayumu-h/curio"
	"github.com/ayumu-h/curio/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Cabinets curio.CabinetService
	Items    curio.ItemService
	Notes    curio.NoteService
	Metadata curio.MetadataService
	Preview  curio.PreviewService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract metadata from a page URL"`
	Preview PreviewCmd `cmd:"" help:"Produce a lightweight link preview for a URL"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API server"`
	Cabinet CabinetCmd `cmd:"" help:"Manage cabinets"`
	Item    ItemCmd    `cmd:"" help:"Manage catalogued items"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL string `arg:"" help:"Page URL to extract metadata from"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	URL string `arg:"" help:"Page URL to preview"`
}

// ServeCmd is the "serve" subcommand. Settings come from the
// environment, see ServerConfig.
type ServeCmd struct{}

// CabinetCmd groups the cabinet subcommands.
type CabinetCmd struct {
	Add  CabinetAddCmd  `cmd:"" help:"Create a cabinet"`
	List CabinetListCmd `cmd:"" help:"List cabinets"`
	Rm   CabinetRmCmd   `cmd:"" help:"Delete a cabinet and its items"`
}

// CabinetAddCmd is the "cabinet add" subcommand.
type CabinetAddCmd struct {
	Name        string `arg:"" help:"Cabinet name"`
	Description string `short:"d" help:"Cabinet description"`
}

// CabinetListCmd is the "cabinet list" subcommand.
type CabinetListCmd struct{}

// CabinetRmCmd is the "cabinet rm" subcommand.
type CabinetRmCmd struct {
	Name  string `arg:"" help:"Cabinet name"`
	Force bool   `help:"Confirm deletion"`
}

// ItemCmd groups the item subcommands.
type ItemCmd struct {
	Add  ItemAddCmd  `cmd:"" help:"Extract a URL and save it as an item"`
	List ItemListCmd `cmd:"" help:"List items"`
	Rm   ItemRmCmd   `cmd:"" help:"Delete an item and its notes"`
}

// ItemAddCmd is the "item add" subcommand.
type ItemAddCmd struct {
	URL     string `arg:"" help:"Page URL to extract and catalogue"`
	Cabinet string `short:"c" required:"" help:"Cabinet name to file the item under"`
	Title   string `short:"t" help:"Override the extracted title"`
}

// ItemListCmd is the "item list" subcommand.
type ItemListCmd struct {
	Cabinet string `short:"c" help:"Only items in this cabinet"`
	Title   string `short:"t" help:"Filter by title substring"`
}

// ItemRmCmd is the "item rm" subcommand.
type ItemRmCmd struct {
	ID string `arg:"" help:"Item ID"`
}
