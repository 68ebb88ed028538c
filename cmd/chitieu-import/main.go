package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ndhuy/chitieu/internal/commands"
	"github.com/ndhuy/chitieu/internal/ingest"
	"github.com/ndhuy/chitieu/internal/parser"
	"github.com/ndhuy/chitieu/internal/sheets"
)

type CLI struct {
	commands.CommonConfig
	commands.SheetsConfig

	File        string `arg:"" help:"File with one message per line"`
	Concurrency int    `help:"Number of concurrent appends" default:"5"`
	NoProgress  bool   `help:"Disable progress bar" default:"false"`
	DryRun      bool   `help:"Parse only, do not write to the sheet" default:"false"`
	Note        string `help:"Note column value for imported rows" default:"import"`
}

func (c *CLI) Run() error {
	logger, err := c.Logger()
	if err != nil {
		return err
	}

	loc, err := c.Location()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	sheetClient, err := sheets.New(ctx, c.SheetsClientConfig(), logger)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	pipeline := ingest.New(parser.NewDefault(), sheetClient, logger)
	result, err := pipeline.Run(ctx, f, time.Now().In(loc), ingest.Config{
		Concurrency: c.Concurrency,
		Progress:    !c.NoProgress,
		DryRun:      c.DryRun,
		Note:        c.Note,
	})
	if err != nil {
		return err
	}

	logger.Info("Done", "imported", result.Imported, "skipped", result.Skipped)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("chitieu-import"),
		kong.Description("Bulk import historical expense messages into the ledger"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
