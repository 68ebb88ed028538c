// Package ingest bulk-imports historical messages: each line of input
// is parsed like a live chat message and appended to the ledger.
package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ndhuy/chitieu/internal/parser"
	"github.com/ndhuy/chitieu/internal/types"
)

// Appender persists parsed transactions. Implemented by sheets.Client.
type Appender interface {
	AppendTransaction(ctx context.Context, rec types.TransactionRecord, note string, submittedAt time.Time) error
}

// Config controls one import run.
type Config struct {
	// Concurrency is the number of rows appended in parallel.
	Concurrency int
	// Progress enables the progress bar.
	Progress bool
	// DryRun parses without persisting.
	DryRun bool
	// Note lands in the Ghi chú column of every imported row.
	Note string
}

// Result summarizes an import run.
type Result struct {
	Imported int
	Skipped  int
}

// Pipeline parses and appends messages.
type Pipeline struct {
	parser   *parser.Parser
	appender Appender
	logger   *log.Logger
}

// New creates a Pipeline.
func New(p *parser.Parser, appender Appender, logger *log.Logger) *Pipeline {
	return &Pipeline{parser: p, appender: appender, logger: logger}
}

// Run reads one message per line from r, parses each against now, and
// appends the parseable ones. Unparseable lines are counted and
// skipped, not treated as errors.
func (p *Pipeline) Run(ctx context.Context, r io.Reader, now time.Time, cfg Config) (Result, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("failed to read input: %w", err)
	}

	p.logger.Info("Starting import", "lines", len(lines), "dry_run", cfg.DryRun)

	var progress Progress
	if cfg.Progress {
		progress = NewBarProgress(len(lines))
	} else {
		progress = NewNoopProgress()
	}
	defer progress.Close()

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var imported, skipped atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, line := range lines {
		g.Go(func() error {
			defer progress.Add(1) //nolint:errcheck

			if err := gCtx.Err(); err != nil {
				return err
			}

			rec := p.parser.ParseTransaction(line, now)
			if !rec.Parseable() {
				skipped.Add(1)
				p.logger.Debug("Skipping unparseable line", "text", line)
				return nil
			}

			if !cfg.DryRun {
				if err := p.appender.AppendTransaction(gCtx, rec, cfg.Note, now); err != nil {
					if errors.Is(err, context.Canceled) {
						return err
					}
					return fmt.Errorf("failed to append %q: %w", line, err)
				}
			}
			imported.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Imported: int(imported.Load()), Skipped: int(skipped.Load())}
	p.logger.Info("Import finished", "imported", res.Imported, "skipped", res.Skipped)
	return res, nil
}
