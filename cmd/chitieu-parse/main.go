package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ndhuy/chitieu/internal/commands"
	"github.com/ndhuy/chitieu/internal/parser"
)

type CLI struct {
	commands.CommonConfig

	Text string `arg:"" help:"Message text to parse" optional:""`
	Now  string `help:"Reference time (RFC3339, defaults to wall clock)"`
	Task bool   `help:"Parse as a task entry" default:"false"`
}

func (c *CLI) Run() error {
	loc, err := c.Location()
	if err != nil {
		return err
	}

	text := c.Text
	if text == "" {
		data, err := os.ReadFile("/dev/stdin")
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = strings.TrimSpace(string(data))
	}

	now := time.Now().In(loc)
	if c.Now != "" {
		now, err = time.Parse(time.RFC3339, c.Now)
		if err != nil {
			return fmt.Errorf("invalid --now value: %w", err)
		}
		now = now.In(loc)
	}

	p := parser.NewDefault()

	var out any
	if c.Task || p.IsTask(text) {
		out = p.ParseTask(text)
	} else {
		out = p.ParseTransaction(text, now)
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("chitieu-parse"),
		kong.Description("Parse a message and print the structured record"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
