package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ndhuy/chitieu/internal/commands"
	"github.com/ndhuy/chitieu/internal/parser"
	"github.com/ndhuy/chitieu/internal/reminder"
	"github.com/ndhuy/chitieu/internal/sheets"
	"github.com/ndhuy/chitieu/internal/subscribers"
	"github.com/ndhuy/chitieu/internal/telegram"
)

type CLI struct {
	commands.CommonConfig
	commands.SheetsConfig
	commands.TelegramConfig

	Force bool `help:"Fire reminders for the current hour even off the minute-0 slot" default:"false"`
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

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sheetClient, err := sheets.New(ctx, c.SheetsClientConfig(), logger)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	subs, err := subscribers.New(c.DataDir, logger)
	if err != nil {
		return fmt.Errorf("failed to open subscriber store: %w", err)
	}
	defer subs.Close()

	bot, err := telegram.New(telegram.Config{
		Token: c.BotToken,
		Debug: c.Debug,
	}, parser.NewDefault(), sheetClient, nil, subs, loc, logger)
	if err != nil {
		return fmt.Errorf("failed to create telegram bot: %w", err)
	}

	rem := reminder.New(logger, sheetClient, subs, bot, loc)

	now := time.Now()
	if c.Force {
		// Snap to minute 0 so RunDue considers the hour due.
		now = now.Truncate(time.Hour)
	}

	actions, err := rem.RunDue(ctx, now)
	if err != nil {
		return err
	}
	if len(actions) == 0 {
		logger.Info("No reminders scheduled for this time", "time", now.In(loc).Format("15:04"))
		return nil
	}
	for _, a := range actions {
		logger.Info("Reminder sent", "action", a)
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("chitieu-cron"),
		kong.Description("One-shot reminder trigger for external schedulers"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
