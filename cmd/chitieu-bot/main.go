package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ndhuy/chitieu/internal/archive"
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
	commands.ArchiveConfig

	NoReminders bool `help:"Disable the in-process reminder scheduler" default:"false"`
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheetClient, err := sheets.New(ctx, c.SheetsClientConfig(), logger)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	var archiver *archive.Archiver
	if c.ReceiptBucket != "" {
		archiver, err = archive.New(ctx, c.ReceiptBucket, logger)
		if err != nil {
			return fmt.Errorf("failed to create receipt archiver: %w", err)
		}
		defer archiver.Close()
	}

	subs, err := subscribers.New(c.DataDir, logger)
	if err != nil {
		return fmt.Errorf("failed to open subscriber store: %w", err)
	}
	defer subs.Close()

	bot, err := telegram.New(telegram.Config{
		Token:       c.BotToken,
		TaskChatIDs: c.TaskChatIDs,
		Debug:       c.Debug,
	}, parser.NewDefault(), sheetClient, archiver, subs, loc, logger)
	if err != nil {
		return fmt.Errorf("failed to create telegram bot: %w", err)
	}

	if !c.NoReminders {
		rem := reminder.New(logger, sheetClient, subs, bot, loc)
		go rem.Start(ctx)
	}

	return bot.Start(ctx)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("chitieu-bot"),
		kong.Description("Telegram expense and task logging bot (long polling)"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
