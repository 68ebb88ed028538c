package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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

	Listen string `help:"Address to listen on" default:":8080"`
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

	rem := reminder.New(logger, sheetClient, subs, bot, loc)

	mux := http.NewServeMux()
	mux.Handle("/webhook", bot.WebhookHandler())
	// External schedulers hit /cron once a minute; reminders only fire
	// at minute 0 of the scheduled hours.
	mux.HandleFunc("/cron", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		actions, err := rem.RunDue(r.Context(), time.Now())
		if err != nil {
			logger.Error("Cron run failed", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		for _, a := range actions {
			fmt.Fprintln(w, a)
		}
	})

	srv := &http.Server{Addr: c.Listen, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go bot.StartWebhook(ctx)

	logger.Info("Webhook server listening", "addr", c.Listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("chitieu-webhook"),
		kong.Description("Telegram expense and task logging bot (webhook server)"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
