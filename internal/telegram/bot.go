// Package telegram is the chat transport: it routes inbound messages
// into the parsing pipelines and replies with the outcome.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ndhuy/chitieu/internal/archive"
	"github.com/ndhuy/chitieu/internal/parser"
	"github.com/ndhuy/chitieu/internal/sheets"
	"github.com/ndhuy/chitieu/internal/subscribers"
)

// Config configures the transport.
type Config struct {
	// Token is the Telegram bot token.
	Token string
	// TaskChatIDs lists chats where every message is treated as a task
	// entry even without a task prefix.
	TaskChatIDs []int64
	// Debug enables telegram API debug logging.
	Debug bool
}

// Bot wires the Telegram API to the parser and its collaborators.
// archiver may be nil; receipts are then saved without a link.
type Bot struct {
	api       *bot.Bot
	logger    *log.Logger
	parser    *parser.Parser
	sheets    *sheets.Client
	archiver  *archive.Archiver
	subs      *subscribers.Store
	taskChats map[int64]bool
	loc       *time.Location
}

// New creates the bot and registers its handlers. loc anchors date
// resolution for inbound messages.
func New(cfg Config, p *parser.Parser, sh *sheets.Client, ar *archive.Archiver, subs *subscribers.Store, loc *time.Location, logger *log.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("telegram token is required")
	}

	b := &Bot{
		logger:    logger,
		parser:    p,
		sheets:    sh,
		archiver:  ar,
		subs:      subs,
		taskChats: make(map[int64]bool, len(cfg.TaskChatIDs)),
		loc:       loc,
	}
	for _, id := range cfg.TaskChatIDs {
		b.taskChats[id] = true
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(b.handleUpdate),
	}
	if cfg.Debug {
		opts = append(opts, bot.WithDebug())
	}

	api, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	b.api = api
	b.registerHandlers()

	return b, nil
}

func (b *Bot) registerHandlers() {
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, b.handleStart)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, b.handleHelp)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/categories", bot.MatchTypeExact, b.handleCategories)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/tasks", bot.MatchTypeExact, b.handleTasks)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/summary", bot.MatchTypeExact, b.handleSummary)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/subscribe", bot.MatchTypeExact, b.handleSubscribe)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/unsubscribe", bot.MatchTypeExact, b.handleUnsubscribe)
}

// Start runs long polling until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	me, err := b.api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bot info: %w", err)
	}
	b.logger.Info("Telegram bot started", "username", me.Username, "id", me.ID)
	b.api.Start(ctx)
	return nil
}

// StartWebhook serves updates delivered to WebhookHandler until ctx is
// cancelled.
func (b *Bot) StartWebhook(ctx context.Context) {
	b.api.StartWebhook(ctx)
}

// WebhookHandler returns the HTTP handler that accepts Telegram
// webhook deliveries.
func (b *Bot) WebhookHandler() http.HandlerFunc {
	return b.api.WebhookHandler()
}

// Send delivers a plain text message to a chat. It satisfies the
// reminder.Sender interface.
func (b *Bot) Send(ctx context.Context, chatID int64, text string) error {
	_, err := b.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) *models.Message {
	msg, err := b.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		b.logger.Error("Failed to send message", "chat_id", chatID, "error", err)
		return nil
	}
	return msg
}

func (b *Bot) editReply(ctx context.Context, chatID int64, messageID int, text string) {
	_, err := b.api.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	})
	if err != nil {
		b.logger.Error("Failed to edit message", "chat_id", chatID, "error", err)
	}
}
