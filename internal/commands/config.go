// Package commands holds flag structs and setup helpers shared by the
// chitieu binaries.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ndhuy/chitieu/internal/sheets"
)

// CommonConfig contains configuration common to all commands
type CommonConfig struct {
	// DataDir is the path to the data directory
	DataDir string `help:"Path to data directory" default:"./data"`
	// Timezone anchors date resolution and the reminder schedule
	Timezone string `help:"Timezone for dates and reminder hours" default:"Asia/Ho_Chi_Minh" env:"CHITIEU_TIMEZONE"`
	// LogLevel is the logging level to use
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"info" enum:"debug,info,warn,error"`
}

// SheetsConfig identifies the Google Sheets the bot writes to.
type SheetsConfig struct {
	CredentialsFile string `help:"Google service account credentials JSON" env:"GOOGLE_APPLICATION_CREDENTIALS"`
	ExpenseSheetID  string `help:"Spreadsheet ID of the expense ledger" env:"GOOGLE_SHEET_ID" required:""`
	TaskSheetID     string `help:"Spreadsheet ID of the task list (defaults to the expense sheet)" env:"TASK_SHEET_ID"`
}

// TelegramConfig carries the bot transport settings.
type TelegramConfig struct {
	BotToken    string  `help:"Telegram bot token" env:"BOT_TOKEN" required:""`
	TaskChatIDs []int64 `help:"Chat IDs where every message is a task entry" env:"TASK_CHAT_IDS"`
	Debug       bool    `help:"Enable Telegram API debug logging" default:"false"`
}

// ArchiveConfig carries the receipt storage settings. An empty bucket
// disables receipt archival.
type ArchiveConfig struct {
	ReceiptBucket string `help:"GCS bucket for receipt images (empty disables archival)" env:"RECEIPT_BUCKET"`
}

// Logger builds the process logger at the configured level.
func (c CommonConfig) Logger() (*log.Logger, error) {
	logger := log.New(os.Stderr)
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	logger.SetLevel(level)
	return logger, nil
}

// Location loads the configured timezone.
func (c CommonConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SheetsClientConfig maps the flags to the sheets client config.
func (c SheetsConfig) SheetsClientConfig() sheets.Config {
	return sheets.Config{
		CredentialsFile: c.CredentialsFile,
		ExpenseSheetID:  c.ExpenseSheetID,
		TaskSheetID:     c.TaskSheetID,
	}
}
