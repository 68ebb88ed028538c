package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ndhuy/chitieu/internal/summary"
	"github.com/ndhuy/chitieu/internal/types"
)

const (
	msgAmountNotFound = "❌ Không nhận diện được số tiền.\n\n💡 Ví dụ: \"Xăng xe 500k tk\", \"Ứng 5 triệu\""
	msgTaskNoName     = "❌ Không nhận diện được tên công việc.\n\n💡 Ví dụ: \"việc: Họp team - 10/6 - Đang thực hiện\""
	msgSaveFailed     = "❌ Có lỗi khi lưu. Vui lòng thử lại."
	msgSaving         = "⏳ Đang lưu..."
	msgSaved          = "✅ Đã lưu thành công!"
)

func (b *Bot) handleStart(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	b.reply(ctx, update.Message.Chat.ID, fmt.Sprintf(
		"🤖 Chào mừng %s!\n\n"+
			"📝 Nhập chi tiêu theo format:\n\"Xăng xe 500k tk\"\n\"Phở bò 55k tm\"\n\n"+
			"💸 Nhập thu nhập:\n\"Lương tháng 6 20 triệu\"\n\"Hoàn vé máy bay 1.5 triệu\"\n\n"+
			"📋 Nhập công việc:\n\"việc: Họp team - 10/6 - Đang thực hiện\"\n\n"+
			"💳 Thanh toán: tk = Chuyển khoản, tm = Tiền mặt",
		update.Message.From.FirstName))
}

func (b *Bot) handleHelp(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	b.reply(ctx, update.Message.Chat.ID,
		"📖 Hướng dẫn:\n\n"+
			"🔹 Nhập chi tiêu:\n\"Xăng xe 500k tk\"\n\"Phở bò 55k tm\"\n\n"+
			"🔹 Nhập thu nhập:\n\"Lương 10 triệu\"\n\"Hoàn vé xe 500k\"\n\n"+
			"🔹 Nhập công việc:\n\"việc: Tên - Mô tả - Deadline - Trạng thái - Ghi chú\"\n\n"+
			"💳 Thanh toán (chỉ cho chi tiêu):\n• tk = Chuyển khoản\n• tm = Tiền mặt\n\n"+
			"🔹 Lệnh:\n/categories - Danh mục\n/tasks - Công việc\n/summary - Tổng kết tháng\n/subscribe - Nhận nhắc nhở")
}

func (b *Bot) handleCategories(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	b.reply(ctx, update.Message.Chat.ID,
		"📋 Danh mục chi tiêu & thu nhập:\n\n"+
			"💵 Thu nhập: Lương, Hoàn tiền\n\n"+
			"🚗 Chi phí xe ô tô: Xăng, Rửa xe, VETC, Sửa chữa, Vé đỗ xe\n"+
			"🍽️ Nhà hàng: Ăn sáng, Ăn trưa, Ăn tối, Café\n"+
			"📦 Giao nhận đồ: Ship đồ, Grab food\n"+
			"🛒 Mua đồ/Dịch vụ: Mua sắm, Spa, Cắt tóc\n"+
			"💰 Chi phí khác: Linh tinh\n\n"+
			"💡 Ví dụ: \"Xăng xe 500k tk\", \"Hoàn tiền vé máy bay 1.5 triệu\"")
}

func (b *Bot) handleTasks(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	tasks, err := b.sheets.ListTasks(ctx)
	if err != nil {
		b.logger.Error("Failed to list tasks", "error", err)
		b.reply(ctx, chatID, msgSaveFailed)
		return
	}
	if len(tasks) == 0 {
		b.reply(ctx, chatID, "📋 Chưa có công việc nào.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 DANH SÁCH CÔNG VIỆC:\n\n")
	for i, t := range tasks {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, t.Name)
		if t.Deadline != "" {
			fmt.Fprintf(&sb, "   ⏰ %s\n", t.Deadline)
		}
		fmt.Fprintf(&sb, "   📊 %s\n", t.Status)
	}
	b.reply(ctx, chatID, sb.String())
}

func (b *Bot) handleSummary(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	rows, err := b.sheets.ListTransactions(ctx)
	if err != nil {
		b.logger.Error("Failed to list transactions", "error", err)
		b.reply(ctx, chatID, msgSaveFailed)
		return
	}
	now := time.Now()
	b.reply(ctx, chatID, summary.Format(summary.Aggregate(rows, now.Year(), now.Month())))
}

func (b *Bot) handleSubscribe(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if err := b.subs.Add(ctx, chatID, senderName(update.Message.From)); err != nil {
		b.logger.Error("Failed to add subscriber", "error", err)
		b.reply(ctx, chatID, msgSaveFailed)
		return
	}
	b.reply(ctx, chatID, "🔔 Đã bật nhắc nhở chi tiêu và công việc.")
}

func (b *Bot) handleUnsubscribe(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if err := b.subs.Remove(ctx, chatID); err != nil {
		b.logger.Error("Failed to remove subscriber", "error", err)
		b.reply(ctx, chatID, msgSaveFailed)
		return
	}
	b.reply(ctx, chatID, "🔕 Đã tắt nhắc nhở.")
}

// handleUpdate is the default handler: free text and photo captions.
func (b *Bot) handleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	switch {
	case len(msg.Photo) > 0 && msg.Caption != "":
		b.handleExpense(ctx, msg, msg.Caption, msg.Photo[len(msg.Photo)-1].FileID)
	case msg.Text != "" && !strings.HasPrefix(msg.Text, "/"):
		if b.parser.IsTask(msg.Text) || b.taskChats[msg.Chat.ID] {
			b.handleTask(ctx, msg)
		} else {
			b.handleExpense(ctx, msg, msg.Text, "")
		}
	}
}

// handleExpense runs the transaction pipeline: parse, optionally
// archive a receipt photo, persist, confirm.
func (b *Bot) handleExpense(ctx context.Context, msg *models.Message, text, photoFileID string) {
	chatID := msg.Chat.ID
	now := time.Unix(int64(msg.Date), 0).In(b.loc)

	rec := b.parser.ParseTransaction(text, now)
	if !rec.Parseable() {
		b.reply(ctx, chatID, msgAmountNotFound)
		return
	}

	if photoFileID != "" && b.archiver != nil {
		if url, err := b.archiveReceipt(ctx, photoFileID, now); err != nil {
			b.logger.Error("Failed to archive receipt", "error", err)
		} else {
			rec.ReceiptURL = url
		}
	}

	confirm := confirmMessage(rec)
	loading := b.reply(ctx, chatID, confirm+"\n\n"+msgSaving)

	err := b.sheets.AppendTransaction(ctx, rec, senderNote(msg.From), time.Now())
	if loading == nil {
		return
	}
	if err != nil {
		b.logger.Error("Failed to save transaction", "error", err)
		b.editReply(ctx, chatID, loading.ID, msgSaveFailed)
		return
	}
	b.editReply(ctx, chatID, loading.ID, confirm+"\n\n"+msgSaved)
}

// handleTask runs the task pipeline.
func (b *Bot) handleTask(ctx context.Context, msg *models.Message) {
	chatID := msg.Chat.ID

	task := b.parser.ParseTask(msg.Text)
	if !task.Parseable() {
		b.reply(ctx, chatID, msgTaskNoName)
		return
	}

	stored, err := b.sheets.AppendTask(ctx, task, time.Now())
	if err != nil {
		b.logger.Error("Failed to save task", "error", err)
		b.reply(ctx, chatID, msgSaveFailed)
		return
	}
	b.reply(ctx, chatID, fmt.Sprintf(
		"✅ Đã thêm công việc #%d:\n\n📌 %s\n⏰ Deadline: %s\n📊 Trạng thái: %s",
		stored.SequenceNumber, stored.Name, orDash(stored.Deadline), stored.Status))
}

// archiveReceipt downloads a Telegram photo to a temp file and uploads
// it to cloud storage.
func (b *Bot) archiveReceipt(ctx context.Context, fileID string, now time.Time) (string, error) {
	file, err := b.api.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("failed to get file info: %w", err)
	}

	fileURL := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", b.api.Token(), file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp("", "receipt-*"+filepath.Ext(file.FilePath))
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	tmp.Close()

	return b.archiver.ArchiveReceipt(ctx, tmp.Name(), now)
}

// confirmMessage renders the parse confirmation shown before saving.
func confirmMessage(rec types.TransactionRecord) string {
	if rec.Type == types.TransactionTypeIncome {
		return fmt.Sprintf("✅ Đã phân tích (THU NHẬP):\n\n%s %s\n💰 %s₫",
			rec.Emoji, rec.Category, summary.FormatAmount(rec.Amount))
	}
	return fmt.Sprintf("✅ Đã phân tích (CHI TIÊU):\n\n%s %s › %s\n💰 %s₫\n💳 %s",
		rec.Emoji, rec.Category, rec.Subcategory, summary.FormatAmount(rec.Amount), rec.PaymentMethod)
}

func senderName(u *models.User) string {
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}

func senderNote(u *models.User) string {
	return fmt.Sprintf("%s (%d)", senderName(u), u.ID)
}

func orDash(s string) string {
	if s == "" {
		return "(chưa có)"
	}
	return s
}
