package reminder

import (
	"fmt"
	"strings"

	"github.com/ndhuy/chitieu/internal/sheets"
)

// maxDigestTasks caps how many pending tasks a digest lists in full.
const maxDigestTasks = 5

// expenseMessage returns the nudge text for an expense reminder hour,
// or "" for hours outside the schedule.
func expenseMessage(hour int) string {
	timeStr := fmt.Sprintf("%d:00", hour)
	switch hour {
	case 12:
		return fmt.Sprintf("🍱 GIỜ ĂN TRƯA RỒI! (%s)\n\n📝 Hôm nay ăn gì? Nhớ ghi chi phí ăn uống nhé!\n\n💡 Ví dụ:\n• \"Cơm văn phòng - 45k - tm\"\n• \"Ship đồ ăn - 80k - tk\"", timeStr)
	case 18:
		return fmt.Sprintf("🌆 CUỐI NGÀY LÀM VIỆC! (%s)\n\n📝 Hôm nay có chi tiêu gì khác không?\n\n💡 Có thể bạn quên:\n• \"Café chiều - 30k - tm\"\n• \"Đổ xăng về nhà - 500k - tk\"\n• \"Mua đồ - 200k - tk\"", timeStr)
	case 22:
		return fmt.Sprintf("🌙 TRƯỚC KHI NGỦ! (%s)\n\n📝 Kiểm tra lại chi tiêu hôm nay nhé!\n\n💡 Đừng quên:\n• \"Ăn tối - 100k - tm\"\n• \"Grab về nhà - 50k - tk\"\n• \"Mua thuốc - 80k - tm\"", timeStr)
	}
	return ""
}

// pending reports whether a task still needs attention: it has a
// status and the status names neither completion nor cancellation.
func pending(t sheets.TaskRow) bool {
	status := strings.ToLower(t.Status)
	if status == "" {
		return false
	}
	return !strings.Contains(status, "hoàn thành") && !strings.Contains(status, "hủy")
}

// taskDigest formats the task reminder: the first few pending tasks
// with deadline, status, progress and notes, plus an overflow count.
func taskDigest(tasks []sheets.TaskRow, hour int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 NHẮC NHỞ CÔNG VIỆC (%d:00)\n\n", hour)

	var pendingTasks []sheets.TaskRow
	for _, t := range tasks {
		if pending(t) {
			pendingTasks = append(pendingTasks, t)
		}
	}

	if len(pendingTasks) == 0 {
		b.WriteString("🎉 Tuyệt vời! Tất cả công việc đã hoàn thành!\n\n💪 Hãy tiếp tục duy trì hiệu suất cao nhé!")
		return b.String()
	}

	fmt.Fprintf(&b, "📊 Tổng quan: %d công việc đang thực hiện\n\n", len(pendingTasks))

	shown := pendingTasks
	if len(shown) > maxDigestTasks {
		shown = shown[:maxDigestTasks]
	}
	for i, t := range shown {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.Name)
		if t.Deadline != "" {
			fmt.Fprintf(&b, "   ⏰ Deadline: %s\n", t.Deadline)
		}
		fmt.Fprintf(&b, "   📊 Trạng thái: %s\n", t.Status)
		if t.Progress != "" && t.Progress != "0" {
			fmt.Fprintf(&b, "   📈 Tiến độ: %s%%\n", t.Progress)
		}
		if t.Notes != "" {
			fmt.Fprintf(&b, "   📝 Vướng mắc: %s\n", t.Notes)
		}
		b.WriteString("\n")
	}

	if len(pendingTasks) > maxDigestTasks {
		fmt.Fprintf(&b, "📋 Và %d công việc khác...\n\n", len(pendingTasks)-maxDigestTasks)
	}

	b.WriteString("💡 Gõ /tasks để xem danh sách đầy đủ")
	return b.String()
}
