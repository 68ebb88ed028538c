package parser

import "github.com/ndhuy/chitieu/internal/types"

// DefaultConfig returns the canonical Vietnamese keyword tables used in
// production. Tests may construct smaller configs of their own.
func DefaultConfig() Config {
	return Config{
		Categories: []CategoryEntry{
			{Name: "Nhà hàng", Emoji: "🍽️", Keywords: []string{"ăn sáng", "ăn trưa", "ăn tối", "café"}},
			{Name: "Ăn sáng", Emoji: "🍳", Keywords: []string{"phở", "bánh mì", "cơm"}},
			{Name: "Ăn trưa", Emoji: "🍱", Keywords: []string{"cơm", "bún", "phở"}},
			{Name: "Ăn tối", Emoji: "🍽️", Keywords: []string{"cơm", "lẩu", "nướng"}},
			{Name: "Café", Emoji: "☕", Keywords: []string{"cà phê", "trà", "nước"}},
			{Name: "Giao nhận đồ", Emoji: "📦", Keywords: []string{"giao đồ", "ship đồ", "grab food"}},
			{Name: "Ship đồ", Emoji: "📮", Keywords: []string{"phí ship", "giao hàng"}},
			{Name: "Mua đồ", Emoji: "🛒", Keywords: []string{"quần áo", "giày dép", "mỹ phẩm"}},
			{Name: "Dịch vụ", Emoji: "🔧", Keywords: []string{"cắt tóc", "massage", "spa"}},
			{Name: "Chi phí khác", Emoji: "💰", Keywords: []string{"khác", "linh tinh"}},
		},

		Vehicle: VehicleRule{
			Category: "Chi phí xe ô tô",
			Emoji:    "🚗",
			Triggers: []string{
				"xăng", "đổ xăng", "nhiên liệu",
				"rửa xe", "vệ sinh xe",
				"vetc", "thu phí không dừng",
				"sửa xe", "sửa chữa xe",
				"vé đỗ xe", "đỗ xe", "gửi xe",
				"ô tô", "xe ô tô",
			},
			Subrules: []VehicleSubrule{
				{Name: "Xăng", Emoji: "⛽", Keywords: []string{"xăng", "đổ xăng", "nhiên liệu"}},
				{Name: "Rửa xe", Emoji: "🧽", Keywords: []string{"rửa xe", "vệ sinh xe"}},
				{Name: "VETC", Emoji: "🎫", Keywords: []string{"vetc", "thu phí không dừng"}},
				{Name: "Sửa chữa", Emoji: "🔧", Keywords: []string{"sửa xe", "sửa chữa"}},
				{Name: "Vé đỗ xe", Emoji: "🅿️", Keywords: []string{"vé đỗ xe", "đỗ xe", "gửi xe"}},
			},
		},

		IncomeKeywords: []string{"thu", "nhận", "lương", "ứng"},
		RefundKeywords: []string{"hoàn"},
		IncomeCategory: "Thu nhập",
		IncomeEmoji:    "💵",
		RefundCategory: "Hoàn tiền",
		RefundEmoji:    "↩️",

		PaymentRules: []PaymentRule{
			{Keyword: "tk", Method: types.PaymentMethodTransfer},
			{Keyword: "ck", Method: types.PaymentMethodTransfer},
			{Keyword: "chuyển khoản", Method: types.PaymentMethodTransfer},
			{Keyword: "banking", Method: types.PaymentMethodTransfer},
			{Keyword: "tm", Method: types.PaymentMethodCash},
			{Keyword: "tiền mặt", Method: types.PaymentMethodCash},
			{Keyword: "cash", Method: types.PaymentMethodCash},
		},

		// Longest prefixes first so the most specific one wins.
		TaskPrefixes: []string{
			"công việc:", "công việc",
			"task:", "task",
			"việc:", "việc",
			"cv:",
		},

		DefaultCategory:    "Chi phí khác",
		DefaultEmoji:       "💰",
		DefaultSubcategory: "Khác",
	}
}
