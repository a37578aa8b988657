package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/product-catalog-client/internal/usecase"
)

// Callback data prefikslari
const (
	cbSort     = "s:"
	cbPage     = "p:"
	cbPerPage  = "pp:"
	cbEdit     = "e:"
	cbDelete   = "d:"
	cbDelYes   = "dy:"
	cbDelNo    = "dn:"
	cbPrev     = "prev"
	cbNext     = "next"
	cbAdd      = "add"
	cbReload   = "reload"
	cbExport   = "export"
	cbNoop     = "noop"
	nameWidth  = 18
	descWidth  = 22
	priceWidth = 11
)

// bot uchun sahifa hajmlari (inline klaviatura cheklovi sababli)
var perPageChoices = []int{5, 10, 20}

// truncateString uzun matnni qisqartirish
func truncateString(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

func pad(s string, width int) string {
	s = truncateString(s, width)
	if n := utf8.RuneCountInString(s); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

// dashboardText widgetlar va jadval (HTML parse mode)
func dashboardText(s snapshot) string {
	var sb strings.Builder
	sb.WriteString("📊 <b>Product Dashboard</b>\n\n")
	fmt.Fprintf(&sb, "Total Products: <b>%s</b>\n", escape(s.Widgets.TotalProducts))
	fmt.Fprintf(&sb, "%s: <b>%s</b>\n", escape(s.Widgets.MostExpensiveName), escape(s.Widgets.MostExpensive))
	fmt.Fprintf(&sb, "%s: <b>%s</b>\n", escape(s.Widgets.LeastExpensiveName), escape(s.Widgets.LeastExpensive))
	fmt.Fprintf(&sb, "Total Value: <b>%s</b>\n\n", escape(s.Widgets.TotalValue))

	if s.Table.EmptyMessage != "" {
		sb.WriteString("<i>" + escape(s.Table.EmptyMessage) + "</i>\n")
	} else {
		var tbl strings.Builder
		fmt.Fprintf(&tbl, "%-5s%s %s %s\n", "ID", pad("Name", nameWidth), pad("Description", descWidth), "Price")
		for _, r := range s.Table.Rows {
			fmt.Fprintf(&tbl, "%-5s%s %s %*s\n",
				strconv.FormatInt(r.ID, 10),
				pad(r.Name, nameWidth),
				pad(r.Description, descWidth),
				priceWidth, r.Price,
			)
		}
		sb.WriteString("<pre>" + escape(tbl.String()) + "</pre>\n")
	}

	sb.WriteString(escape(s.Pagination.Info))
	if s.Loading {
		sb.WriteString("\n⏳ Loading...")
	}
	return sb.String()
}

// dashboardKeyboard sort, pager, per-page, qator va amal tugmalari
func dashboardKeyboard(s snapshot) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var sortRow []tgbotapi.InlineKeyboardButton
	for _, c := range s.Table.Columns {
		label := c.Label
		if c.Indicator != "" {
			label += " " + c.Indicator
		}
		sortRow = append(sortRow, tgbotapi.NewInlineKeyboardButtonData(label, cbSort+string(c.Column)))
	}
	if len(sortRow) > 0 {
		rows = append(rows, sortRow)
	}

	for _, r := range s.Table.Rows {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ "+truncateString(r.Name, 24), cbEdit+strconv.FormatInt(r.ID, 10)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", cbDelete+strconv.FormatInt(r.ID, 10)),
		))
	}

	if pages := s.Pagination.Pages; len(pages) > 0 {
		var pageRow []tgbotapi.InlineKeyboardButton
		for _, p := range pages {
			switch {
			case p.Ellipsis:
				pageRow = append(pageRow, tgbotapi.NewInlineKeyboardButtonData("…", cbNoop))
			case p.Current:
				pageRow = append(pageRow, tgbotapi.NewInlineKeyboardButtonData("· "+strconv.Itoa(p.Number)+" ·", cbNoop))
			default:
				pageRow = append(pageRow, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(p.Number), cbPage+strconv.Itoa(p.Number)))
			}
		}
		rows = append(rows, pageRow)
	}

	prev := tgbotapi.NewInlineKeyboardButtonData("◀ Previous", cbPrev)
	if s.Pagination.PrevDisabled {
		prev = tgbotapi.NewInlineKeyboardButtonData("◁", cbNoop)
	}
	next := tgbotapi.NewInlineKeyboardButtonData("Next ▶", cbNext)
	if s.Pagination.NextDisabled {
		next = tgbotapi.NewInlineKeyboardButtonData("▷", cbNoop)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(prev, next))

	var perRow []tgbotapi.InlineKeyboardButton
	for _, n := range perPageChoices {
		label := strconv.Itoa(n) + " per page"
		if n == s.Pagination.ItemsPerPage {
			label = "• " + label
		}
		perRow = append(perRow, tgbotapi.NewInlineKeyboardButtonData(label, cbPerPage+strconv.Itoa(n)))
	}
	rows = append(rows, perRow)

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Add Product", cbAdd),
		tgbotapi.NewInlineKeyboardButtonData("🔄 Reload", cbReload),
		tgbotapi.NewInlineKeyboardButtonData("📤 Export", cbExport),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// confirmKeyboard o'chirishni tasdiqlash tugmalari
func confirmKeyboard(id int64) tgbotapi.InlineKeyboardMarkup {
	sid := strconv.FormatInt(id, 10)
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Yes", cbDelYes+sid),
		tgbotapi.NewInlineKeyboardButtonData("No", cbDelNo+sid),
	))
}

// parseCallback "prefix:arg" ni ajratish
func parseCallback(data string) (action, arg string) {
	for _, prefix := range []string{cbPerPage, cbDelYes, cbDelNo, cbSort, cbPage, cbEdit, cbDelete} {
		if strings.HasPrefix(data, prefix) {
			return prefix, strings.TrimPrefix(data, prefix)
		}
	}
	return data, ""
}

func helpText() string {
	return strings.Join([]string{
		"/products - show the dashboard",
		"/add - add a product",
		"/reload - reload products",
		"/export - download products as .xlsx",
		"/cancel - cancel the product form",
		"Send an .xlsx file to import products.",
	}, "\n")
}

func modalPrompt(m usecase.ModalView) string {
	if m.Editing {
		return "<b>" + escape(m.Title) + "</b>\nSend \"-\" to keep the current value."
	}
	return "<b>" + escape(m.Title) + "</b>"
}
