package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
	"github.com/yourusername/product-catalog-client/internal/usecase"
)

const maxDocumentSize = 5 * 1024 * 1024

// sender tgbotapi.BotAPI ning bizga kerakli qismi
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Config bot bog'liqliklari
type Config struct {
	Repo            repository.ProductRepository
	Parser          repository.ExcelParser
	Writer          repository.ExcelWriter
	Logger          *zap.Logger
	ItemsPerPage    int
	NotificationTTL time.Duration
}

// chat bitta Telegram chat holati
type chat struct {
	id   int64
	dash *usecase.DashboardController
	view *chatView

	mu        sync.Mutex
	messageID int // dashboard xabari, 0 bo'lsa hali yuborilmagan
	form      *formSession

	loadOnce sync.Once // birinchi yuklash tugaguncha boshqa updatelar kutadi
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot      *tgbotapi.BotAPI
	sender   sender
	download func(ctx context.Context, fileID string) ([]byte, error)
	cfg      Config
	logger   *zap.Logger

	chatsMu sync.RWMutex
	chats   map[int64]*chat // key: chat ID
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(token string, cfg Config) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	h := newHandler(bot, cfg)
	h.bot = bot
	h.download = h.downloadFile
	return h, nil
}

func newHandler(s sender, cfg Config) *BotHandler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &BotHandler{
		sender: s,
		cfg:    cfg,
		logger: cfg.Logger.Named("telegram"),
		chats:  make(map[int64]*chat),
	}
}

// Start botni ishga tushirish
func (h *BotHandler) Start(ctx context.Context) error {
	h.logger.Info("bot started", zap.String("username", h.bot.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("bot stopping")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				h.handleUpdate(ctx, update)
			}()
		}
	}
}

func (h *BotHandler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	}
}

// chatFor chat holatini olish yoki yaratish
func (h *BotHandler) chatFor(chatID int64) *chat {
	h.chatsMu.RLock()
	c, ok := h.chats[chatID]
	h.chatsMu.RUnlock()
	if ok {
		return c
	}

	h.chatsMu.Lock()
	defer h.chatsMu.Unlock()
	if c, ok := h.chats[chatID]; ok {
		return c
	}

	view := &chatView{chatID: chatID, sender: h.sender, ttl: h.cfg.NotificationTTL, logger: h.logger}
	c = &chat{
		id:   chatID,
		view: view,
		dash: usecase.NewDashboardController(h.cfg.Repo, view, usecase.ContextConfirm,
			usecase.WithLogger(h.logger),
			usecase.WithItemsPerPage(h.cfg.ItemsPerPage),
			usecase.WithExcel(h.cfg.Parser, h.cfg.Writer),
		),
	}
	h.chats[chatID] = c
	return c
}

// ensureLoaded birinchi murojaatda mahsulotlarni yuklash
func (h *BotHandler) ensureLoaded(ctx context.Context, c *chat) {
	c.loadOnce.Do(func() {
		_ = c.dash.LoadProducts(ctx)
		c.dash.Render()
	})
}

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Chat == nil {
		return
	}
	c := h.chatFor(message.Chat.ID)
	h.ensureLoaded(ctx, c)

	// Fayl yuborilgan bo'lsa
	if message.Document != nil {
		h.handleDocumentMessage(ctx, c, message.Document)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, c, message)
		return
	}

	c.mu.Lock()
	inForm := c.form != nil
	c.mu.Unlock()
	if inForm {
		h.handleFormInput(ctx, c, message.Text)
		return
	}

	h.sendHTML(c.id, escape(helpText()))
}

// handleCommand komandalarni qayta ishlash
func (h *BotHandler) handleCommand(ctx context.Context, c *chat, message *tgbotapi.Message) {
	switch message.Command() {
	case "start", "products":
		h.resend(c)
	case "add":
		c.dash.OpenAddModal()
		h.startForm(c, "")
	case "reload":
		_ = c.dash.LoadProducts(ctx)
		h.refresh(c)
	case "export":
		h.sendExport(ctx, c)
	case "cancel":
		h.cancelForm(c)
	case "help":
		h.sendHTML(c.id, escape(helpText()))
	default:
		h.sendHTML(c.id, "Unknown command. /help for usage.")
	}
}

// handleCallback inline tugmalarni qayta ishlash
func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// Callback ga javob (spinnerni to'xtatish)
	if _, err := h.sender.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		h.logger.Debug("callback answer failed", zap.Error(err))
	}
	if cq.Message == nil || cq.Message.Chat == nil {
		return
	}

	c := h.chatFor(cq.Message.Chat.ID)
	h.ensureLoaded(ctx, c)

	action, arg := parseCallback(cq.Data)
	switch action {
	case cbNoop:
		return
	case cbSort:
		column, err := entity.ParseSortColumn(arg)
		if err != nil {
			return
		}
		_ = c.dash.SortTable(column)
	case cbPage:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return
		}
		c.dash.GoToPage(n)
	case cbPrev:
		c.dash.PreviousPage()
	case cbNext:
		c.dash.NextPage()
	case cbPerPage:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return
		}
		c.dash.ChangeItemsPerPage(n)
	case cbReload:
		_ = c.dash.LoadProducts(ctx)
	case cbAdd:
		c.dash.OpenAddModal()
		h.startForm(c, "")
		return
	case cbEdit:
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return
		}
		c.dash.EditProduct(id)
		h.startForm(c, "")
		return
	case cbDelete:
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return
		}
		h.askDelete(c, id)
		return
	case cbDelYes, cbDelNo:
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return
		}
		h.removeMessage(c.id, cq.Message.MessageID)
		confirmCtx := usecase.WithConfirmation(ctx, action == cbDelYes)
		if err := c.dash.DeleteProduct(confirmCtx, id); err != nil {
			h.logger.Debug("delete failed", zap.Int64("id", id), zap.Error(err))
		}
	case cbExport:
		h.sendExport(ctx, c)
		return
	default:
		return
	}
	h.refresh(c)
}

// askDelete Yes/No tasdiq so'rash
func (h *BotHandler) askDelete(c *chat, id int64) {
	text := usecase.DeletePrompt
	if p, ok := entity.FindProduct(c.dash.State().Products, id); ok {
		text += "\n<b>" + escape(p.Name) + "</b>"
	}
	msg := tgbotapi.NewMessage(c.id, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = confirmKeyboard(id)
	if _, err := h.sender.Send(msg); err != nil {
		h.logger.Error("failed to send delete confirmation", zap.Error(err))
	}
}

// handleDocumentMessage xlsx import
func (h *BotHandler) handleDocumentMessage(ctx context.Context, c *chat, doc *tgbotapi.Document) {
	if doc.FileSize > maxDocumentSize {
		h.sendHTML(c.id, "❌ File must not exceed 5MB.")
		return
	}
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		h.sendHTML(c.id, "❌ Only .xlsx files are accepted.")
		return
	}

	data, err := h.download(ctx, doc.FileID)
	if err != nil {
		h.logger.Error("file download failed", zap.Error(err))
		h.sendHTML(c.id, "❌ "+usecase.MsgImportFailed)
		return
	}

	res, err := c.dash.ImportProducts(ctx, data)
	if err != nil {
		h.logger.Warn("import failed", zap.Error(err))
	} else {
		h.logger.Info("products imported", zap.Int64("chat_id", c.id), zap.Int("imported", res.Imported), zap.Int("skipped", res.Skipped))
	}
	h.refresh(c)
}

// downloadFile Telegram dan faylni yuklash
func (h *BotHandler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(h.bot.Token), nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.bot.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
}

func (h *BotHandler) sendExport(ctx context.Context, c *chat) {
	data, err := c.dash.ExportProducts(ctx)
	if err != nil {
		h.logger.Error("export failed", zap.Error(err))
		h.sendHTML(c.id, "❌ Export failed.")
		return
	}

	doc := tgbotapi.NewDocument(c.id, tgbotapi.FileBytes{Name: "products.xlsx", Bytes: data})
	if _, err := h.sender.Send(doc); err != nil {
		h.logger.Error("failed to send export", zap.Error(err))
	}
}

// refresh dashboard xabarini joyida yangilash; xabar yo'q bo'lsa yangisini yuborish
func (h *BotHandler) refresh(c *chat) {
	snap := c.view.snapshot()
	text := dashboardText(snap)
	markup := dashboardKeyboard(snap)

	c.mu.Lock()
	messageID := c.messageID
	c.mu.Unlock()

	if messageID != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(c.id, messageID, text, markup)
		edit.ParseMode = tgbotapi.ModeHTML
		_, err := h.sender.Send(edit)
		if err == nil || strings.Contains(err.Error(), "message is not modified") {
			return
		}
		h.logger.Debug("dashboard edit failed, sending new message", zap.Error(err))
	}
	h.sendDashboard(c, text, markup)
}

// resend dashboardni yangi xabar sifatida yuborish
func (h *BotHandler) resend(c *chat) {
	snap := c.view.snapshot()
	h.sendDashboard(c, dashboardText(snap), dashboardKeyboard(snap))
}

func (h *BotHandler) sendDashboard(c *chat, text string, markup tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(c.id, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	sent, err := h.sender.Send(msg)
	if err != nil {
		h.logger.Error("failed to send dashboard", zap.Int64("chat_id", c.id), zap.Error(err))
		return
	}

	c.mu.Lock()
	c.messageID = sent.MessageID
	c.mu.Unlock()
}

func (h *BotHandler) removeMessage(chatID int64, messageID int) {
	if _, err := h.sender.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		h.logger.Debug("failed to delete message", zap.Error(err))
	}
}

// sendHTML HTML parse mode bilan xabar yuborish
func (h *BotHandler) sendHTML(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := h.sender.Send(msg); err != nil {
		h.logger.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
