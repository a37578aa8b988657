package telegram

import (
	"slices"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/usecase"
)

// chatView bitta chat uchun usecase.DashboardView; oxirgi holatni saqlaydi
type chatView struct {
	chatID int64
	sender sender
	ttl    time.Duration
	logger *zap.Logger

	mu         sync.Mutex
	loading    bool
	widgets    usecase.WidgetsView
	table      usecase.TableView
	pagination usecase.PaginationView
	modal      usecase.ModalView
}

var _ usecase.DashboardView = (*chatView)(nil)

func (v *chatView) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = loading
}

func (v *chatView) RenderWidgets(w usecase.WidgetsView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.widgets = w
}

func (v *chatView) RenderTable(t usecase.TableView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.table = t
}

func (v *chatView) RenderPagination(p usecase.PaginationView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pagination = p
}

func (v *chatView) RenderModal(m usecase.ModalView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modal = m
}

// Notify bildirishnomani yuborib TTL dan keyin o'chirish
func (v *chatView) Notify(n entity.Notification) {
	icon := "✅ "
	if n.Kind == entity.NotificationError {
		icon = "❌ "
	}

	sent, err := v.sender.Send(tgbotapi.NewMessage(v.chatID, icon+n.Message))
	if err != nil {
		v.logger.Error("failed to send notification", zap.Int64("chat_id", v.chatID), zap.Error(err))
		return
	}
	if v.ttl <= 0 {
		return
	}

	time.AfterFunc(v.ttl, func() {
		if _, err := v.sender.Request(tgbotapi.NewDeleteMessage(v.chatID, sent.MessageID)); err != nil {
			v.logger.Debug("failed to delete notification", zap.Int64("chat_id", v.chatID), zap.Error(err))
		}
	})
}

type snapshot struct {
	Loading    bool
	Widgets    usecase.WidgetsView
	Table      usecase.TableView
	Pagination usecase.PaginationView
	Modal      usecase.ModalView
}

func (v *chatView) snapshot() snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	table := v.table
	table.Rows = slices.Clone(v.table.Rows)
	table.Columns = slices.Clone(v.table.Columns)
	pagination := v.pagination
	pagination.Pages = slices.Clone(v.pagination.Pages)
	return snapshot{
		Loading:    v.loading,
		Widgets:    v.widgets,
		Table:      table,
		Pagination: pagination,
		Modal:      v.modal,
	}
}
