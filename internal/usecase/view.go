package usecase

import (
	"context"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
)

// CardView bitta mahsulot kartasi
type CardView struct {
	ID          int64
	Name        string
	Description string
	Price       string
}

// CardsView kartalar ro'yxati; bo'sh bo'lsa EmptyMessage ko'rsatiladi
type CardsView struct {
	Cards        []CardView
	EmptyMessage string
}

// FormView inline forma
type FormView struct {
	Title       string
	SubmitLabel string
	Editing     bool
	EditingID   int64
	Name        string
	Description string
	Price       string
}

// WidgetsView dashboard xulosa kartochkalari
type WidgetsView struct {
	TotalProducts      string
	MostExpensive      string
	MostExpensiveName  string
	LeastExpensive     string
	LeastExpensiveName string
	TotalValue         string
}

// ColumnView jadval sarlavhasi
type ColumnView struct {
	Column    entity.SortColumn
	Label     string
	Indicator string
	Active    bool
}

// RowView jadval qatori
type RowView struct {
	ID          int64
	Name        string
	Description string
	Price       string
}

// TableView joriy sahifadagi jadval
type TableView struct {
	Columns      []ColumnView
	Rows         []RowView
	EmptyMessage string
}

// PaginationView pager holati
type PaginationView struct {
	Info         string
	PrevDisabled bool
	NextDisabled bool
	Pages        []PageItem
	CurrentPage  int
	TotalPages   int
	ItemsPerPage int
}

// ModalView dashboard modal formasi
type ModalView struct {
	Open        bool
	Title       string
	Editing     bool
	EditingID   int64
	Name        string
	Description string
	Price       string
}

// ListView kartalar sahifasi porti
type ListView interface {
	SetLoading(loading bool)
	RenderCards(v CardsView)
	RenderForm(v FormView)
	ScrollToForm()
	Notify(n entity.Notification)
}

// DashboardView dashboard porti
type DashboardView interface {
	SetLoading(loading bool)
	RenderWidgets(v WidgetsView)
	RenderTable(v TableView)
	RenderPagination(v PaginationView)
	RenderModal(v ModalView)
	Notify(n entity.Notification)
}

// ConfirmFunc foydalanuvchidan tasdiq so'rash
type ConfirmFunc func(ctx context.Context, prompt string) bool

type confirmedKey struct{}

// WithConfirmation foydalanuvchi javobini contextga qo'yish
func WithConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmedKey{}, confirmed)
}

// ContextConfirm javobni contextdan o'qiydigan ConfirmFunc; javob bo'lmasa rad
func ContextConfirm(ctx context.Context, _ string) bool {
	confirmed, _ := ctx.Value(confirmedKey{}).(bool)
	return confirmed
}

var columnLabels = map[entity.SortColumn]string{
	entity.SortID:          "ID",
	entity.SortName:        "Name",
	entity.SortDescription: "Description",
	entity.SortPrice:       "Price",
}

// ColumnLabel ustun sarlavhasi
func ColumnLabel(c entity.SortColumn) string {
	return columnLabels[c]
}
