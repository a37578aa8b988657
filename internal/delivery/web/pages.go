package web

import (
	"slices"
	"sync"
	"time"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/usecase"
)

// toasts ko'rsatilishi kutilayotgan bildirishnomalar
type toasts struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	queue []entity.Notification
}

func (t *toasts) Notify(n entity.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue = append(t.queue, n)
}

// take muddati o'tmaganlarini qaytarib navbatni tozalash
func (t *toasts) take() []entity.Notification {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	var fresh []entity.Notification
	for _, n := range t.queue {
		if !n.Expired(now, t.ttl) {
			fresh = append(fresh, n)
		}
	}
	t.queue = nil
	return fresh
}

// listPage usecase.ListView ning bufer qiluvchi realizatsiyasi
type listPage struct {
	toasts

	loading bool
	cards   usecase.CardsView
	form    usecase.FormView
	scroll  bool
}

var _ usecase.ListView = (*listPage)(nil)

func (p *listPage) SetLoading(loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = loading
}

func (p *listPage) RenderCards(v usecase.CardsView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cards = v
}

func (p *listPage) RenderForm(v usecase.FormView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = v
}

func (p *listPage) ScrollToForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scroll = true
}

// takeScroll scroll so'rovi bo'lganmi (bir martalik)
func (p *listPage) takeScroll() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.scroll
	p.scroll = false
	return s
}

type listData struct {
	Loading bool
	Cards   usecase.CardsView
	Form    usecase.FormView
}

func (p *listPage) snapshot() listData {
	p.mu.Lock()
	defer p.mu.Unlock()
	cards := p.cards
	cards.Cards = slices.Clone(p.cards.Cards)
	return listData{Loading: p.loading, Cards: cards, Form: p.form}
}

// dashboardPage usecase.DashboardView ning bufer qiluvchi realizatsiyasi
type dashboardPage struct {
	toasts

	loading    bool
	widgets    usecase.WidgetsView
	table      usecase.TableView
	pagination usecase.PaginationView
	modal      usecase.ModalView
}

var _ usecase.DashboardView = (*dashboardPage)(nil)

func (p *dashboardPage) SetLoading(loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = loading
}

func (p *dashboardPage) RenderWidgets(v usecase.WidgetsView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.widgets = v
}

func (p *dashboardPage) RenderTable(v usecase.TableView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.table = v
}

func (p *dashboardPage) RenderPagination(v usecase.PaginationView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pagination = v
}

func (p *dashboardPage) RenderModal(v usecase.ModalView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modal = v
}

type dashboardData struct {
	Loading    bool
	Widgets    usecase.WidgetsView
	Table      usecase.TableView
	Pagination usecase.PaginationView
	Modal      usecase.ModalView
	PerPage    []int
}

func (p *dashboardPage) snapshot() dashboardData {
	p.mu.Lock()
	defer p.mu.Unlock()
	table := p.table
	table.Rows = slices.Clone(p.table.Rows)
	table.Columns = slices.Clone(p.table.Columns)
	pagination := p.pagination
	pagination.Pages = slices.Clone(p.pagination.Pages)
	return dashboardData{
		Loading:    p.loading,
		Widgets:    p.widgets,
		Table:      table,
		Pagination: pagination,
		Modal:      p.modal,
		PerPage:    perPageChoices,
	}
}

var perPageChoices = []int{5, 10, 25, 50}
