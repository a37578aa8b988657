package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fakeRepository API clientning boshqariladigan o'rnini bosuvchisi
type fakeRepository struct {
	mu       sync.Mutex
	products []entity.Product
	nextID   int64

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	// createGate berilsa Create undan signal kelguncha kutadi
	createGate    chan struct{}
	createEntered chan struct{}

	calls   []string
	created []entity.Draft
}

func newFakeRepository(products ...entity.Product) *fakeRepository {
	r := &fakeRepository{products: products, nextID: 100}
	return r
}

func (r *fakeRepository) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *fakeRepository) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *fakeRepository) ListAll(context.Context) ([]entity.Product, error) {
	r.record("list")
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]entity.Product{}, r.products...), nil
}

func (r *fakeRepository) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.record("get")
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := entity.FindProduct(r.products, id); ok {
		return &p, nil
	}
	return nil, &repository.TransportError{Op: "get", Status: 404, Message: "Failed to fetch product"}
}

func (r *fakeRepository) Create(_ context.Context, d entity.Draft) (*entity.Product, error) {
	r.record("create")
	if r.createEntered != nil {
		r.createEntered <- struct{}{}
	}
	if r.createGate != nil {
		<-r.createGate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	p := entity.Product{ID: r.nextID, Name: d.Name, Description: d.Description, Price: d.Price}
	r.products = append(r.products, p)
	r.created = append(r.created, d)
	return &p, nil
}

func (r *fakeRepository) Update(_ context.Context, id int64, d entity.Draft) (*entity.Product, error) {
	r.record("update")
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for i := range r.products {
		if r.products[i].ID == id {
			r.products[i] = entity.Product{ID: id, Name: d.Name, Description: d.Description, Price: d.Price}
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, &repository.TransportError{Op: "update", Status: 404, Message: "Failed to update product"}
}

func (r *fakeRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.record("delete")
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return true, nil
		}
	}
	return false, &repository.TransportError{Op: "delete", Status: 404, Message: "Failed to delete product"}
}

type recordedView struct {
	mu            sync.Mutex
	loading       []bool
	notifications []entity.Notification
}

func (v *recordedView) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = append(v.loading, loading)
}

func (v *recordedView) Notify(n entity.Notification) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notifications = append(v.notifications, n)
}

func (v *recordedView) Notifications() []entity.Notification {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]entity.Notification(nil), v.notifications...)
}

func (v *recordedView) LastNotification() entity.Notification {
	ns := v.Notifications()
	if len(ns) == 0 {
		return entity.Notification{}
	}
	return ns[len(ns)-1]
}

type fakeListView struct {
	recordedView
	cards       CardsView
	cardRenders int
	form        FormView
	scrolled    int
}

func (v *fakeListView) RenderCards(c CardsView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cards = c
	v.cardRenders++
}

func (v *fakeListView) RenderForm(f FormView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form = f
}

func (v *fakeListView) ScrollToForm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrolled++
}

type fakeDashboardView struct {
	recordedView
	widgets    WidgetsView
	table      TableView
	pagination PaginationView
	modal      ModalView
}

func (v *fakeDashboardView) RenderWidgets(w WidgetsView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.widgets = w
}

func (v *fakeDashboardView) RenderTable(t TableView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.table = t
}

func (v *fakeDashboardView) RenderPagination(p PaginationView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pagination = p
}

func (v *fakeDashboardView) RenderModal(m ModalView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modal = m
}

func (v *fakeDashboardView) rowIDs() []int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	ids := make([]int64, 0, len(v.table.Rows))
	for _, r := range v.table.Rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func alwaysConfirm(context.Context, string) bool { return true }

func neverConfirm(context.Context, string) bool { return false }

func sampleProducts() []entity.Product {
	return []entity.Product{
		{ID: 1, Name: "Lamp", Description: "Brass", Price: 10},
		{ID: 2, Name: "chair", Description: "Mesh", Price: 30},
		{ID: 3, Name: "Desk", Description: "oak", Price: 20},
	}
}
