package usecase

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
)

// ListState kartalar sahifasi holati
type ListState struct {
	Products []entity.Product
	Form     entity.FormEditState
	Values   FormInput // formada ko'rinib turgan qiymatlar
	Loading  bool
}

// ListController kartalar va inline forma
type ListController struct {
	repo    repository.ProductRepository
	view    ListView
	confirm ConfirmFunc
	opts    options

	mu    sync.Mutex
	state ListState
}

// NewListController yangi ListController yaratish
func NewListController(repo repository.ProductRepository, view ListView, confirm ConfirmFunc, opts ...Option) *ListController {
	if confirm == nil {
		confirm = ContextConfirm
	}
	return &ListController{
		repo:    repo,
		view:    view,
		confirm: confirm,
		opts:    buildOptions(opts),
		state:   ListState{Products: []entity.Product{}},
	}
}

// State holat nusxasi
func (c *ListController) State() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Products = slices.Clone(c.state.Products)
	if id := c.state.Form.EditingID; id != nil {
		v := *id
		s.Form.EditingID = &v
	}
	return s
}

// LoadProducts ro'yxatni to'liq qayta yuklash; xatoda oldingi ro'yxat qoladi
func (c *ListController) LoadProducts(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	products, err := c.repo.ListAll(ctx)
	if err != nil {
		c.opts.logger.Error("error loading products", zap.Error(err))
		c.notify(MsgLoadFailed, entity.NotificationError)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Products = products
	c.view.RenderCards(cardsView(products))
	return nil
}

// Render joriy holatni qayta chizish
func (c *ListController) Render() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.view.RenderCards(cardsView(c.state.Products))
	c.view.RenderForm(c.formView(c.state.Values))
}

// SubmitForm create yoki update (rejimga qarab)
func (c *ListController) SubmitForm(ctx context.Context, in FormInput) error {
	draft, err := ParseDraft(in)
	if err != nil {
		c.notify(MsgInvalidForm, entity.NotificationError)
		c.renderForm(in)
		return err
	}

	c.mu.Lock()
	var editingID *int64
	if id := c.state.Form.EditingID; id != nil {
		v := *id
		editingID = &v
	}
	c.mu.Unlock()

	if editingID != nil {
		_, err = c.repo.Update(ctx, *editingID, draft)
	} else {
		_, err = c.repo.Create(ctx, draft)
	}
	if err != nil {
		c.notify(submitMessage(err), entity.NotificationError)
		c.renderForm(in)
		return err
	}

	if editingID != nil {
		c.notify(MsgUpdated, entity.NotificationSuccess)
	} else {
		c.notify(MsgCreated, entity.NotificationSuccess)
	}
	c.ResetForm()
	return c.LoadProducts(ctx)
}

// EditProduct xotiradagi ro'yxatdan formani to'ldirish; topilmasa hech narsa qilmaydi
func (c *ListController) EditProduct(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	product, ok := entity.FindProduct(c.state.Products, id)
	if !ok {
		return
	}
	c.state.Form.EditingID = &id
	c.state.Values = FormInput{
		Name:        product.Name,
		Description: product.Description,
		Price:       FormatPriceInput(product.Price),
	}
	c.view.RenderForm(c.formView(c.state.Values))
	c.view.ScrollToForm()
}

// DeleteProduct tasdiqdan keyin o'chirish
func (c *ListController) DeleteProduct(ctx context.Context, id int64) error {
	if !c.confirm(ctx, DeletePrompt) {
		return nil
	}

	if _, err := c.repo.Delete(ctx, id); err != nil {
		c.opts.logger.Error("error deleting product", zap.Int64("id", id), zap.Error(err))
		c.notify(MsgDeleteFailed, entity.NotificationError)
		return err
	}

	c.notify(MsgDeleted, entity.NotificationSuccess)
	return c.LoadProducts(ctx)
}

// ResetForm formani tozalash va create rejimiga qaytish
func (c *ListController) ResetForm() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Form.EditingID = nil
	c.state.Values = FormInput{}
	c.view.RenderForm(c.formView(c.state.Values))
}

func (c *ListController) renderForm(in FormInput) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Values = in
	c.view.RenderForm(c.formView(in))
}

// formView lock ostida chaqiriladi
func (c *ListController) formView(in FormInput) FormView {
	v := FormView{
		Title:       TitleCreate,
		SubmitLabel: SubmitCreate,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
	}
	if id := c.state.Form.EditingID; id != nil {
		v.Title = TitleEdit
		v.SubmitLabel = SubmitUpdate
		v.Editing = true
		v.EditingID = *id
	}
	return v
}

func (c *ListController) setLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = loading
	c.view.SetLoading(loading)
}

func (c *ListController) notify(msg string, kind entity.NotificationKind) {
	c.view.Notify(entity.Notification{Message: msg, Kind: kind, CreatedAt: c.opts.now()})
}

func cardsView(products []entity.Product) CardsView {
	v := CardsView{Cards: make([]CardView, 0, len(products))}
	for _, p := range products {
		v.Cards = append(v.Cards, CardView{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       FormatPrice(p.Price),
		})
	}
	if len(v.Cards) == 0 {
		v.EmptyMessage = MsgEmptyList
	}
	return v
}
