package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
)

// ErrExcelNotConfigured import/eksport uchun parser yoki writer berilmagan
var ErrExcelNotConfigured = errors.New("excel import/export is not configured")

// DashboardState dashboard holati
type DashboardState struct {
	Products   []entity.Product
	Sort       entity.SortState
	Pagination entity.PaginationState
	Form       entity.FormEditState
	Values     FormInput
	ModalOpen  bool
	Submitting bool
	Loading    bool
}

// ImportResult import natijasi
type ImportResult struct {
	Imported int
	Skipped  int
}

// DashboardController widgetlar, saralanadigan/sahifalangan jadval va modal forma
type DashboardController struct {
	repo    repository.ProductRepository
	view    DashboardView
	confirm ConfirmFunc
	opts    options

	submitting atomic.Bool

	mu    sync.Mutex
	state DashboardState
}

// NewDashboardController yangi DashboardController yaratish
func NewDashboardController(repo repository.ProductRepository, view DashboardView, confirm ConfirmFunc, opts ...Option) *DashboardController {
	if confirm == nil {
		confirm = ContextConfirm
	}
	o := buildOptions(opts)
	return &DashboardController{
		repo:    repo,
		view:    view,
		confirm: confirm,
		opts:    o,
		state: DashboardState{
			Products:   []entity.Product{},
			Sort:       entity.SortState{Direction: entity.SortAsc},
			Pagination: entity.PaginationState{CurrentPage: 1, ItemsPerPage: o.itemsPerPage},
		},
	}
}

// State holat nusxasi
func (c *DashboardController) State() DashboardState {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Products = slices.Clone(c.state.Products)
	if id := c.state.Form.EditingID; id != nil {
		v := *id
		s.Form.EditingID = &v
	}
	s.Submitting = c.submitting.Load()
	return s
}

// LoadProducts ro'yxatni qayta yuklash; sort va sahifa saqlanadi, sahifa chegaraga tortiladi
func (c *DashboardController) LoadProducts(ctx context.Context) error {
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
	total := TotalPages(len(products), c.state.Pagination.ItemsPerPage)
	if c.state.Pagination.CurrentPage > total {
		c.state.Pagination.CurrentPage = max(1, total)
	}
	c.renderWidgets()
	c.renderTable()
	c.renderPagination()
	return nil
}

// Render butun dashboardni qayta chizish
func (c *DashboardController) Render() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.renderWidgets()
	c.renderTable()
	c.renderPagination()
	c.renderModal()
}

// SortTable ustun bo'yicha saralash; shu ustun qayta tanlansa yo'nalish almashadi
func (c *DashboardController) SortTable(column entity.SortColumn) error {
	if _, err := entity.ParseSortColumn(string(column)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Sort.Column == column {
		if c.state.Sort.Direction == entity.SortAsc {
			c.state.Sort.Direction = entity.SortDesc
		} else {
			c.state.Sort.Direction = entity.SortAsc
		}
	} else {
		c.state.Sort = entity.SortState{Column: column, Direction: entity.SortAsc}
	}
	c.state.Pagination.CurrentPage = 1
	c.renderTable()
	c.renderPagination()
	return nil
}

// GoToPage sahifaga o'tish; chegaradan tashqaridagi raqam e'tiborsiz qoldiriladi
func (c *DashboardController) GoToPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.goToPage(page)
}

// PreviousPage oldingi sahifa
func (c *DashboardController) PreviousPage() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Pagination.CurrentPage > 1 {
		c.goToPage(c.state.Pagination.CurrentPage - 1)
	}
}

// NextPage keyingi sahifa
func (c *DashboardController) NextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Pagination.CurrentPage < c.totalPages() {
		c.goToPage(c.state.Pagination.CurrentPage + 1)
	}
}

// ChangeItemsPerPage sahifa hajmini o'zgartirish va 1-sahifaga qaytish
func (c *DashboardController) ChangeItemsPerPage(n int) {
	if n <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Pagination.ItemsPerPage = n
	c.state.Pagination.CurrentPage = 1
	c.renderTable()
	c.renderPagination()
}

// OpenAddModal bo'sh modalni "create" rejimida ochish
func (c *DashboardController) OpenAddModal() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Form.EditingID = nil
	c.state.Values = FormInput{}
	c.state.ModalOpen = true
	c.renderModal()
}

// CloseModal modalni yopish va formani tozalash
func (c *DashboardController) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeModal()
}

// HandleModalClick faqat backdrop ustidagi bosish modalni yopadi
func (c *DashboardController) HandleModalClick(onBackdrop bool) {
	if onBackdrop {
		c.CloseModal()
	}
}

// EditProduct xotiradagi mahsulot bilan modalni ochish; topilmasa hech narsa qilmaydi
func (c *DashboardController) EditProduct(id int64) {
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
	c.state.ModalOpen = true
	c.renderModal()
}

// SubmitForm modal formani yuborish; yuborish davom etayotganda ikkinchi chaqiruv no-op
func (c *DashboardController) SubmitForm(ctx context.Context, in FormInput) error {
	if !c.submitting.CompareAndSwap(false, true) {
		c.opts.logger.Debug("submit ignored, another submit in flight")
		return nil
	}
	defer c.submitting.Store(false)

	c.mu.Lock()
	c.state.Values = in
	var editingID *int64
	if id := c.state.Form.EditingID; id != nil {
		v := *id
		editingID = &v
	}
	c.mu.Unlock()

	draft, err := ParseDraft(in)
	if err != nil {
		c.notify(MsgInvalidForm, entity.NotificationError)
		c.Render()
		return err
	}

	if editingID != nil {
		_, err = c.repo.Update(ctx, *editingID, draft)
	} else {
		_, err = c.repo.Create(ctx, draft)
	}
	if err != nil {
		c.notify(submitMessage(err), entity.NotificationError)
		c.Render()
		return err
	}

	if editingID != nil {
		c.notify(MsgUpdated, entity.NotificationSuccess)
	} else {
		c.notify(MsgCreated, entity.NotificationSuccess)
	}
	c.CloseModal()
	return c.LoadProducts(ctx)
}

// DeleteProduct tasdiqdan keyin o'chirish
func (c *DashboardController) DeleteProduct(ctx context.Context, id int64) error {
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

// ImportProducts xlsx dan draftlarni o'qib ketma-ket yaratish, keyin qayta yuklash
func (c *DashboardController) ImportProducts(ctx context.Context, data []byte) (ImportResult, error) {
	var res ImportResult
	if c.opts.parser == nil {
		c.notify(MsgImportFailed, entity.NotificationError)
		return res, ErrExcelNotConfigured
	}

	drafts, err := c.opts.parser.ParseDraftsFromBytes(ctx, data)
	if err != nil {
		c.opts.logger.Error("error parsing import workbook", zap.Error(err))
		c.notify(MsgImportFailed, entity.NotificationError)
		return res, fmt.Errorf("parse import: %w", err)
	}

	for i, d := range drafts {
		draft, err := ValidateDraft(d)
		if err != nil {
			res.Skipped++
			continue
		}
		if _, err := c.repo.Create(ctx, draft); err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			c.opts.logger.Warn("import row rejected", zap.Int("row", i+1), zap.Error(err))
			res.Skipped++
			continue
		}
		res.Imported++
	}

	kind := entity.NotificationSuccess
	if res.Imported == 0 {
		kind = entity.NotificationError
	}
	c.notify(fmt.Sprintf(importSummaryText, res.Imported, res.Skipped), kind)

	return res, c.LoadProducts(ctx)
}

// ExportProducts to'liq ro'yxatni joriy saralash tartibida xlsx ga yozish
func (c *DashboardController) ExportProducts(ctx context.Context) ([]byte, error) {
	if c.opts.writer == nil {
		return nil, ErrExcelNotConfigured
	}

	c.mu.Lock()
	sorted := SortProducts(c.state.Products, c.state.Sort)
	c.mu.Unlock()

	data, err := c.opts.writer.WriteProducts(ctx, sorted)
	if err != nil {
		return nil, fmt.Errorf("export products: %w", err)
	}
	return data, nil
}

// quyidagi metodlar lock ostida chaqiriladi

func (c *DashboardController) totalPages() int {
	return TotalPages(len(c.state.Products), c.state.Pagination.ItemsPerPage)
}

func (c *DashboardController) goToPage(page int) {
	if page < 1 || page > c.totalPages() {
		return
	}
	c.state.Pagination.CurrentPage = page
	c.renderTable()
	c.renderPagination()
}

func (c *DashboardController) closeModal() {
	c.state.ModalOpen = false
	c.state.Form.EditingID = nil
	c.state.Values = FormInput{}
	c.renderModal()
}

func (c *DashboardController) renderWidgets() {
	c.view.RenderWidgets(widgetsView(ComputeWidgets(c.state.Products)))
}

func (c *DashboardController) renderTable() {
	page := PaginateProducts(SortProducts(c.state.Products, c.state.Sort), c.state.Pagination)

	v := TableView{Columns: make([]ColumnView, 0, len(entity.SortColumns))}
	for _, col := range entity.SortColumns {
		cv := ColumnView{Column: col, Label: ColumnLabel(col)}
		if col == c.state.Sort.Column {
			cv.Active = true
			cv.Indicator = IndicatorAsc
			if c.state.Sort.Direction == entity.SortDesc {
				cv.Indicator = IndicatorDesc
			}
		}
		v.Columns = append(v.Columns, cv)
	}

	v.Rows = make([]RowView, 0, len(page))
	for _, p := range page {
		v.Rows = append(v.Rows, RowView{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       FormatPrice(p.Price),
		})
	}
	if len(v.Rows) == 0 {
		v.EmptyMessage = MsgEmptyList
	}
	c.view.RenderTable(v)
}

func (c *DashboardController) renderPagination() {
	count := len(c.state.Products)
	cur := c.state.Pagination.CurrentPage
	per := c.state.Pagination.ItemsPerPage
	total := c.totalPages()

	start := 0
	if count > 0 {
		start = (cur-1)*per + 1
	}
	end := min(cur*per, count)

	c.view.RenderPagination(PaginationView{
		Info:         "Showing " + strconv.Itoa(start) + "-" + strconv.Itoa(end) + " of " + strconv.Itoa(count),
		PrevDisabled: cur == 1,
		NextDisabled: cur >= total || total == 0,
		Pages:        PageWindow(cur, total),
		CurrentPage:  cur,
		TotalPages:   total,
		ItemsPerPage: per,
	})
}

func (c *DashboardController) renderModal() {
	v := ModalView{
		Open:        c.state.ModalOpen,
		Title:       ModalTitleAdd,
		Name:        c.state.Values.Name,
		Description: c.state.Values.Description,
		Price:       c.state.Values.Price,
	}
	if id := c.state.Form.EditingID; id != nil {
		v.Title = ModalTitleEdit
		v.Editing = true
		v.EditingID = *id
	}
	c.view.RenderModal(v)
}

func (c *DashboardController) setLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = loading
	c.view.SetLoading(loading)
}

func (c *DashboardController) notify(msg string, kind entity.NotificationKind) {
	c.view.Notify(entity.Notification{Message: msg, Kind: kind, CreatedAt: c.opts.now()})
}

func widgetsView(w Widgets) WidgetsView {
	if w.Count == 0 {
		return WidgetsView{
			TotalProducts:      zeroCountWidget,
			MostExpensive:      zeroPriceWidget,
			MostExpensiveName:  WidgetMostName,
			LeastExpensive:     zeroPriceWidget,
			LeastExpensiveName: WidgetLeastName,
			TotalValue:         zeroPriceWidget,
		}
	}
	return WidgetsView{
		TotalProducts:      strconv.Itoa(w.Count),
		MostExpensive:      FormatPrice(w.MostExpensive.Price),
		MostExpensiveName:  w.MostExpensive.Name,
		LeastExpensive:     FormatPrice(w.LeastExpensive.Price),
		LeastExpensiveName: w.LeastExpensive.Name,
		TotalValue:         FormatPrice(w.Total),
	}
}
