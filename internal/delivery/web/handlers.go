package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// listSession kartalar sahifasi amallari uchun sessiya; POST lar redirect ni yangi deb belgilaydi
func (s *Server) listSession(w http.ResponseWriter, r *http.Request) *session {
	sess := s.store.get(w, r)
	if r.Method == http.MethodGet {
		sess.ensureList(r.Context())
	} else {
		sess.actOnList(r.Context())
	}
	return sess
}

func (s *Server) dashSession(w http.ResponseWriter, r *http.Request) *session {
	sess := s.store.get(w, r)
	if r.Method == http.MethodGet {
		sess.ensureDashboard(r.Context())
	} else {
		sess.actOnDashboard(r.Context())
	}
	return sess
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func formInput(r *http.Request) usecase.FormInput {
	return usecase.FormInput{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Price:       r.PostFormValue("price"),
	}
}

func confirmed(r *http.Request) bool {
	return r.PostFormValue("confirm") == "yes"
}

// Kartalar sahifasi

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.store.get(w, r)
	sess.viewList(r.Context())
	s.render(w, pageIndex, pageData{
		Title:  "Product Catalog",
		Nav:    "list",
		Toasts: toastViews(sess.listPage.take(), s.cfg.NotificationTTL, s.cfg.Now()),
		List:   sess.listPage.snapshot(),
	})
}

func (s *Server) handleListSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.listSession(w, r)
	if err := sess.list.SubmitForm(r.Context(), formInput(r)); err != nil {
		s.logger.Debug("list submit rejected", zap.Error(err))
		redirect(w, r, "/#productForm")
		return
	}
	redirect(w, r, "/")
}

func (s *Server) handleListReset(w http.ResponseWriter, r *http.Request) {
	sess := s.listSession(w, r)
	sess.list.ResetForm()
	redirect(w, r, "/")
}

func (s *Server) handleListEdit(w http.ResponseWriter, r *http.Request) {
	sess := s.listSession(w, r)
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	sess.list.EditProduct(id)
	if sess.listPage.takeScroll() {
		redirect(w, r, "/#productForm")
		return
	}
	redirect(w, r, "/")
}

func (s *Server) handleListDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	sess := s.listSession(w, r)
	s.renderConfirm(w, r, sess.list.State().Products, "/products/", "/")
}

func (s *Server) handleListDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.listSession(w, r)
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	ctx := usecase.WithConfirmation(r.Context(), confirmed(r))
	if err := sess.list.DeleteProduct(ctx, id); err != nil {
		s.logger.Debug("list delete failed", zap.Int64("id", id), zap.Error(err))
	}
	redirect(w, r, "/")
}

func (s *Server) handleListReload(w http.ResponseWriter, r *http.Request) {
	sess := s.store.get(w, r)
	sess.actOnList(r.Context())
	sess.reloadList(r.Context())
	redirect(w, r, "/")
}

// renderConfirm o'chirishni tasdiqlash sahifasi; mahsulot topilmasa orqaga qaytadi
func (s *Server) renderConfirm(w http.ResponseWriter, r *http.Request, products []entity.Product, prefix, back string) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	product, found := entity.FindProduct(products, id)
	if !found {
		redirect(w, r, back)
		return
	}

	s.render(w, pageConfirm, pageData{
		Title: "Delete Product",
		Confirm: confirmData{
			Prompt:      usecase.DeletePrompt,
			ProductName: product.Name,
			Action:      prefix + strconv.FormatInt(id, 10) + "/delete",
			Back:        back,
		},
	})
}

// Dashboard

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := s.store.get(w, r)
	sess.viewDashboard(r.Context())
	s.render(w, pageDashboard, pageData{
		Title:     "Product Dashboard",
		Nav:       "dashboard",
		Toasts:    toastViews(sess.dashPage.take(), s.cfg.NotificationTTL, s.cfg.Now()),
		Dashboard: sess.dashPage.snapshot(),
	})
}

func (s *Server) handleDashboardReload(w http.ResponseWriter, r *http.Request) {
	sess := s.store.get(w, r)
	sess.actOnDashboard(r.Context())
	sess.reloadDashboard(r.Context())
	redirect(w, r, "/dashboard")
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	sess := s.dashSession(w, r)
	column, err := entity.ParseSortColumn(r.PathValue("column"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = sess.dash.SortTable(column)
	redirect(w, r, "/dashboard")
}

func (s *Server) handleGoToPage(w http.ResponseWriter, r *http.Request) {
	sess := s.dashSession(w, r)
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		http.Error(w, "invalid page number", http.StatusBadRequest)
		return
	}
	sess.dash.GoToPage(n)
	redirect(w, r, "/dashboard")
}

func (s *Server) handlePrevPage(w http.ResponseWriter, r *http.Request) {
	s.dashSession(w, r).dash.PreviousPage()
	redirect(w, r, "/dashboard")
}

func (s *Server) handleNextPage(w http.ResponseWriter, r *http.Request) {
	s.dashSession(w, r).dash.NextPage()
	redirect(w, r, "/dashboard")
}

func (s *Server) handlePerPage(w http.ResponseWriter, r *http.Request) {
	sess := s.dashSession(w, r)
	n, err := strconv.Atoi(r.PostFormValue("itemsPerPage"))
	if err != nil {
		http.Error(w, "invalid items per page", http.StatusBadRequest)
		return
	}
	sess.dash.ChangeItemsPerPage(n)
	redirect(w, r, "/dashboard")
}

func (s *Server) handleModalOpen(w http.ResponseWriter, r *http.Request) {
	s.dashSession(w, r).dash.OpenAddModal()
	redirect(w, r, "/dashboard")
}

func (s *Server) handleModalClose(w http.ResponseWriter, r *http.Request) {
	s.dashSession(w, r).dash.CloseModal()
	redirect(w, r, "/dashboard")
}

func (s *Server) handleModalBackdrop(w http.ResponseWriter, r *http.Request) {
	s.dashSession(w, r).dash.HandleModalClick(true)
	redirect(w, r, "/dashboard")
}

func (s *Server) handleDashboardSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.dashSession(w, r)
	if err := sess.dash.SubmitForm(r.Context(), formInput(r)); err != nil {
		s.logger.Debug("dashboard submit rejected", zap.Error(err))
	}
	redirect(w, r, "/dashboard")
}

func (s *Server) handleDashboardEdit(w http.ResponseWriter, r *http.Request) {
	sess := s.dashSession(w, r)
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	sess.dash.EditProduct(id)
	redirect(w, r, "/dashboard")
}

func (s *Server) handleDashboardDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	sess := s.dashSession(w, r)
	s.renderConfirm(w, r, sess.dash.State().Products, "/dashboard/products/", "/dashboard")
}

func (s *Server) handleDashboardDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.dashSession(w, r)
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	ctx := usecase.WithConfirmation(r.Context(), confirmed(r))
	if err := sess.dash.DeleteProduct(ctx, id); err != nil {
		s.logger.Debug("dashboard delete failed", zap.Int64("id", id), zap.Error(err))
	}
	redirect(w, r, "/dashboard")
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	sess := s.dashSession(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.logger.Warn("import upload rejected", zap.Error(err))
		sess.dashPage.Notify(entity.Notification{Message: usecase.MsgImportFailed, Kind: entity.NotificationError, CreatedAt: s.cfg.Now()})
		redirect(w, r, "/dashboard")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		sess.dashPage.Notify(entity.Notification{Message: usecase.MsgImportFailed, Kind: entity.NotificationError, CreatedAt: s.cfg.Now()})
		redirect(w, r, "/dashboard")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Warn("import read failed", zap.Error(err))
		sess.dashPage.Notify(entity.Notification{Message: usecase.MsgImportFailed, Kind: entity.NotificationError, CreatedAt: s.cfg.Now()})
		redirect(w, r, "/dashboard")
		return
	}

	res, err := sess.dash.ImportProducts(r.Context(), data)
	if err != nil {
		s.logger.Warn("import failed", zap.Error(err))
	} else {
		s.logger.Info("products imported", zap.Int("imported", res.Imported), zap.Int("skipped", res.Skipped))
	}
	redirect(w, r, "/dashboard")
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := s.dashSession(w, r)
	data, err := sess.dash.ExportProducts(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrExcelNotConfigured) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Error("export failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="products.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
