package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
)

const (
	pageIndex     = "index.html"
	pageDashboard = "dashboard.html"
	pageConfirm   = "confirm.html"
)

// slide-out animatsiyasi davomiyligi (CSS dagi bilan bir xil)
const slideOutDuration = 300 * time.Millisecond

type toastView struct {
	Message string
	Class   string
	Delay   string
}

type confirmData struct {
	Prompt      string
	ProductName string
	Action      string
	Back        string
}

type pageData struct {
	Title     string
	Nav       string
	Toasts    []toastView
	List      listData
	Dashboard dashboardData
	Confirm   confirmData
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{pageIndex, pageDashboard, pageConfirm} {
		t, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// toastViews bildirishnomalarni qolgan vaqti bilan ko'rinishga aylantirish
func toastViews(ns []entity.Notification, ttl time.Duration, now time.Time) []toastView {
	out := make([]toastView, 0, len(ns))
	for _, n := range ns {
		left := max(ttl-now.Sub(n.CreatedAt)-slideOutDuration, 0)
		out = append(out, toastView{
			Message: n.Message,
			Class:   "notification-" + string(n.Kind),
			Delay:   fmt.Sprintf("%.2fs", left.Seconds()),
		})
	}
	return out
}

func (s *Server) render(w http.ResponseWriter, page string, data pageData) {
	t, ok := s.pages[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("template execution failed", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
