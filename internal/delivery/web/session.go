package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/product-catalog-client/internal/usecase"
)

const sessionCookie = "catalog_session"

// session bitta brauzerning holati
type session struct {
	id       string
	lastSeen time.Time

	list     *usecase.ListController
	listPage *listPage
	dash     *usecase.DashboardController
	dashPage *dashboardPage

	mu         sync.Mutex
	listLoaded bool
	dashLoaded bool
	// POST dan keyin redirect sahifasi controller holatini qayta yuklamasdan ko'rsatadi
	listFresh bool
	dashFresh bool
}

// ensureList birinchi murojaatda mahsulotlarni yuklash
func (s *session) ensureList(ctx context.Context) {
	s.mu.Lock()
	loaded := s.listLoaded
	s.listLoaded = true
	s.mu.Unlock()

	if !loaded {
		s.reloadList(ctx)
	}
}

func (s *session) ensureDashboard(ctx context.Context) {
	s.mu.Lock()
	loaded := s.dashLoaded
	s.dashLoaded = true
	s.mu.Unlock()

	if !loaded {
		s.reloadDashboard(ctx)
	}
}

// actOnList kartalar sahifasidagi POST: redirect joriy holatni ko'rsatadi, dashboard eskiradi
func (s *session) actOnList(ctx context.Context) {
	s.ensureList(ctx)
	s.mu.Lock()
	s.listFresh = true
	s.dashFresh = false
	s.mu.Unlock()
}

func (s *session) actOnDashboard(ctx context.Context) {
	s.ensureDashboard(ctx)
	s.mu.Lock()
	s.dashFresh = true
	s.listFresh = false
	s.mu.Unlock()
}

// viewList GET /: POST-redirect-GET bo'lmasa har kirishda qayta yuklash
func (s *session) viewList(ctx context.Context) {
	s.mu.Lock()
	fresh := s.listFresh
	s.listFresh = false
	s.listLoaded = true
	s.mu.Unlock()

	if !fresh {
		s.reloadList(ctx)
	}
}

func (s *session) viewDashboard(ctx context.Context) {
	s.mu.Lock()
	fresh := s.dashFresh
	s.dashFresh = false
	s.dashLoaded = true
	s.mu.Unlock()

	if !fresh {
		s.reloadDashboard(ctx)
	}
}

func (s *session) reloadList(ctx context.Context) {
	_ = s.list.LoadProducts(ctx)
	s.list.Render()
}

func (s *session) reloadDashboard(ctx context.Context) {
	_ = s.dash.LoadProducts(ctx)
	s.dash.Render()
}

// sessionStore cookie bo'yicha sessiyalar
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session // key: cookie qiymati
	idle     time.Duration
	now      func() time.Time
	create   func() *session
}

func newSessionStore(idle time.Duration, now func() time.Time, create func() *session) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		idle:     idle,
		now:      now,
		create:   create,
	}
}

// get cookie dagi sessiyani olish. Noma'lum, lekin to'g'ri uuid cookie qabul qilinadi;
// cookie siz GET uchun sessiya saqlanmaydi, faqat cookie qo'yiladi
func (st *sessionStore) get(w http.ResponseWriter, r *http.Request) *session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.evict(now)

	id := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		if s, ok := st.sessions[c.Value]; ok {
			s.lastSeen = now
			return s
		}
		if _, err := uuid.Parse(c.Value); err == nil {
			id = c.Value
		}
	}

	s := st.create()
	s.lastSeen = now
	if id != "" {
		s.id = id
		st.sessions[id] = s
		return s
	}

	s.id = uuid.NewString()
	if r.Method != http.MethodGet {
		st.sessions[s.id] = s
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// evict uzoq vaqt ishlatilmagan sessiyalarni o'chirish (lock ostida)
func (st *sessionStore) evict(now time.Time) {
	if st.idle <= 0 {
		return
	}
	for id, s := range st.sessions {
		if now.Sub(s.lastSeen) > st.idle {
			delete(st.sessions, id)
		}
	}
}

func (st *sessionStore) count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
