package api

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
)

// Natija yorliqlari
const (
	outcomeOK         = "ok"
	outcomeValidation = "validation_error"
	outcomeTransport  = "transport_error"
)

// Instrumented har bir repository chaqiruvini Prometheus ga yozadi
type Instrumented struct {
	next     repository.ProductRepository
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ repository.ProductRepository = (*Instrumented)(nil)

// NewInstrumented repository ni metrikalar bilan o'rash
func NewInstrumented(next repository.ProductRepository, reg prometheus.Registerer) *Instrumented {
	m := &Instrumented{
		next: next,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of product API calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalog",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of product API calls in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

// ListAll barcha mahsulotlarni olish
func (m *Instrumented) ListAll(ctx context.Context) ([]entity.Product, error) {
	start := time.Now()
	products, err := m.next.ListAll(ctx)
	m.observe("list", start, err)
	return products, err
}

// GetByID ID bo'yicha mahsulotni olish
func (m *Instrumented) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	start := time.Now()
	product, err := m.next.GetByID(ctx, id)
	m.observe("get", start, err)
	return product, err
}

// Create yangi mahsulot yaratish
func (m *Instrumented) Create(ctx context.Context, draft entity.Draft) (*entity.Product, error) {
	start := time.Now()
	product, err := m.next.Create(ctx, draft)
	m.observe("create", start, err)
	return product, err
}

// Update mavjud mahsulotni yangilash
func (m *Instrumented) Update(ctx context.Context, id int64, draft entity.Draft) (*entity.Product, error) {
	start := time.Now()
	product, err := m.next.Update(ctx, id, draft)
	m.observe("update", start, err)
	return product, err
}

// Delete mahsulotni o'chirish
func (m *Instrumented) Delete(ctx context.Context, id int64) (bool, error) {
	start := time.Now()
	ok, err := m.next.Delete(ctx, id)
	m.observe("delete", start, err)
	return ok, err
}

func (m *Instrumented) observe(op string, start time.Time, err error) {
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	m.requests.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return outcomeOK
	}
	var ve *repository.ValidationError
	if errors.As(err, &ve) {
		return outcomeValidation
	}
	return outcomeTransport
}
