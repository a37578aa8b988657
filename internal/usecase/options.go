package usecase

import (
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/product-catalog-client/internal/domain/repository"
)

type options struct {
	logger       *zap.Logger
	now          func() time.Time
	itemsPerPage int
	parser       repository.ExcelParser
	writer       repository.ExcelWriter
}

// Option controller sozlamasi
type Option func(*options)

// WithLogger diagnostika uchun logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock bildirishnoma vaqti uchun soat (testlar uchun)
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithItemsPerPage dashboard sahifa hajmi
func WithItemsPerPage(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.itemsPerPage = n
		}
	}
}

// WithExcel import/eksport uchun parser va writer
func WithExcel(p repository.ExcelParser, w repository.ExcelWriter) Option {
	return func(o *options) {
		o.parser = p
		o.writer = w
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:       zap.NewNop(),
		now:          time.Now,
		itemsPerPage: defaultPerPage,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
