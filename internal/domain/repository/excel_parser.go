package repository

import (
	"context"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
)

// ExcelParser Excel fayllarni parse qilish uchun interface
type ExcelParser interface {
	// ParseDrafts Excel fayldan draftlarni o'qish
	ParseDrafts(ctx context.Context, filePath string) ([]entity.Draft, error)

	// ParseDraftsFromBytes byte array dan parse qilish
	ParseDraftsFromBytes(ctx context.Context, data []byte) ([]entity.Draft, error)
}

// ExcelWriter mahsulotlarni Excel ga yozish uchun interface
type ExcelWriter interface {
	// WriteProducts mahsulotlarni xlsx baytlariga aylantirish
	WriteProducts(ctx context.Context, products []entity.Product) ([]byte, error)
}
