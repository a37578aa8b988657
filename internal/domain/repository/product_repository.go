package repository

import (
	"context"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
)

// ProductRepository /api/product REST servisi bilan ishlash uchun interface.
// Har bir chaqiruv bitta tarmoq urinishi: retry ham, timeout ham yo'q.
type ProductRepository interface {
	// ListAll barcha mahsulotlarni olish
	ListAll(ctx context.Context) ([]entity.Product, error)

	// GetByID ID bo'yicha mahsulotni olish
	GetByID(ctx context.Context, id int64) (*entity.Product, error)

	// Create yangi mahsulot yaratish (ID server tomonidan beriladi)
	Create(ctx context.Context, draft entity.Draft) (*entity.Product, error)

	// Update mavjud mahsulotni yangilash
	Update(ctx context.Context, id int64, draft entity.Draft) (*entity.Product, error)

	// Delete mahsulotni o'chirish
	Delete(ctx context.Context, id int64) (bool, error)
}
