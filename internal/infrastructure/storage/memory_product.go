package storage

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
)

// minPrice backend DTO dagi DecimalMin("0.01")
const minPrice = 0.01

type memoryProductRepository struct {
	mu       sync.RWMutex
	nextID   int64
	products map[int64]entity.Product // key: product ID
}

var _ repository.ProductRepository = (*memoryProductRepository)(nil)

// NewMemoryProductRepository in-memory product repository yaratish (demo rejim va testlar uchun)
func NewMemoryProductRepository(seed ...entity.Draft) repository.ProductRepository {
	m := &memoryProductRepository{
		nextID:   1,
		products: make(map[int64]entity.Product),
	}
	for _, d := range seed {
		m.insert(d)
	}
	return m
}

// DemoProducts demo rejim uchun boshlang'ich mahsulotlar
func DemoProducts() []entity.Draft {
	return []entity.Draft{
		{Name: "Vintage Desk Lamp", Description: "A sturdy brass lamp with adjustable arm and warm Edison bulb.", Price: 89.50},
		{Name: "Noise-Canceling Headphones", Description: "Over-ear headphones with adaptive ANC and 30-hour battery life.", Price: 249.00},
		{Name: "Ergonomic Office Chair", Description: "Mesh back, lumbar support, and adjustable height for long work sessions.", Price: 319.00},
		{Name: "Mechanical Keyboard", Description: "Hot-swappable switches with PBT keycaps.", Price: 129.99},
		{Name: "USB-C Hub", Description: "Seven ports including HDMI and gigabit ethernet.", Price: 45.00},
		{Name: "Standing Desk", Description: "Electric height adjustment with memory presets.", Price: 499.00},
	}
}

// ListAll barcha mahsulotlarni olish (ID bo'yicha tartiblangan)
func (m *memoryProductRepository) ListAll(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]entity.Product, 0, len(m.products))
	for _, product := range m.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	return products, nil
}

// GetByID ID bo'yicha mahsulotni olish
func (m *memoryProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	product, exists := m.products[id]
	if !exists {
		return nil, notFound("get", "Failed to fetch product", id)
	}
	return &product, nil
}

// Create yangi mahsulot yaratish
func (m *memoryProductRepository) Create(ctx context.Context, draft entity.Draft) (*entity.Product, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	product := m.insert(draft)
	return &product, nil
}

// Update mavjud mahsulotni yangilash
func (m *memoryProductRepository) Update(ctx context.Context, id int64, draft entity.Draft) (*entity.Product, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.products[id]
	if !exists {
		return nil, notFound("update", "Failed to update product", id)
	}

	existing.Name = draft.Name
	existing.Description = draft.Description
	existing.Price = draft.Price
	m.products[id] = existing
	return &existing, nil
}

// Delete mahsulotni o'chirish
func (m *memoryProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.products[id]; !exists {
		return false, notFound("delete", "Failed to delete product", id)
	}
	delete(m.products, id)
	return true, nil
}

// insert lock ostida chaqiriladi
func (m *memoryProductRepository) insert(draft entity.Draft) entity.Product {
	product := entity.Product{
		ID:          m.nextID,
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
	}
	m.products[product.ID] = product
	m.nextID++
	return product
}

// validateDraft backenddagi validatsiya qoidalari
func validateDraft(d entity.Draft) error {
	var details []string
	if strings.TrimSpace(d.Name) == "" {
		details = append(details, "name: Product name is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		details = append(details, "description: Product description is required")
	}
	if d.Price < minPrice {
		details = append(details, "price: Product price must be greater than 0")
	}
	if len(details) == 0 {
		return nil
	}
	return &repository.ValidationError{
		Status:  http.StatusBadRequest,
		Message: "Invalid input data",
		Details: details,
	}
}

func notFound(op, message string, id int64) error {
	return &repository.TransportError{
		Op:      op,
		Status:  http.StatusNotFound,
		Message: message,
		Err:     fmt.Errorf("product not found with id: %d", id),
	}
}
