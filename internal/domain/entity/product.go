package entity

// Product mahsulot entity (ID server tomonidan beriladi)
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Draft ID siz mahsulot (create/update so'rovlari uchun)
type Draft struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Draft mahsulotdan draft olish
func (p Product) Draft() Draft {
	return Draft{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	}
}

// FindProduct ro'yxatdan ID bo'yicha mahsulotni topish
func FindProduct(products []Product, id int64) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
