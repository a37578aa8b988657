package usecase

import (
	"cmp"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
)

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// decimalPrice faqat o'nlik yozuv: "0x1p4", "1_000", "Inf" o'tmaydi
var decimalPrice = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// FormatPrice narxni USD formatda chiqarish ("$1,234.50", "-$5.00"); sentlar yarmidan yuqoriga yaxlitlanadi
func FormatPrice(price float64) string {
	sign := ""
	if price < 0 {
		sign = "-"
		price = -price
	}
	cents := math.Round(price * 100)
	return sign + pricePrinter.Sprintf("$%.2f", cents/100)
}

// FormatPriceInput forma maydoni uchun narx ("12.5", "$" siz)
func FormatPriceInput(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// FormInput formadan kelgan xom qiymatlar
type FormInput struct {
	Name        string
	Description string
	Price       string
}

// ParseDraft forma qiymatlarini tekshirish va draftga aylantirish
func ParseDraft(in FormInput) (entity.Draft, error) {
	var invalid []string

	name := strings.TrimSpace(in.Name)
	if name == "" {
		invalid = append(invalid, "name")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		invalid = append(invalid, "description")
	}
	rawPrice := strings.TrimSpace(in.Price)
	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil || !decimalPrice.MatchString(rawPrice) || !validPrice(price) {
		invalid = append(invalid, "price")
	}

	if len(invalid) > 0 {
		return entity.Draft{}, &LocalValidationError{Fields: invalid}
	}
	return entity.Draft{Name: name, Description: description, Price: price}, nil
}

// ValidateDraft tayyor draftni forma qoidalari bilan tekshirish (import uchun)
func ValidateDraft(d entity.Draft) (entity.Draft, error) {
	return ParseDraft(FormInput{
		Name:        d.Name,
		Description: d.Description,
		Price:       FormatPriceInput(d.Price),
	})
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}

// SortProducts nusxani saralash; ustun berilmasa tartib o'zgarmaydi
func SortProducts(products []entity.Product, s entity.SortState) []entity.Product {
	out := slices.Clone(products)
	if s.Column == entity.SortNone {
		return out
	}

	compare := columnCompare(s.Column)
	if compare == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b entity.Product) int {
		if s.Direction == entity.SortDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

func columnCompare(c entity.SortColumn) func(a, b entity.Product) int {
	switch c {
	case entity.SortID:
		return func(a, b entity.Product) int { return cmp.Compare(float64(a.ID), float64(b.ID)) }
	case entity.SortPrice:
		return func(a, b entity.Product) int { return cmp.Compare(a.Price, b.Price) }
	case entity.SortName:
		return func(a, b entity.Product) int { return compareFold(a.Name, b.Name) }
	case entity.SortDescription:
		return func(a, b entity.Product) int { return compareFold(a.Description, b.Description) }
	}
	return nil
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// TotalPages sahifalar soni
func TotalPages(count, itemsPerPage int) int {
	if itemsPerPage <= 0 || count <= 0 {
		return 0
	}
	return (count + itemsPerPage - 1) / itemsPerPage
}

// PaginateProducts joriy sahifadagi mahsulotlar (ro'yxat chegarasida kesiladi)
func PaginateProducts(products []entity.Product, p entity.PaginationState) []entity.Product {
	if p.ItemsPerPage <= 0 || p.CurrentPage < 1 {
		return []entity.Product{}
	}
	start := (p.CurrentPage - 1) * p.ItemsPerPage
	if start >= len(products) {
		return []entity.Product{}
	}
	end := min(start+p.ItemsPerPage, len(products))
	return slices.Clone(products[start:end])
}

// PageItem pager dagi bitta element: sahifa raqami yoki "..."
type PageItem struct {
	Number   int
	Current  bool
	Ellipsis bool
}

// PageWindow joriy sahifa atrofida 5 tagacha raqam, kerak bo'lsa birinchi/oxirgi sahifa va "..."
func PageWindow(current, total int) []PageItem {
	if total <= 0 {
		return nil
	}

	start := max(1, current-2)
	end := min(total, current+2)

	var items []PageItem
	page := func(n int) {
		items = append(items, PageItem{Number: n, Current: n == current})
	}

	if start > 1 {
		page(1)
		if start > 2 {
			items = append(items, PageItem{Ellipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		page(i)
	}
	if end < total {
		if end < total-1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		page(total)
	}
	return items
}

// Widgets dashboard xulosasi
type Widgets struct {
	Count          int
	Total          float64
	MostExpensive  entity.Product
	LeastExpensive entity.Product
}

// ComputeWidgets to'liq ro'yxatdan xulosa; tenglikda birinchi uchragani qoladi
func ComputeWidgets(products []entity.Product) Widgets {
	w := Widgets{Count: len(products)}
	if len(products) == 0 {
		return w
	}

	w.MostExpensive = products[0]
	w.LeastExpensive = products[0]
	for _, p := range products {
		if p.Price > w.MostExpensive.Price {
			w.MostExpensive = p
		}
		if p.Price < w.LeastExpensive.Price {
			w.LeastExpensive = p
		}
		w.Total += p.Price
	}
	return w
}
