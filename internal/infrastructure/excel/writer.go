package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
)

// SheetName eksport qilinadigan sheet nomi
const SheetName = "Products"

type writer struct{}

// NewWriter yangi Excel writer yaratish
func NewWriter() repository.ExcelWriter {
	return &writer{}
}

// WriteProducts mahsulotlarni berilgan tartibda xlsx ga yozish
func (w *writer) WriteProducts(ctx context.Context, products []entity.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []any{"ID", "Name", "Description", "Price"}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{p.ID, p.Name, p.Description, p.Price}
		if err := f.SetSheetRow(SheetName, axis, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
