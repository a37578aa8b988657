package excel

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
)

const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldPrice       = "price"
)

type parser struct {
	logger *zap.Logger
}

// NewParser yangi Excel parser yaratish
func NewParser(logger *zap.Logger) repository.ExcelParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &parser{logger: logger}
}

// ParseDrafts Excel fayldan draftlarni o'qish
func (p *parser) ParseDrafts(ctx context.Context, filePath string) ([]entity.Draft, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return p.parseFile(f)
}

// ParseDraftsFromBytes byte array dan parse qilish
func (p *parser) ParseDraftsFromBytes(ctx context.Context, data []byte) ([]entity.Draft, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	return p.parseFile(f)
}

// parseFile birinchi sheetdagi qatorlarni draftga aylantirish.
// Narxi o'qilmagan qator Price=0 bilan qaytadi, uni tekshirish chaqiruvchining ishi.
func (p *parser) parseFile(f *excelize.File) ([]entity.Draft, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel file is empty")
	}

	// Agar birinchi qatorning 2-ustuni raqam bo'lsa, header yo'q
	startRow := 1
	var columns map[string]int
	if len(rows[0]) > 1 {
		if _, err := parsePrice(rows[0][1]); err == nil {
			startRow = 0
		}
	}
	if startRow == 1 {
		columns = mapColumns(rows[0])
	} else {
		columns = map[string]int{fieldName: 0, fieldPrice: 1, fieldDescription: 2}
	}
	p.logger.Debug("excel column mapping", zap.Any("columns", columns), zap.Int("rows", len(rows)))

	var drafts []entity.Draft
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		draft := entity.Draft{
			Name:        cell(row, columns, fieldName),
			Description: cell(row, columns, fieldDescription),
		}
		if raw := cell(row, columns, fieldPrice); raw != "" {
			price, err := parsePrice(raw)
			if err != nil {
				p.logger.Warn("invalid price in excel row", zap.Int("row", i+1), zap.String("value", raw))
			} else {
				draft.Price = price
			}
		}
		drafts = append(drafts, draft)
	}

	if len(drafts) == 0 {
		return nil, fmt.Errorf("no products found in excel file")
	}
	return drafts, nil
}

// mapColumns header qatoridan column mapping yaratish
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		if name == "" {
			continue
		}

		// Tavsif birinchi: "product description" name ga tushib qolmasin
		switch {
		case contains(name, "description", "tavsif", "malumot", "описание", "info", "details"):
			setOnce(columns, fieldDescription, i)
		case contains(name, "price", "narx", "summa", "цена", "cost", "$", "usd"):
			setOnce(columns, fieldPrice, i)
		case contains(name, "name", "nom", "название", "product", "mahsulot", "tovar"):
			setOnce(columns, fieldName, i)
		}
	}

	// Asosiy maydonlar topilmasa, birinchi ustunlar
	if _, ok := columns[fieldName]; !ok {
		columns[fieldName] = 0
	}
	if _, ok := columns[fieldPrice]; !ok && len(header) > 1 {
		columns[fieldPrice] = 1
	}
	return columns
}

func setOnce(columns map[string]int, field string, idx int) {
	if _, ok := columns[field]; !ok {
		columns[field] = idx
	}
}

func cell(row []string, columns map[string]int, field string) string {
	idx, ok := columns[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow qator bo'sh yoki yo'qligini tekshirish
func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// contains tekshirish uchun helper
func contains(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}

// parsePrice narxni parse qilish ("$1,200.50", "99 usd")
func parsePrice(raw string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}

	for _, junk := range []string{",", " ", "$", "€", "£", "usd", "eur"} {
		s = strings.ReplaceAll(s, junk, "")
	}

	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price format: %s", raw)
	}
	return price, nil
}
