package excel

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
)

// workbook testlar uchun xotirada xlsx yaratish
func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, axis, &r))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParseWithHeader(t *testing.T) {
	data := workbook(t, [][]any{
		{"Product Description", "Price ($)", "Product Name"},
		{"Brass lamp", "$1,200.50", "Lamp"},
		{"", "", ""},
		{"Mesh chair", 319, "Chair"},
	})

	drafts, err := NewParser(nil).ParseDraftsFromBytes(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, []entity.Draft{
		{Name: "Lamp", Description: "Brass lamp", Price: 1200.50},
		{Name: "Chair", Description: "Mesh chair", Price: 319},
	}, drafts)
}

func TestParseUzbekHeader(t *testing.T) {
	data := workbook(t, [][]any{
		{"Nomi", "Narx", "Tavsif"},
		{"Stol", "45", "Yog'och stol"},
	})

	drafts, err := NewParser(nil).ParseDraftsFromBytes(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, []entity.Draft{{Name: "Stol", Description: "Yog'och stol", Price: 45}}, drafts)
}

func TestParseHeaderless(t *testing.T) {
	data := workbook(t, [][]any{
		{"Lamp", 10, "Brass"},
		{"Chair", "30.5", "Mesh"},
	})

	drafts, err := NewParser(nil).ParseDraftsFromBytes(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, []entity.Draft{
		{Name: "Lamp", Description: "Brass", Price: 10},
		{Name: "Chair", Description: "Mesh", Price: 30.5},
	}, drafts)
}

func TestParseInvalidPriceKeepsRowWithZeroPrice(t *testing.T) {
	data := workbook(t, [][]any{
		{"name", "price", "description"},
		{"Lamp", "cheap", "Brass"},
	})

	drafts, err := NewParser(nil).ParseDraftsFromBytes(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Zero(t, drafts[0].Price)
}

func TestParseEmptyWorkbook(t *testing.T) {
	data := workbook(t, [][]any{{"name", "price", "description"}})

	_, err := NewParser(nil).ParseDraftsFromBytes(context.Background(), data)
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := NewParser(nil).ParseDraftsFromBytes(context.Background(), []byte("not a workbook"))
	assert.Error(t, err)
}

func TestParsePrice(t *testing.T) {
	cases := map[string]float64{
		"$1,200.50": 1200.50,
		"99 usd":    99,
		" 12.5 ":    12.5,
		"€7":        7,
	}
	for raw, want := range cases {
		got, err := parsePrice(raw)
		require.NoError(t, err, raw)
		assert.InDelta(t, want, got, 1e-9, raw)
	}

	_, err := parsePrice("")
	assert.Error(t, err)
}

func TestWriterRoundTrip(t *testing.T) {
	products := []entity.Product{
		{ID: 2, Name: "Chair", Description: "Mesh", Price: 30},
		{ID: 1, Name: "Lamp", Description: "Brass", Price: 10.5},
	}

	data, err := NewWriter().WriteProducts(context.Background(), products)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"ID", "Name", "Description", "Price"},
		{"2", "Chair", "Mesh", "30"},
		{"1", "Lamp", "Brass", "10.5"},
	}, rows)

	drafts, err := NewParser(nil).ParseDraftsFromBytes(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "Chair", drafts[0].Name)
	assert.Equal(t, "Mesh", drafts[0].Description)
	assert.Equal(t, 30.0, drafts[0].Price)
}
