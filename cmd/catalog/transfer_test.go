package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/product-catalog-client/config"
	"github.com/yourusername/product-catalog-client/internal/infrastructure/storage"
)

func TestExportThenImport(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "products.xlsx")
	source := storage.NewMemoryProductRepository(storage.DemoProducts()...)

	n, err := exportFile(ctx, source, path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, len(storage.DemoProducts()), n)

	target := storage.NewMemoryProductRepository()
	res, err := importFile(ctx, target, path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, len(storage.DemoProducts()), res.Imported)
	assert.Zero(t, res.Skipped)

	all, err := target.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.DemoProducts()[0].Name, all[0].Name)
}

func TestImportMissingFile(t *testing.T) {
	_, err := importFile(context.Background(), storage.NewMemoryProductRepository(), filepath.Join(t.TempDir(), "nope.xlsx"), zap.NewNop())
	assert.ErrorContains(t, err, "read workbook")
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))

	l, err = newLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = newLogger("loud", false)
	assert.Error(t, err)
}

func TestNewRepositoryDemo(t *testing.T) {
	repo := newRepository(&config.Config{Demo: true}, nil, zap.NewNop())

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, len(storage.DemoProducts()))
}
