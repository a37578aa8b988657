package api

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
)

type stubRepository struct {
	createErr error
	deleteErr error
}

func (s *stubRepository) ListAll(context.Context) ([]entity.Product, error) {
	return []entity.Product{}, nil
}

func (s *stubRepository) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	return &entity.Product{ID: id}, nil
}

func (s *stubRepository) Create(_ context.Context, d entity.Draft) (*entity.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &entity.Product{ID: 1, Name: d.Name, Description: d.Description, Price: d.Price}, nil
}

func (s *stubRepository) Update(_ context.Context, id int64, d entity.Draft) (*entity.Product, error) {
	return &entity.Product{ID: id, Name: d.Name, Description: d.Description, Price: d.Price}, nil
}

func (s *stubRepository) Delete(context.Context, int64) (bool, error) {
	if s.deleteErr != nil {
		return false, s.deleteErr
	}
	return true, nil
}

func TestInstrumentedCountsOutcomes(t *testing.T) {
	ctx := context.Background()
	stub := &stubRepository{
		createErr: &repository.ValidationError{Message: "Invalid input data"},
		deleteErr: &repository.TransportError{Op: "delete", Message: "Failed to delete product"},
	}
	repo := NewInstrumented(stub, prometheus.NewRegistry())

	_, _ = repo.ListAll(ctx)
	_, _ = repo.ListAll(ctx)
	_, _ = repo.Create(ctx, entity.Draft{})
	_, _ = repo.Delete(ctx, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(repo.requests.WithLabelValues("list", outcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(repo.requests.WithLabelValues("create", outcomeValidation)))
	assert.Equal(t, 1.0, testutil.ToFloat64(repo.requests.WithLabelValues("delete", outcomeTransport)))
	assert.Equal(t, 3, testutil.CollectAndCount(repo.requests))
}

func TestInstrumentedPassesResultsThrough(t *testing.T) {
	repo := NewInstrumented(&stubRepository{}, nil)

	product, err := repo.Update(context.Background(), 5, entity.Draft{Name: "a", Description: "b", Price: 2})

	assert.NoError(t, err)
	assert.Equal(t, entity.Product{ID: 5, Name: "a", Description: "b", Price: 2}, *product)
}
