package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
)

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
}

// newBackend so'rovlarni yozib, oldindan berilgan javobni qaytaradigan server
func newBackend(t *testing.T, status int, body string) (*Client, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Body:        raw,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/api/product/"), &requests
}

func TestListAllDecodesProducts(t *testing.T) {
	client, requests := newBackend(t, http.StatusOK,
		`[{"id":1,"name":"Lamp","description":"Brass","price":89.5},{"id":2,"name":"Chair","description":"Mesh","price":319}]`)

	products, err := client.ListAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []entity.Product{
		{ID: 1, Name: "Lamp", Description: "Brass", Price: 89.5},
		{ID: 2, Name: "Chair", Description: "Mesh", Price: 319},
	}, products)
	require.Len(t, *requests, 1)
	assert.Equal(t, http.MethodGet, (*requests)[0].Method)
	assert.Equal(t, "/api/product", (*requests)[0].Path)
}

func TestListAllEmptyArray(t *testing.T) {
	client, _ := newBackend(t, http.StatusOK, `[]`)

	products, err := client.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestListAllNonSuccessIsTransportError(t *testing.T) {
	client, _ := newBackend(t, http.StatusInternalServerError, `{"message":"boom"}`)

	_, err := client.ListAll(context.Background())

	var te *repository.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusInternalServerError, te.Status)
	assert.Equal(t, "Failed to fetch products", te.Error())
}

func TestGetByIDNotFound(t *testing.T) {
	client, requests := newBackend(t, http.StatusNotFound, `{"message":"Product not found with id: 7"}`)

	_, err := client.GetByID(context.Background(), 7)

	require.Error(t, err)
	assert.True(t, repository.IsNotFound(err))
	assert.Equal(t, "Failed to fetch product", err.Error())
	assert.Equal(t, "/api/product/7", (*requests)[0].Path)
}

func TestCreateSendsDraftAsJSON(t *testing.T) {
	client, requests := newBackend(t, http.StatusCreated, `{"id":9,"name":"Desk","description":"Oak","price":120.25}`)

	product, err := client.Create(context.Background(), entity.Draft{Name: "Desk", Description: "Oak", Price: 120.25})
	require.NoError(t, err)
	assert.Equal(t, int64(9), product.ID)

	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "application/json", req.ContentType)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	assert.Equal(t, map[string]any{"name": "Desk", "description": "Oak", "price": 120.25}, sent)
}

func TestCreateRejectedWithMessageIsValidationError(t *testing.T) {
	client, _ := newBackend(t, http.StatusBadRequest,
		`{"status":400,"error":"Validation Failed","message":"Invalid input data","validationErrors":["price: Product price must be greater than 0"]}`)

	_, err := client.Create(context.Background(), entity.Draft{Name: "x", Description: "y", Price: 0})

	var ve *repository.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Invalid input data", ve.Message)
	assert.Equal(t, []string{"price: Product price must be greater than 0"}, ve.Details)
	assert.Equal(t, http.StatusBadRequest, ve.Status)
}

func TestUpdateRejectedWithoutMessageIsTransportError(t *testing.T) {
	client, requests := newBackend(t, http.StatusBadGateway, `<html>bad gateway</html>`)

	_, err := client.Update(context.Background(), 3, entity.Draft{Name: "x", Description: "y", Price: 1})

	var te *repository.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "Failed to update product", te.Error())
	assert.Equal(t, http.MethodPut, (*requests)[0].Method)
	assert.Equal(t, "/api/product/3", (*requests)[0].Path)
}

func TestDelete(t *testing.T) {
	client, requests := newBackend(t, http.StatusNoContent, ``)

	ok, err := client.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, http.MethodDelete, (*requests)[0].Method)
}

func TestDeleteFailure(t *testing.T) {
	client, _ := newBackend(t, http.StatusNotFound, `{"message":"nope"}`)

	ok, err := client.Delete(context.Background(), 4)
	assert.False(t, ok)
	assert.EqualError(t, err, "Failed to delete product")
}

func TestUnreachableBackendIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).ListAll(context.Background())

	var te *repository.TransportError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.Status)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestWithTimeoutKeepsCustomClient(t *testing.T) {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	redirects := func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	custom := &http.Client{Jar: jar, CheckRedirect: redirects}

	for name, opts := range map[string][]Option{
		"client first":  {WithHTTPClient(custom), WithTimeout(3 * time.Second)},
		"timeout first": {WithTimeout(3 * time.Second), WithHTTPClient(custom)},
	} {
		c := NewClient("http://localhost/api/product", opts...)
		assert.Equal(t, 3*time.Second, c.httpClient.Timeout, name)
		assert.Same(t, jar, c.httpClient.Jar, name)
		assert.NotNil(t, c.httpClient.CheckRedirect, name)
	}
	assert.Zero(t, custom.Timeout)
}
