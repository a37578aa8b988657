package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/product-catalog-client/internal/domain/entity"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
)

// Generik xato xabarlari (foydalanuvchiga ko'rsatiladi)
const (
	msgFetchProducts = "Failed to fetch products"
	msgFetchProduct  = "Failed to fetch product"
	msgCreateProduct = "Failed to create product"
	msgUpdateProduct = "Failed to update product"
	msgDeleteProduct = "Failed to delete product"
)

// errorBody backend qaytaradigan xato javobi
type errorBody struct {
	Status           int      `json:"status"`
	Error            string   `json:"error"`
	Message          string   `json:"message"`
	Path             string   `json:"path"`
	ValidationErrors []string `json:"validationErrors"`
}

// Client /api/product REST servisi uchun client
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	timeout    *time.Duration // nil = http.Client dagi qiymat qoladi
}

// Option client sozlamasi
type Option func(*Client)

// WithHTTPClient boshqa http.Client ishlatish
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger diagnostika logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout so'rov timeouti (0 = cheklanmagan)
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

var _ repository.ProductRepository = (*Client)(nil)

// NewClient yangi REST client yaratish
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	// Timeout nusxaga qo'yiladi: Jar, CheckRedirect va Transport saqlanadi
	if c.timeout != nil {
		hc := *c.httpClient
		hc.Timeout = *c.timeout
		c.httpClient = &hc
	}
	return c
}

// ListAll barcha mahsulotlarni olish
func (c *Client) ListAll(ctx context.Context) ([]entity.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, c.fail("list", "error fetching products", &repository.TransportError{Op: "list", Message: msgFetchProducts, Err: err})
	}
	defer drain(resp)

	if !isSuccess(resp.StatusCode) {
		return nil, c.fail("list", "error fetching products", &repository.TransportError{Op: "list", Status: resp.StatusCode, Message: msgFetchProducts})
	}

	var products []entity.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, c.fail("list", "error fetching products", &repository.TransportError{
			Op: "list", Status: resp.StatusCode, Message: msgFetchProducts, Err: fmt.Errorf("decode products: %w", err),
		})
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

// GetByID ID bo'yicha mahsulotni olish
func (c *Client) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, c.productURL(id), nil)
	if err != nil {
		return nil, c.fail("get", "error fetching product", &repository.TransportError{Op: "get", Message: msgFetchProduct, Err: err})
	}
	defer drain(resp)

	if !isSuccess(resp.StatusCode) {
		return nil, c.fail("get", "error fetching product", &repository.TransportError{Op: "get", Status: resp.StatusCode, Message: msgFetchProduct})
	}
	return c.decodeProduct(resp, "get", msgFetchProduct)
}

// Create yangi mahsulot yaratish
func (c *Client) Create(ctx context.Context, draft entity.Draft) (*entity.Product, error) {
	return c.send(ctx, http.MethodPost, c.baseURL, draft, "create", "error creating product", msgCreateProduct)
}

// Update mavjud mahsulotni yangilash
func (c *Client) Update(ctx context.Context, id int64, draft entity.Draft) (*entity.Product, error) {
	return c.send(ctx, http.MethodPut, c.productURL(id), draft, "update", "error updating product", msgUpdateProduct)
}

// Delete mahsulotni o'chirish
func (c *Client) Delete(ctx context.Context, id int64) (bool, error) {
	resp, err := c.do(ctx, http.MethodDelete, c.productURL(id), nil)
	if err != nil {
		return false, c.fail("delete", "error deleting product", &repository.TransportError{Op: "delete", Message: msgDeleteProduct, Err: err})
	}
	defer drain(resp)

	if !isSuccess(resp.StatusCode) {
		return false, c.fail("delete", "error deleting product", &repository.TransportError{Op: "delete", Status: resp.StatusCode, Message: msgDeleteProduct})
	}
	return true, nil
}

// send body bilan so'rov (POST/PUT), xato javobidagi message ni ValidationError ga aylantiradi
func (c *Client) send(ctx context.Context, method, url string, draft entity.Draft, op, logMsg, generic string) (*entity.Product, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, c.fail(op, logMsg, &repository.TransportError{Op: op, Message: generic, Err: fmt.Errorf("encode draft: %w", err)})
	}

	resp, err := c.do(ctx, method, url, payload)
	if err != nil {
		return nil, c.fail(op, logMsg, &repository.TransportError{Op: op, Message: generic, Err: err})
	}
	defer drain(resp)

	if !isSuccess(resp.StatusCode) {
		var body errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
			return nil, c.fail(op, logMsg, &repository.ValidationError{
				Status:  resp.StatusCode,
				Message: body.Message,
				Details: body.ValidationErrors,
			})
		}
		return nil, c.fail(op, logMsg, &repository.TransportError{Op: op, Status: resp.StatusCode, Message: generic})
	}
	return c.decodeProduct(resp, op, generic)
}

func (c *Client) decodeProduct(resp *http.Response, op, generic string) (*entity.Product, error) {
	var product entity.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, c.fail(op, "error decoding product", &repository.TransportError{
			Op: op, Status: resp.StatusCode, Message: generic, Err: fmt.Errorf("decode product: %w", err),
		})
	}
	return &product, nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

// fail xatoni diagnostika kanaliga yozib qaytarish
func (c *Client) fail(op, msg string, err error) error {
	c.logger.Error(msg, zap.String("op", op), zap.Error(err))
	return err
}

func (c *Client) productURL(id int64) string {
	return c.baseURL + "/" + strconv.FormatInt(id, 10)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// drain body ni oxirigacha o'qib yopish (connection qayta ishlatilishi uchun)
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
