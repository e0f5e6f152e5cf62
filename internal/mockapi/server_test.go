package mockapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storedash/internal/domain"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	seed, err := DefaultSeed()
	require.NoError(t, err)
	return New(seed)
}

func call(t *testing.T, s *Server, method, path string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, BasePath+path, r)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestDefaultSeedLoads(t *testing.T) {
	seed, err := DefaultSeed()
	require.NoError(t, err)
	assert.NotEmpty(t, seed.Categories)
	assert.NotEmpty(t, seed.Products)
	assert.NotEmpty(t, seed.Orders)
	assert.Equal(t, "Shoes", seed.Products[0].Category.Name)
}

func TestReadSeedRejectsUnknownFields(t *testing.T) {
	_, err := ReadSeed(strings.NewReader("categories:\n  - name: A\n    colour: red\n"))
	assert.Error(t, err)

	s, err := ReadSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, s.Products)
}

func TestGrowIsDeterministic(t *testing.T) {
	a, err := DefaultSeed()
	require.NoError(t, err)
	b, err := DefaultSeed()
	require.NoError(t, err)

	a.Grow(50, 80, 7)
	b.Grow(50, 80, 7)
	assert.Equal(t, a, b)
	assert.Len(t, a.Products, 6+50)
	assert.Len(t, a.Orders, 5+80)
}

func TestListEndpoints(t *testing.T) {
	s := newTestServer(t)

	status, env := call(t, s, http.MethodGet, "/product/get-products", nil)
	require.Equal(t, http.StatusOK, status)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products, 6)

	status, env = call(t, s, http.MethodGet, "/order/get-orders", nil)
	require.Equal(t, http.StatusOK, status)
	var orders []domain.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	assert.Len(t, orders, 5)

	status, env = call(t, s, http.MethodGet, "/order/get-order/INV-1003", nil)
	require.Equal(t, http.StatusOK, status)
	var order domain.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, "Tanvir Hasan", order.Customer.FullName)

	status, _ = call(t, s, http.MethodGet, "/order/get-order/INV-404", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCategoryLifecycle(t *testing.T) {
	s := newTestServer(t)

	status, env := call(t, s, http.MethodPost, "/categories/create-category",
		domain.Category{Name: "Home Decor", Description: "Lamps, rugs and frames"})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var created domain.Category
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "home-decor", created.Slug)
	assert.NotEmpty(t, created.ID)

	status, _ = call(t, s, http.MethodPost, "/categories/create-category",
		domain.Category{Name: "Home Decor", Description: "Duplicate name here"})
	assert.Equal(t, http.StatusConflict, status)

	status, env = call(t, s, http.MethodPut, "/categories/update-category/home-decor",
		domain.Category{Name: "Home Goods", Description: "Lamps, rugs and frames"})
	require.Equal(t, http.StatusOK, status, env.Message)
	var updated domain.Category
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "home-goods", updated.Slug)
	assert.Equal(t, created.ID, updated.ID)

	status, _ = call(t, s, http.MethodDelete, "/categories/delete-category/home-goods", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, s, http.MethodDelete, "/categories/delete-category/home-goods", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCategoryValidationAndInUse(t *testing.T) {
	s := newTestServer(t)

	status, env := call(t, s, http.MethodPost, "/categories/create-category",
		domain.Category{Name: "X", Description: "short"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "description")

	status, _ = call(t, s, http.MethodDelete, "/categories/delete-category/shoes", nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestCategoryRenameUpdatesProducts(t *testing.T) {
	s := newTestServer(t)

	status, _ := call(t, s, http.MethodPut, "/categories/update-category/watches",
		domain.Category{Name: "Timepieces", Description: "Analog and smart watches"})
	require.Equal(t, http.StatusOK, status)

	for _, p := range s.store.listProducts() {
		if p.Category.ID == "cat-watches" {
			assert.Equal(t, "Timepieces", p.Category.Name)
		}
	}
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	s := newTestServer(t)

	var target domain.Product
	for _, p := range s.store.listProducts() {
		if p.Slug == "logo-tee" {
			target = p
		}
	}
	require.NotEmpty(t, target.ID)

	target.Price = 900
	target.Stock = 3
	status, env := call(t, s, http.MethodPut, "/product/update-productinfo/logo-tee", target.Payload())
	require.Equal(t, http.StatusOK, status, env.Message)
	var updated domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.InDelta(t, 900, updated.Price, 0.001)
	assert.Equal(t, 3, updated.Stock)
	assert.Equal(t, "Apparel", updated.Category.Name)

	bad := target.Payload()
	bad.Price = 0
	status, _ = call(t, s, http.MethodPut, "/product/update-productinfo/logo-tee", bad)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, s, http.MethodPut, "/product/update-productinfo/missing", target.Payload())
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, s, http.MethodDelete, "/product/delete-product/logo-tee", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, s.store.listProducts(), 5)
}

func TestDeleteOrder(t *testing.T) {
	s := newTestServer(t)

	status, _ := call(t, s, http.MethodDelete, "/order/delete-order/INV-1001", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, s, http.MethodDelete, "/order/delete-order/INV-1001", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Len(t, s.store.listOrders(), 4)
}
