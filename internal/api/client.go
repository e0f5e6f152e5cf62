// Package api talks to the shop REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storedash/internal/domain"
	"storedash/internal/validation"
)

// ErrNotFound is wrapped by APIError for 404 responses
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: remote error %d", e.Status)
	}
	return fmt.Sprintf("api: remote error %d: %s", e.Status, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404s
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Backend is everything the dashboard needs from the server
type Backend interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	UpdateCategory(ctx context.Context, slug string, c domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, slug string) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, slug string, p domain.ProductPayload) (domain.Product, error)
	DeleteProduct(ctx context.Context, slug string) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, invoiceID string) (domain.Order, error)
	DeleteOrder(ctx context.Context, invoiceID string) error
}

// Config configures the client
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Validator  validation.Validator
}

// Client is the HTTP implementation of Backend
type Client struct {
	baseURL   string
	timeout   time.Duration
	client    *http.Client
	validator validation.Validator
}

var _ Backend = (*Client)(nil)

// New builds a client for cfg.BaseURL
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api: base url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid base url: %w", err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	validator := cfg.Validator
	if validator == nil {
		validator = validation.New()
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		timeout:   timeout,
		client:    httpClient,
		validator: validator,
	}, nil
}

// BaseURL is the normalized backend root
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories/get-category", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, cat domain.Category) (domain.Category, error) {
	if err := c.validator.Category(cat); err != nil {
		return domain.Category{}, err
	}
	payload := categoryPayload{Name: strings.TrimSpace(cat.Name), Description: cat.Description}
	var out domain.Category
	if err := c.do(ctx, http.MethodPost, "/categories/create-category", payload, &out); err != nil {
		return domain.Category{}, err
	}
	return out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, slug string, cat domain.Category) (domain.Category, error) {
	if err := c.validator.Category(cat); err != nil {
		return domain.Category{}, err
	}
	payload := categoryPayload{Name: strings.TrimSpace(cat.Name), Description: cat.Description}
	var out domain.Category
	if err := c.do(ctx, http.MethodPut, "/categories/update-category/"+url.PathEscape(slug), payload, &out); err != nil {
		return domain.Category{}, err
	}
	return out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, slug string) error {
	return c.do(ctx, http.MethodDelete, "/categories/delete-category/"+url.PathEscape(slug), nil, nil)
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/product/get-products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, slug string, p domain.ProductPayload) (domain.Product, error) {
	if err := c.validator.Product(p); err != nil {
		return domain.Product{}, err
	}
	var out domain.Product
	if err := c.do(ctx, http.MethodPut, "/product/update-productinfo/"+url.PathEscape(slug), p, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, slug string) error {
	return c.do(ctx, http.MethodDelete, "/product/delete-product/"+url.PathEscape(slug), nil, nil)
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/order/get-orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, invoiceID string) (domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodGet, "/order/get-order/"+url.PathEscape(invoiceID), nil, &out); err != nil {
		return domain.Order{}, err
	}
	return out, nil
}

func (c *Client) DeleteOrder(ctx context.Context, invoiceID string) error {
	return c.do(ctx, http.MethodDelete, "/order/delete-order/"+url.PathEscape(invoiceID), nil, nil)
}

type categoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, payload any, target any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("api: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 300 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if target == nil {
		return nil
	}
	if decodeErr != nil {
		return fmt.Errorf("api: decode response: %w", decodeErr)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return fmt.Errorf("api: decode data: %w", err)
	}
	return nil
}
