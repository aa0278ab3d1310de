// Package apiclient es el cliente HTTP que usa el frontend web para hablar con la API del estoque.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// maxBody limita lo que se lee de una respuesta (el PDF de ventas es lo más grande).
const maxBody = 16 << 20

// ErrUnexpectedResponse la API respondió algo que no es el JSON esperado.
var ErrUnexpectedResponse = errors.New("apiclient: respuesta inesperada")

// APIError respuesta de error de la API, con su status HTTP.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apiclient: HTTP %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap permite errors.Is(err, domain.ErrNotFound) en respuestas 404.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return nil
}

// Client cliente de la API REST.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New construye el cliente. baseURL sin barra final, p. ej. "http://localhost:8000".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Produtos ──────────────────────────────────────────────────────────────────

// ListProducts GET /api/v1/produtos/. Un 404 (estoque vacío) devuelve lista vacía.
func (c *Client) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/v1/produtos/", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return []dto.ProductResponse{}, nil
	}
	if status != http.StatusOK {
		return nil, apiError(status, body)
	}
	var out []dto.ProductResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return out, nil
}

// GetProduct GET /api/v1/produtos/{id}.
func (c *Client) GetProduct(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	status, body, err := c.do(ctx, http.MethodGet, productPath(id), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, apiError(status, body)
	}
	var out dto.ProductResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return &out, nil
}

// CreateProduct POST /api/v1/produtos/.
func (c *Client) CreateProduct(ctx context.Context, in dto.CreateProductRequest) error {
	return c.expect(ctx, http.MethodPost, "/api/v1/produtos/", in, http.StatusCreated)
}

// UpdateProduct PATCH /api/v1/produtos/{id}.
func (c *Client) UpdateProduct(ctx context.Context, id int64, in dto.UpdateProductRequest) error {
	return c.expect(ctx, http.MethodPatch, productPath(id), in, http.StatusOK)
}

// SellProduct PUT /api/v1/produtos/{id}/vender/.
func (c *Client) SellProduct(ctx context.Context, id int64, quantidade int64) error {
	return c.expect(ctx, http.MethodPut, productPath(id)+"/vender/", dto.SellProductRequest{Quantidade: quantidade}, http.StatusOK)
}

// DeleteProduct DELETE /api/v1/produtos/{id}.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.expect(ctx, http.MethodDelete, productPath(id), nil, http.StatusOK)
}

// ResetProducts DELETE /api/v1/produtos/.
func (c *Client) ResetProducts(ctx context.Context) error {
	return c.expect(ctx, http.MethodDelete, "/api/v1/produtos/", nil, http.StatusOK)
}

// ── Vendas ────────────────────────────────────────────────────────────────────

// ListSales GET /api/v1/vendas/.
func (c *Client) ListSales(ctx context.Context) ([]dto.SaleResponse, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/v1/vendas/", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, apiError(status, body)
	}
	var out []dto.SaleResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return out, nil
}

// SalesReport GET /api/v1/vendas/relatorio (bytes del PDF).
func (c *Client) SalesReport(ctx context.Context) ([]byte, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/v1/vendas/relatorio", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, apiError(status, body)
	}
	return body, nil
}

// ── transporte ────────────────────────────────────────────────────────────────

func (c *Client) expect(ctx context.Context, method, path string, in any, want int) error {
	status, body, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	if status != want {
		return apiError(status, body)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in any) (int, []byte, error) {
	var reader io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("apiclient: serializar request: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("apiclient: crear HTTP request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, fmt.Errorf("apiclient: timeout o cancelación: %w", ctx.Err())
		}
		return 0, nil, fmt.Errorf("apiclient: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return 0, nil, fmt.Errorf("apiclient: leer respuesta: %w", err)
	}
	return resp.StatusCode, body, nil
}

func apiError(status int, body []byte) error {
	e := &APIError{Status: status}
	var payload dto.ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Code, e.Message = payload.Code, payload.Message
	} else {
		e.Message = strings.TrimSpace(string(body))
	}
	return e
}

func productPath(id int64) string {
	return "/api/v1/produtos/" + strconv.FormatInt(id, 10)
}
