// Package client 封装对市场后端 REST 接口的访问：参数序列化、
// 信封解包、错误归一。不做缓存，不做自动重试——失败一次就报一次，
// 兜底与重试策略由上层界面决定。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"marketplace/internal/model"
)

// DefaultTimeout 单次请求的默认超时。上游界面层没有别的取消手段，
// 这里必须有兜底，否则慢请求会让界面一直转圈。
const DefaultTimeout = 10 * time.Second

// Client 市场后端客户端。并发安全（http.Client 自身可复用）。
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Entry
}

// New 创建客户端。timeout<=0 时用 DefaultTimeout。
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logrus.WithField("component", "client"),
	}
}

// ListParams 列表查询参数。Filters 中空值与 "all" 会被丢弃：
// 界面上的「全部」等于不带该过滤条件，绝不能发字面量下去。
type ListParams struct {
	Page    int
	Limit   int
	Filters map[string]string
}

func (p ListParams) validate() error {
	if p.Page < 1 {
		return validationError("page must be >= 1, got %d", p.Page)
	}
	if p.Limit <= 0 {
		return validationError("limit must be > 0, got %d", p.Limit)
	}
	return nil
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))
	for k, v := range p.Filters {
		if v == "" || strings.EqualFold(v, "all") {
			continue
		}
		q.Set(k, v)
	}
	return q
}

// do 发送请求并处理响应。out 为 nil 时忽略响应体（204 等）。
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return validationError("encode request: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return validationError("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{"method": method, "path": path}).Warn("request failed")
		return netError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return netError(err)
	}
	if resp.StatusCode >= 300 {
		return normalize(resp.StatusCode, raw)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Kind: KindServer, Message: fmt.Sprintf("malformed response: %v", err), HTTPStatus: resp.StatusCode}
	}
	return nil
}

// list 泛型列表请求：校验分页参数，解开 {items,total,total_pages} 信封。
func list[T any](ctx context.Context, c *Client, path string, p ListParams) (model.Envelope[T], error) {
	var env model.Envelope[T]
	if err := p.validate(); err != nil {
		return env, err
	}
	if err := c.do(ctx, http.MethodGet, path, p.query(), nil, &env); err != nil {
		return model.Envelope[T]{}, err
	}
	return env, nil
}

// ---- Products ----

// ListProducts 分页查询商品。可用过滤键：status、category。
func (c *Client) ListProducts(ctx context.Context, p ListParams) (model.Envelope[model.Product], error) {
	return list[model.Product](ctx, c, "/api/products", p)
}

// PendingProducts 待审核商品队列。
func (c *Client) PendingProducts(ctx context.Context, p ListParams) (model.Envelope[model.Product], error) {
	return list[model.Product](ctx, c, "/api/products/pending", p)
}

// ReviewProduct 审核商品。驳回必须给出非空理由，空理由在本地拦下，
// 不产生网络请求；通过时备注可选。
func (c *Client) ReviewProduct(ctx context.Context, id uint, approved bool, notes string) (model.Product, error) {
	if !approved && strings.TrimSpace(notes) == "" {
		return model.Product{}, validationError("rejection reason is required")
	}
	var out model.Product
	body := map[string]any{"approved": approved, "notes": notes}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/products/%d/review", id), nil, body, &out)
	return out, err
}

// SetProductStatus 上/下架切换。
func (c *Client) SetProductStatus(ctx context.Context, id uint, status model.ProductStatus) (model.Product, error) {
	var out model.Product
	body := map[string]any{"status": status}
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/products/%d/status", id), nil, body, &out)
	return out, err
}

// DeleteProduct 删除商品。调用方负责确认弹窗，这里只发请求。
func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil, nil)
}

// ---- Orders ----

// ListOrders 分页查询订单。可用过滤键：status。
func (c *Client) ListOrders(ctx context.Context, p ListParams) (model.Envelope[model.Order], error) {
	return list[model.Order](ctx, c, "/api/orders", p)
}

// SetOrderStatus 请求订单状态流转。合法性由服务端按状态图校验。
func (c *Client) SetOrderStatus(ctx context.Context, id uint, status model.OrderStatus) (model.Order, error) {
	var out model.Order
	body := map[string]any{"status": status}
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", id), nil, body, &out)
	return out, err
}

// ---- Suppliers ----

// ListSuppliers 分页查询供应商。可用过滤键：verification_status。
func (c *Client) ListSuppliers(ctx context.Context, p ListParams) (model.Envelope[model.Supplier], error) {
	return list[model.Supplier](ctx, c, "/api/suppliers", p)
}

// SupplierDocuments 供应商资质文件列表。
func (c *Client) SupplierDocuments(ctx context.Context, id uint) ([]model.Document, error) {
	var out []model.Document
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/suppliers/%d/documents", id), nil, nil, &out)
	return out, err
}

// SetSupplierVerified 供应商认证流转：verified=true 通过，false 驳回。
func (c *Client) SetSupplierVerified(ctx context.Context, id uint, verified bool) (model.Supplier, error) {
	var out model.Supplier
	body := map[string]any{"verified": verified}
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/suppliers/%d/status", id), nil, body, &out)
	return out, err
}

// ---- Cart ----

// GetCart 取会话购物车。
func (c *Client) GetCart(ctx context.Context, sessionID string) (model.Cart, error) {
	var out model.Cart
	err := c.doWithSession(ctx, http.MethodGet, "/api/cart", sessionID, nil, &out)
	return out, err
}

// PutCart 整体覆盖会话购物车。
func (c *Client) PutCart(ctx context.Context, sessionID string, items []model.CartItem) (model.Cart, error) {
	var out model.Cart
	err := c.doWithSession(ctx, http.MethodPut, "/api/cart", sessionID, map[string]any{"items": items}, &out)
	return out, err
}

func (c *Client) doWithSession(ctx context.Context, method, path, sessionID string, body any, out any) error {
	if sessionID == "" {
		return validationError("session id is required")
	}
	u := c.baseURL + path
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return validationError("encode request: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return validationError("build request: %v", err)
	}
	req.Header.Set("X-Session-ID", sessionID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return netError(err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return netError(err)
	}
	if resp.StatusCode >= 300 {
		return normalize(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Kind: KindServer, Message: fmt.Sprintf("malformed response: %v", err), HTTPStatus: resp.StatusCode}
	}
	return nil
}
