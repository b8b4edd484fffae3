package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"marketplace/internal/config"
	"marketplace/internal/model"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Supplier{}, &model.Document{},
		&model.Product{}, &model.ProductImage{},
		&model.Order{}, &model.OrderItem{},
	))
	// 每个用例独立数据，手动清表
	for _, table := range []string{"order_items", "orders", "product_images", "products", "supplier_documents", "suppliers"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}

	cfg := config.AppConfig{
		CartTTL:          time.Hour,
		MutateRateLimit:  1000,
		MutateRateWindow: time.Second,
	}
	r := gin.New()
	Setup(r, db, nil, cfg) // rdb=nil：限流放行，购物车 503
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope[T any](t *testing.T, w *httptest.ResponseRecorder) model.Envelope[T] {
	t.Helper()
	var env model.Envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func seedProducts(t *testing.T, db *gorm.DB, n int, status model.ProductStatus) []model.Product {
	t.Helper()
	out := make([]model.Product, n)
	for i := range out {
		out[i] = model.Product{
			Name:   fmt.Sprintf("Product %02d", i),
			SKU:    fmt.Sprintf("%s-%02d-%d", status, i, time.Now().UnixNano()+int64(i)),
			Price:  10000 + int64(i)*100,
			Status: status,
		}
	}
	require.NoError(t, db.Create(&out).Error)
	return out
}

func TestListProductsEnvelopeAndPagination(t *testing.T) {
	r, db := newTestRouter(t)
	seedProducts(t, db, 25, model.ProductActive)

	w := doJSON(t, r, http.MethodGet, "/api/products?page=3&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope[model.Product](t, w)
	assert.EqualValues(t, 25, env.Total)
	assert.Equal(t, 3, env.TotalPages)
	assert.Len(t, env.Items, 5, "last page holds the remainder")
}

func TestListProductsStatusFilter(t *testing.T) {
	r, db := newTestRouter(t)
	seedProducts(t, db, 3, model.ProductActive)
	seedProducts(t, db, 2, model.ProductPending)

	w := doJSON(t, r, http.MethodGet, "/api/products?status=pending&page=1&limit=20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope[model.Product](t, w)
	assert.EqualValues(t, 2, env.Total)
	for _, p := range env.Items {
		assert.Equal(t, model.ProductPending, p.Status)
	}
}

func TestListRejectsBadPagination(t *testing.T) {
	r, _ := newTestRouter(t)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/api/products?page=0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/api/products?limit=0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/api/products?page=abc", nil).Code)
}

func TestReviewProductApprove(t *testing.T) {
	r, db := newTestRouter(t)
	p := seedProducts(t, db, 1, model.ProductPending)[0]

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/products/%d/review", p.ID),
		map[string]any{"approved": true, "notes": "looks good"})
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, model.ProductApproved, got.Status)
	assert.Equal(t, "looks good", got.ReviewNotes)
}

func TestReviewProductRejectNeedsReason(t *testing.T) {
	r, db := newTestRouter(t)
	p := seedProducts(t, db, 1, model.ProductPending)[0]

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/products/%d/review", p.ID),
		map[string]any{"approved": false, "notes": "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var got model.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, model.ProductPending, got.Status, "state unchanged on refused mutation")

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/products/%d/review", p.ID),
		map[string]any{"approved": false, "notes": "blurry photos"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, model.ProductRejected, got.Status)
}

func TestReviewNonPendingConflicts(t *testing.T) {
	r, db := newTestRouter(t)
	p := seedProducts(t, db, 1, model.ProductActive)[0]

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/products/%d/review", p.ID),
		map[string]any{"approved": true})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProductStatusToggle(t *testing.T) {
	r, db := newTestRouter(t)
	p := seedProducts(t, db, 1, model.ProductApproved)[0]

	// approved -> active -> inactive -> active：每次调用翻转一次
	for _, want := range []model.ProductStatus{model.ProductActive, model.ProductInactive, model.ProductActive} {
		w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/products/%d/status", p.ID),
			map[string]any{"status": want})
		require.Equal(t, http.StatusOK, w.Code)
		var got model.Product
		require.NoError(t, db.First(&got, p.ID).Error)
		require.Equal(t, want, got.Status)
	}

	// active -> active 不是出边
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/products/%d/status", p.ID),
		map[string]any{"status": model.ProductActive})
	assert.Equal(t, http.StatusConflict, w.Code)

	// pending 商品不能直接上架
	q := seedProducts(t, db, 1, model.ProductPending)[0]
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/products/%d/status", q.ID),
		map[string]any{"status": model.ProductActive})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	r, db := newTestRouter(t)
	p := seedProducts(t, db, 1, model.ProductInactive)[0]

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/products?page=1&limit=20", nil)
	env := decodeEnvelope[model.Product](t, w)
	assert.EqualValues(t, 0, env.Total, "soft-deleted rows out of lists")

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func seedOrder(t *testing.T, db *gorm.DB, status model.OrderStatus) model.Order {
	t.Helper()
	item := model.OrderItem{ProductName: "Saree", UnitPrice: 189900, Quantity: 2}
	item.Normalize()
	o := model.Order{
		OrderNo:       fmt.Sprintf("ORD-%d", time.Now().UnixNano()),
		Status:        status,
		PaymentStatus: "paid",
		TotalAmount:   item.Subtotal,
		Items:         []model.OrderItem{item},
	}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func TestOrderStatusTransitions(t *testing.T) {
	r, db := newTestRouter(t)
	o := seedOrder(t, db, model.OrderPending)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", o.ID),
		map[string]any{"status": model.OrderConfirmed})
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Order
	require.NoError(t, db.First(&got, o.ID).Error)
	assert.Equal(t, model.OrderConfirmed, got.Status)

	// shipped 之后不可取消
	shipped := seedOrder(t, db, model.OrderShipped)
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", shipped.ID),
		map[string]any{"status": model.OrderCancelled})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 终态订单拒绝一切流转
	done := seedOrder(t, db, model.OrderDelivered)
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", done.ID),
		map[string]any{"status": model.OrderPending})
	assert.Equal(t, http.StatusConflict, w.Code)
	var after model.Order
	require.NoError(t, db.First(&after, done.ID).Error)
	assert.Equal(t, model.OrderDelivered, after.Status, "status untouched after refused transition")
}

func TestOrderListIncludesItemsWithConsistentSubtotal(t *testing.T) {
	r, db := newTestRouter(t)
	seedOrder(t, db, model.OrderPending)

	w := doJSON(t, r, http.MethodGet, "/api/orders?page=1&limit=20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope[model.Order](t, w)
	require.Len(t, env.Items, 1)
	for _, it := range env.Items[0].Items {
		assert.NoError(t, it.Validate())
	}
}

func seedSupplier(t *testing.T, db *gorm.DB, status model.VerificationStatus) model.Supplier {
	t.Helper()
	s := model.Supplier{
		BusinessName:       fmt.Sprintf("Supplier %d", time.Now().UnixNano()),
		Email:              fmt.Sprintf("s%d@example.com", time.Now().UnixNano()),
		VerificationStatus: status,
		Documents: []model.Document{
			{Type: "gst_certificate", Status: model.DocumentPending, FileURL: "/docs/gst.pdf"},
		},
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func TestSupplierVerificationFlow(t *testing.T) {
	r, db := newTestRouter(t)

	// pending -> verified
	s := seedSupplier(t, db, model.SupplierPending)
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/suppliers/%d/status", s.ID),
		map[string]any{"verified": true})
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Supplier
	require.NoError(t, db.First(&got, s.ID).Error)
	assert.Equal(t, model.SupplierVerified, got.VerificationStatus)

	// verified 再次 approve：幂等空操作
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/suppliers/%d/status", s.ID),
		map[string]any{"verified": true})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&got, s.ID).Error)
	assert.Equal(t, model.SupplierVerified, got.VerificationStatus)

	// verified 仍可驳回（降级路径）
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/suppliers/%d/status", s.ID),
		map[string]any{"verified": false})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&got, s.ID).Error)
	assert.Equal(t, model.SupplierRejected, got.VerificationStatus)

	// rejected 仍可重新通过
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/suppliers/%d/status", s.ID),
		map[string]any{"verified": true})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&got, s.ID).Error)
	assert.Equal(t, model.SupplierVerified, got.VerificationStatus)

	// rejected 不能再驳回
	reject := seedSupplier(t, db, model.SupplierRejected)
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/suppliers/%d/status", reject.ID),
		map[string]any{"verified": false})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSupplierDocuments(t *testing.T) {
	r, db := newTestRouter(t)
	s := seedSupplier(t, db, model.SupplierPending)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/suppliers/%d/documents", s.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var docs []model.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "gst_certificate", docs[0].Type)

	w = doJSON(t, r, http.MethodGet, "/api/suppliers/999999/documents", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartUnavailableWithoutRedis(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("X-Session-ID", "sess-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// 没有会话头直接 400
	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeedIsIdempotent(t *testing.T) {
	_, db := newTestRouter(t)
	require.NoError(t, Seed(db))

	var before int64
	require.NoError(t, db.Model(&model.Product{}).Count(&before).Error)
	require.Greater(t, before, int64(0))

	require.NoError(t, Seed(db))
	var after int64
	require.NoError(t, db.Model(&model.Product{}).Count(&after).Error)
	assert.Equal(t, before, after)
}
