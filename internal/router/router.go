package router

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/model"
)

// Setup 注册全部 HTTP 路由。列表接口统一返回
// {items, total, total_pages} 信封；变更接口返回更新后的实体或 204。
// 变更路由挂 Redis 限流（未配置 Redis 时自动放行）。
func Setup(r *gin.Engine, db *gorm.DB, rdb *rd.Client, cfg config.AppConfig) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	// Lists
	r.GET("/api/products", listProducts(db))
	r.GET("/api/products/pending", pendingProducts(db))
	r.GET("/api/orders", listOrders(db))
	r.GET("/api/suppliers", listSuppliers(db))
	r.GET("/api/suppliers/:id/documents", supplierDocuments(db))

	// Cart（会话级，Redis 存储）
	r.GET("/api/cart", getCart(rdb))
	r.PUT("/api/cart", putCart(rdb, cfg.CartTTL))

	// Mutations
	mut := r.Group("/", middleware.MutateRateLimit(rdb, cfg.MutateRateLimit, cfg.MutateRateWindow))
	mut.POST("/api/products/:id/review", reviewProduct(db))
	mut.PATCH("/api/products/:id/status", patchProductStatus(db))
	mut.DELETE("/api/products/:id", deleteProduct(db))
	mut.PATCH("/api/orders/:id/status", patchOrderStatus(db))
	mut.PATCH("/api/suppliers/:id/status", patchSupplierStatus(db))
}

// pageParams 解析并校验 page/limit。
func pageParams(c *gin.Context) (page, limit int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer >= 1"})
		return 0, 0, false
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer > 0"})
		return 0, 0, false
	}
	return page, limit, true
}

// envelope 统一组装列表响应。
func envelope[T any](c *gin.Context, items []T, total int64, limit int) {
	c.JSON(http.StatusOK, model.Envelope[T]{
		Items:      items,
		Total:      total,
		TotalPages: model.PageCount(total, limit),
	})
}

// idParam 解析路径里的实体 ID。
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
