package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"

	"marketplace/internal/model"
	rediskey "marketplace/pkg/redis"
)

// getCart 读取会话购物车。key 不存在时返回空车而不是 404——
// 空车是正常状态。
func getCart(rdb *rd.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required"})
			return
		}
		if rdb == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cart storage unavailable"})
			return
		}

		cart, _, err := rediskey.GetCart(c.Request.Context(), rdb, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// putCart 整体覆盖会话购物车并刷新 TTL。
func putCart(rdb *rd.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required"})
			return
		}
		if rdb == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cart storage unavailable"})
			return
		}

		var req struct {
			Items []model.CartItem `json:"items"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for _, it := range req.Items {
			if it.ProductID == 0 || it.Quantity <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart items need product_id and quantity > 0"})
				return
			}
		}

		if err := rediskey.PutCart(c.Request.Context(), rdb, sessionID, req.Items, ttl); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, model.Cart{SessionID: sessionID, Items: req.Items})
	}
}
