package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"marketplace/internal/model"
	"marketplace/internal/workflow"
)

// listOrders 订单列表：status 过滤 + 分页信封。
func listOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, ok := pageParams(c)
		if !ok {
			return
		}

		query := db.Model(&model.Order{})
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var items []model.Order
		err := query.Preload("Items").
			Order("created_at DESC").
			Offset((page - 1) * limit).Limit(limit).
			Find(&items).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		envelope(c, items, total, limit)
	}
}

// patchOrderStatus 订单状态流转。目标状态必须是状态图上当前状态的
// 出边，终态订单任何流转都会被拒。
func patchOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var req struct {
			Status model.OrderStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var o model.Order
		if err := db.Preload("Items").First(&o, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rule, ok2 := workflow.Orders.RuleTo(o.Status, req.Status)
		if !ok2 {
			c.JSON(http.StatusConflict, gin.H{
				"error": "illegal transition: " + string(o.Status) + " -> " + string(req.Status),
			})
			return
		}

		if err := db.Model(&o).Update("status", rule.To).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
