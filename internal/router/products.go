package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"marketplace/internal/model"
	"marketplace/internal/workflow"
)

// listProducts 商品列表：status/category 过滤 + 分页信封。
func listProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, ok := pageParams(c)
		if !ok {
			return
		}

		query := db.Model(&model.Product{})
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var items []model.Product
		err := query.Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
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

// pendingProducts 待审核队列，等价于 status=pending 的列表。
func pendingProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, ok := pageParams(c)
		if !ok {
			return
		}

		query := db.Model(&model.Product{}).Where("status = ?", model.ProductPending)

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var items []model.Product
		err := query.Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
			Order("created_at ASC"). // 审核队列按提交先后
			Offset((page - 1) * limit).Limit(limit).
			Find(&items).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		envelope(c, items, total, limit)
	}
}

// reviewProduct 审核商品：approved=true 通过（备注可选），
// approved=false 驳回（理由必填）。只有 pending 商品可审。
func reviewProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var req struct {
			Approved *bool  `json:"approved" binding:"required"`
			Notes    string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		action := workflow.ActionApprove
		if !*req.Approved {
			action = workflow.ActionReject
		}

		var p model.Product
		if err := db.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rule, err := workflow.Products.Resolve(p.Status, action)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if rule.NeedsComment && strings.TrimSpace(req.Notes) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rejection reason is required"})
			return
		}

		updates := map[string]any{"status": rule.To, "review_notes": req.Notes}
		if err := db.Model(&p).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// patchProductStatus 上/下架切换。目标状态必须是当前状态的出边。
func patchProductStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var req struct {
			Status model.ProductStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var p model.Product
		if err := db.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rule, ok2 := workflow.Products.RuleTo(p.Status, req.Status)
		if !ok2 {
			c.JSON(http.StatusConflict, gin.H{
				"error": "illegal transition: " + string(p.Status) + " -> " + string(req.Status),
			})
			return
		}

		if err := db.Model(&p).Update("status", rule.To).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// deleteProduct 删除商品（软删，gorm.DeletedAt）。任何状态都允许；
// 确认弹窗是界面职责，服务端不再二次确认。
func deleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		res := db.Delete(&model.Product{}, id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
