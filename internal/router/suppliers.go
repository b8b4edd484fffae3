package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"marketplace/internal/model"
	"marketplace/internal/workflow"
)

// listSuppliers 供应商列表：verification_status 过滤 + 分页信封。
func listSuppliers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, ok := pageParams(c)
		if !ok {
			return
		}

		query := db.Model(&model.Supplier{})
		if vs := c.Query("verification_status"); vs != "" {
			query = query.Where("verification_status = ?", vs)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var items []model.Supplier
		err := query.Order("created_at DESC").
			Offset((page - 1) * limit).Limit(limit).
			Find(&items).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		envelope(c, items, total, limit)
	}
}

// supplierDocuments 供应商资质文件列表。
func supplierDocuments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var s model.Supplier
		if err := db.First(&s, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var docs []model.Document
		if err := db.Where("supplier_id = ?", id).Find(&docs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

// patchSupplierStatus 供应商认证流转：{verified: true} 通过，
// {verified: false} 驳回。对 verified 再次通过是空操作，直接返回
// 当前实体；除此之外必须匹配状态图出边。
func patchSupplierStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var req struct {
			Verified *bool `json:"verified" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		action := workflow.ActionApprove
		if !*req.Verified {
			action = workflow.ActionReject
		}

		var s model.Supplier
		if err := db.First(&s, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rule, err := workflow.Suppliers.Resolve(s.VerificationStatus, action)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if rule.To == s.VerificationStatus {
			// 幂等：已是目标状态，不写库
			c.JSON(http.StatusOK, s)
			return
		}

		if err := db.Model(&s).Update("verification_status", rule.To).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}
