package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ProductStatus 商品状态。pending 表示等待平台审核。
type ProductStatus string

const (
	ProductPending  ProductStatus = "pending"  // 待审核
	ProductApproved ProductStatus = "approved" // 审核通过，尚未上架
	ProductRejected ProductStatus = "rejected" // 审核驳回
	ProductActive   ProductStatus = "active"   // 在售
	ProductInactive ProductStatus = "inactive" // 下架
)

// Product 市场商品，属于某个供应商。
type Product struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string        `gorm:"size:255;not null" json:"name"`
	Description string        `gorm:"size:2048" json:"description"`
	SKU         string        `gorm:"size:64;uniqueIndex;not null" json:"sku"`
	Price       int64         `gorm:"not null" json:"price"` // paise
	// OriginalPrice 划线价，可空；存在时必须 >= Price。
	OriginalPrice *int64         `json:"original_price,omitempty"`
	Status        ProductStatus  `gorm:"type:VARCHAR(16);not null;default:'pending';index" json:"status"`
	Category      string         `gorm:"size:64;index" json:"category"`
	SupplierID    uint           `gorm:"index" json:"supplier_id"`
	Images        []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	ReviewNotes   string         `gorm:"size:1024" json:"review_notes,omitempty"`
}

func (Product) TableName() string { return "products" }

// PrimaryImage 返回首图 URL；Images 有序，第一张即主图。
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// Validate 校验价格约束。
func (p Product) Validate() error {
	if p.Price < 0 {
		return fmt.Errorf("product %q: price must be >= 0", p.Name)
	}
	if p.OriginalPrice != nil && *p.OriginalPrice < p.Price {
		return fmt.Errorf("product %q: original price %d below sale price %d",
			p.Name, *p.OriginalPrice, p.Price)
	}
	return nil
}

// ProductImage 商品图片，Position 决定展示顺序。
type ProductImage struct {
	ID        uint   `gorm:"primarykey" json:"-"`
	ProductID uint   `gorm:"index" json:"-"`
	URL       string `gorm:"size:512;not null" json:"url"`
	Position  int    `gorm:"not null;default:0" json:"position"`
}

func (ProductImage) TableName() string { return "product_images" }
