package router

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace/internal/model"
)

// Seed 空库时灌入演示数据，让各屏一启动就有分页可翻。
// 已有数据时什么都不做。
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Supplier{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	suppliers := []model.Supplier{
		{
			BusinessName: "Greenleaf Organics", ContactPerson: "Asha Nair",
			Email: "hello@greenleaforganics.example", Phone: "+91-9000000001",
			VerificationStatus: model.SupplierVerified,
			Documents: []model.Document{
				{Type: "gst_certificate", Status: model.DocumentVerified, FileURL: "/docs/greenleaf-gst.pdf"},
				{Type: "pan_card", Status: model.DocumentVerified, FileURL: "/docs/greenleaf-pan.pdf"},
			},
		},
		{
			BusinessName: "Kanchi Weaves", ContactPerson: "R. Subramanian",
			Email: "contact@kanchiweaves.example", Phone: "+91-9000000002",
			VerificationStatus: model.SupplierPending,
			Documents: []model.Document{
				{Type: "gst_certificate", Status: model.DocumentPending, FileURL: "/docs/kanchi-gst.pdf"},
			},
		},
		{
			BusinessName: "Deccan Brassworks", ContactPerson: "Meera Kulkarni",
			Email: "sales@deccanbrass.example", Phone: "+91-9000000003",
			VerificationStatus: model.SupplierRejected,
		},
	}
	if err := db.Create(&suppliers).Error; err != nil {
		return err
	}

	original := int64(249900)
	products := []model.Product{
		{
			Name: "Handloom Cotton Saree", Description: "Soft handloom cotton, natural dyes",
			SKU: "SR-001", Price: 189900, OriginalPrice: &original,
			Status: model.ProductActive, Category: "apparel", SupplierID: suppliers[1].ID,
			Images: []model.ProductImage{
				{URL: "/img/saree-front.jpg", Position: 0},
				{URL: "/img/saree-detail.jpg", Position: 1},
			},
		},
		{
			Name: "Brass Diya Set (6 pc)", Description: "Hand-cast brass diyas",
			SKU: "HD-002", Price: 64900,
			Status: model.ProductApproved, Category: "home-decor", SupplierID: suppliers[2].ID,
			Images: []model.ProductImage{{URL: "/img/diya-set.jpg", Position: 0}},
		},
		{
			Name: "Organic Green Tea 250g", Description: "Single-estate, first flush",
			SKU: "GR-003", Price: 39900,
			Status: model.ProductPending, Category: "grocery", SupplierID: suppliers[0].ID,
		},
		{
			Name: "Organic Tulsi Honey 500g", Description: "Raw, unfiltered",
			SKU: "GR-004", Price: 44900,
			Status: model.ProductPending, Category: "grocery", SupplierID: suppliers[0].ID,
		},
		{
			Name: "Terracotta Planter", Description: "Hand-thrown terracotta",
			SKU: "HD-005", Price: 29900,
			Status: model.ProductInactive, Category: "home-decor", SupplierID: suppliers[2].ID,
		},
	}
	for i := range products {
		if err := products[i].Validate(); err != nil {
			return err
		}
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	statuses := []model.OrderStatus{
		model.OrderPending, model.OrderConfirmed, model.OrderProcessing,
		model.OrderShipped, model.OrderDelivered, model.OrderCancelled,
	}
	for i, st := range statuses {
		item := model.OrderItem{
			ProductName: products[i%len(products)].Name,
			UnitPrice:   products[i%len(products)].Price,
			Quantity:    1 + i%3,
		}
		item.Normalize()
		order := model.Order{
			OrderNo:       fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), uuid.NewString()[:8]),
			Status:        st,
			PaymentStatus: "paid",
			TotalAmount:   item.Subtotal,
			Items:         []model.OrderItem{item},
			ShipLine1:     "221 MG Road",
			ShipCity:      "Bengaluru",
			ShipState:     "Karnataka",
			ShipPincode:   "560001",
		}
		if err := db.Create(&order).Error; err != nil {
			return err
		}
	}
	return nil
}
