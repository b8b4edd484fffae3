// Package fallback 提供后端不可达时的占位数据，让界面保持「空但可用」。
// 默认关闭；只有显式开启（开发环境）才会生效。占位实体不携带数据库 ID
// （保持零值），服务端路由拒绝 id=0 的变更，误把它们塞进变更请求也
// 不可能命中真实数据。
package fallback

import (
	"marketplace/internal/model"
)

// Store 占位数据源。零值即「关闭」。
type Store struct {
	enabled bool
}

// New 创建占位数据源。enabled=false 时所有方法返回空集。
func New(enabled bool) *Store {
	return &Store{enabled: enabled}
}

// Enabled 是否启用。
func (s *Store) Enabled() bool { return s.enabled }

// Products 占位商品。
func (s *Store) Products() []model.Product {
	if !s.enabled {
		return nil
	}
	original := int64(249900)
	return []model.Product{
		{
			Name: "Handloom Cotton Saree", SKU: "FALLBACK-SR-001",
			Price: 189900, OriginalPrice: &original,
			Status: model.ProductActive, Category: "apparel",
		},
		{
			Name: "Brass Diya Set (6 pc)", SKU: "FALLBACK-HD-002",
			Price: 64900, Status: model.ProductActive, Category: "home-decor",
		},
		{
			Name: "Organic Green Tea 250g", SKU: "FALLBACK-GR-003",
			Price: 39900, Status: model.ProductPending, Category: "grocery",
		},
	}
}

// Orders 占位订单。
func (s *Store) Orders() []model.Order {
	if !s.enabled {
		return nil
	}
	items := []model.OrderItem{
		{ProductName: "Handloom Cotton Saree", UnitPrice: 189900, Quantity: 1, Subtotal: 189900},
	}
	return []model.Order{
		{OrderNo: "FALLBACK-ORD-0001", Status: model.OrderPending, PaymentStatus: "pending",
			TotalAmount: 189900, Items: items},
		{OrderNo: "FALLBACK-ORD-0002", Status: model.OrderShipped, PaymentStatus: "paid",
			TotalAmount: 64900, Items: []model.OrderItem{
				{ProductName: "Brass Diya Set (6 pc)", UnitPrice: 64900, Quantity: 1, Subtotal: 64900},
			}},
	}
}

// Suppliers 占位供应商。
func (s *Store) Suppliers() []model.Supplier {
	if !s.enabled {
		return nil
	}
	return []model.Supplier{
		{BusinessName: "Greenleaf Organics", ContactPerson: "Asha Nair",
			Email: "hello@greenleaforganics.example", Phone: "+91-9000000001",
			VerificationStatus: model.SupplierVerified},
		{BusinessName: "Kanchi Weaves", ContactPerson: "R. Subramanian",
			Email: "contact@kanchiweaves.example", Phone: "+91-9000000002",
			VerificationStatus: model.SupplierPending},
	}
}
