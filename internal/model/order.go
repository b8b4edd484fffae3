package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderStatus 订单状态，合法流转见 internal/workflow。
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"    // 已下单，待确认
	OrderConfirmed  OrderStatus = "confirmed"  // 卖家已确认
	OrderProcessing OrderStatus = "processing" // 备货中
	OrderShipped    OrderStatus = "shipped"    // 已发货
	OrderDelivered  OrderStatus = "delivered"  // 已送达（终态）
	OrderCancelled  OrderStatus = "cancelled"  // 已取消（终态）
	OrderRefunded   OrderStatus = "refunded"   // 已退款（终态）
)

// Address 收货地址快照，随订单一起返回。
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Order 市场订单。金额统一用整数 paise，避免浮点误差。
type Order struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderNo       string      `gorm:"size:64;uniqueIndex;not null" json:"order_number"`
	Status        OrderStatus `gorm:"type:VARCHAR(20);not null;default:'pending';index" json:"status"`
	PaymentStatus string      `gorm:"type:VARCHAR(20);not null;default:'pending'" json:"payment_status"`
	TotalAmount   int64       `gorm:"not null" json:"total_amount"` // 单位：paise
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	// 打平存储的收货地址，对外经 ShippingAddress 聚合输出。
	ShipLine1   string `gorm:"size:255" json:"-"`
	ShipLine2   string `gorm:"size:255" json:"-"`
	ShipCity    string `gorm:"size:128" json:"-"`
	ShipState   string `gorm:"size:128" json:"-"`
	ShipPincode string `gorm:"size:16" json:"-"`
}

func (Order) TableName() string { return "orders" }

// ShippingAddress 把打平的地址字段还原为结构。
func (o Order) ShippingAddress() Address {
	return Address{
		Line1:   o.ShipLine1,
		Line2:   o.ShipLine2,
		City:    o.ShipCity,
		State:   o.ShipState,
		Pincode: o.ShipPincode,
	}
}

// OrderItem 订单行。Subtotal 必须等于 UnitPrice*Quantity，
// 入库前由 Normalize 统一重算，禁止各处自行相乘后漂移。
type OrderItem struct {
	ID      uint `gorm:"primarykey" json:"-"`
	OrderID uint `gorm:"index" json:"-"`

	ProductName string `gorm:"size:255;not null" json:"product_name"`
	UnitPrice   int64  `gorm:"not null" json:"unit_price"` // paise
	Quantity    int    `gorm:"not null;default:1" json:"quantity"`
	Subtotal    int64  `gorm:"not null" json:"subtotal"`
}

func (OrderItem) TableName() string { return "order_items" }

// Normalize 重算 Subtotal。
func (it *OrderItem) Normalize() {
	it.Subtotal = it.UnitPrice * int64(it.Quantity)
}

// Validate 校验订单行自洽。
func (it OrderItem) Validate() error {
	if it.Quantity <= 0 {
		return fmt.Errorf("order item %q: quantity must be > 0", it.ProductName)
	}
	if it.UnitPrice < 0 {
		return fmt.Errorf("order item %q: unit price must be >= 0", it.ProductName)
	}
	if it.Subtotal != it.UnitPrice*int64(it.Quantity) {
		return fmt.Errorf("order item %q: subtotal %d != %d*%d",
			it.ProductName, it.Subtotal, it.UnitPrice, it.Quantity)
	}
	return nil
}
