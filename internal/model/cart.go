package model

// CartItem 购物车行，仅在会话内有效，不做持久化承诺。
type CartItem struct {
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"` // paise，加入时的快照价
}

// Cart 会话购物车，由 X-Session-ID 绑定。
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
}

// TotalAmount 当前购物车合计（paise）。
func (c Cart) TotalAmount() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}
