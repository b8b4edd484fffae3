package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCount(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 20, 1},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3}, // 端到端场景 1
		{100, 10, 10},
		{7, 0, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, PageCount(c.total, c.limit), "total=%d limit=%d", c.total, c.limit)
	}
}

// 随机 (total, limit) 下 PageCount 恒等于 ceil(total/limit)。
func TestPageCountMatchesCeil(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		total := r.Int63n(10000)
		limit := 1 + r.Intn(100)
		want := int((total + int64(limit) - 1) / int64(limit))
		if want < 1 {
			want = 1
		}
		require.Equal(t, want, PageCount(total, limit), "total=%d limit=%d", total, limit)
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 5))
	assert.Equal(t, 1, ClampPage(-3, 5))
	assert.Equal(t, 5, ClampPage(9, 5))
	assert.Equal(t, 3, ClampPage(3, 5))
	assert.Equal(t, 1, ClampPage(4, 0), "no pages still clamps to 1")
}

// 随机生成订单行，Normalize 之后小计恒等于 单价×数量。
func TestOrderItemSubtotalProperty(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		it := OrderItem{
			ProductName: "item",
			UnitPrice:   r.Int63n(1_000_000),
			Quantity:    1 + r.Intn(50),
		}
		it.Normalize()
		require.NoError(t, it.Validate())
		require.Equal(t, it.UnitPrice*int64(it.Quantity), it.Subtotal)
	}
}

func TestOrderItemValidateRejectsDrift(t *testing.T) {
	it := OrderItem{ProductName: "saree", UnitPrice: 189900, Quantity: 2, Subtotal: 189900}
	err := it.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subtotal")
}

func TestProductValidateOriginalPrice(t *testing.T) {
	low := int64(100)
	p := Product{Name: "tea", Price: 39900, OriginalPrice: &low}
	assert.Error(t, p.Validate())

	high := int64(49900)
	p.OriginalPrice = &high
	assert.NoError(t, p.Validate())

	p.OriginalPrice = nil
	assert.NoError(t, p.Validate())
}
