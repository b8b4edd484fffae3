package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledReturnsNothing(t *testing.T) {
	s := New(false)
	assert.False(t, s.Enabled())
	assert.Nil(t, s.Products())
	assert.Nil(t, s.Orders())
	assert.Nil(t, s.Suppliers())
}

// 占位实体不携带数据库 ID；路由层拒绝 id=0 的变更，
// 所以它们永远不可能被当成真实行改到。
func TestEntriesCarryNoDatabaseID(t *testing.T) {
	s := New(true)
	for _, p := range s.Products() {
		assert.Zero(t, p.ID, "product %q", p.Name)
	}
	for _, o := range s.Orders() {
		assert.Zero(t, o.ID, "order %s", o.OrderNo)
	}
	for _, sup := range s.Suppliers() {
		assert.Zero(t, sup.ID, "supplier %q", sup.BusinessName)
	}
}
