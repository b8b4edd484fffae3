package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/model"
)

// 订单操作集必须与状态图出边一一对应，不多一个不少一个。
func TestOrderActionsMatchGraphExactly(t *testing.T) {
	want := map[model.OrderStatus][]Action{
		model.OrderPending:    {ActionConfirm, ActionCancel},
		model.OrderConfirmed:  {ActionProcess, ActionShip, ActionCancel},
		model.OrderProcessing: {ActionShip, ActionCancel},
		model.OrderShipped:    {ActionDeliver},
		model.OrderDelivered:  {},
		model.OrderCancelled:  {},
		model.OrderRefunded:   {},
	}
	for status, actions := range want {
		assert.ElementsMatch(t, actions, OrderActions(status), "status %s", status)
	}
}

func TestOrderTerminalStates(t *testing.T) {
	for _, status := range []model.OrderStatus{model.OrderDelivered, model.OrderCancelled, model.OrderRefunded} {
		assert.True(t, Orders.Terminal(status), "status %s", status)
	}
	assert.False(t, Orders.Terminal(model.OrderShipped))
}

func TestOrderShippedCannotCancel(t *testing.T) {
	_, err := Orders.Resolve(model.OrderShipped, ActionCancel)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal transition")
}

func TestProductReviewRules(t *testing.T) {
	approve, err := Products.Resolve(model.ProductPending, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, model.ProductApproved, approve.To)
	assert.False(t, approve.NeedsComment, "approval notes are optional")

	reject, err := Products.Resolve(model.ProductPending, ActionReject)
	require.NoError(t, err)
	assert.Equal(t, model.ProductRejected, reject.To)
	assert.True(t, reject.NeedsComment, "rejection reason is mandatory")

	// 只有 pending 能审
	_, err = Products.Resolve(model.ProductActive, ActionApprove)
	assert.Error(t, err)
}

// 场景：pending 审核通过后操作集变为 view/enable/disable/delete。
func TestProductActionSets(t *testing.T) {
	assert.Equal(t,
		[]Action{ActionView, ActionApprove, ActionReject},
		ProductActions(model.ProductPending))

	assert.Equal(t,
		[]Action{ActionView, ActionEnable, ActionDisable, ActionDelete},
		ProductActions(model.ProductApproved))

	assert.Equal(t,
		[]Action{ActionView, ActionDisable, ActionDelete},
		ProductActions(model.ProductActive))

	assert.Equal(t,
		[]Action{ActionView, ActionEnable, ActionDelete},
		ProductActions(model.ProductInactive))
}

// enable/disable 不是幂等开关：每次调用都要翻转一次状态。
func TestProductToggleFlipsExactlyOncePerCall(t *testing.T) {
	status := model.ProductActive
	for i := 0; i < 4; i++ {
		var action Action
		if status == model.ProductActive {
			action = ActionDisable
		} else {
			action = ActionEnable
		}
		rule, err := Products.Resolve(status, action)
		require.NoError(t, err)
		require.NotEqual(t, status, rule.To, "call %d must flip", i)
		status = rule.To
	}
	assert.Equal(t, model.ProductActive, status, "even number of flips returns to start")
}

// 供应商没有终态：verified 可驳回，rejected 可重新通过。
func TestSupplierGraphHasNoTerminalState(t *testing.T) {
	assert.False(t, Suppliers.Terminal(model.SupplierVerified))
	assert.False(t, Suppliers.Terminal(model.SupplierRejected))

	reject, err := Suppliers.Resolve(model.SupplierVerified, ActionReject)
	require.NoError(t, err)
	assert.Equal(t, model.SupplierRejected, reject.To)

	approve, err := Suppliers.Resolve(model.SupplierRejected, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, model.SupplierVerified, approve.To)
}

// 对 verified 再次 approve 是合法的空操作。
func TestSupplierReApproveIsNoop(t *testing.T) {
	rule, err := Suppliers.Resolve(model.SupplierVerified, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, model.SupplierVerified, rule.To)
}

func TestRuleTo(t *testing.T) {
	rule, ok := Orders.RuleTo(model.OrderPending, model.OrderConfirmed)
	require.True(t, ok)
	assert.Equal(t, ActionConfirm, rule.Action)

	_, ok = Orders.RuleTo(model.OrderDelivered, model.OrderPending)
	assert.False(t, ok)

	_, ok = Orders.RuleTo(model.OrderShipped, model.OrderCancelled)
	assert.False(t, ok, "shipped orders can only be delivered")
}
