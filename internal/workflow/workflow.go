// Package workflow 定义订单/商品/供应商的状态流转表。
// 表是唯一事实来源：界面据此渲染操作按钮，服务端据此校验状态变更，
// 两边不允许各写一份条件判断。
package workflow

import (
	"fmt"

	"marketplace/internal/model"
)

// Action 一次界面操作 / 一次状态变更请求。
type Action string

const (
	ActionView    Action = "view"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionEnable  Action = "enable"
	ActionDisable Action = "disable"
	ActionDelete  Action = "delete"
	ActionConfirm Action = "confirm"
	ActionProcess Action = "process"
	ActionShip    Action = "ship"
	ActionDeliver Action = "deliver"
	ActionCancel  Action = "cancel"
)

// Rule 一条出边：触发动作、目标状态、是否必须附说明。
type Rule[S ~string] struct {
	Action       Action
	To           S
	NeedsComment bool
}

// Graph 某类实体的全部合法流转。键不存在即该状态为终态。
type Graph[S ~string] map[S][]Rule[S]

// Actions 返回某状态的全部出边动作，顺序与表一致。
func (g Graph[S]) Actions(status S) []Action {
	rules := g[status]
	out := make([]Action, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Action)
	}
	return out
}

// Resolve 查找 status 上的 action 出边；非法流转返回错误。
func (g Graph[S]) Resolve(status S, action Action) (Rule[S], error) {
	for _, r := range g[status] {
		if r.Action == action {
			return r, nil
		}
	}
	return Rule[S]{}, fmt.Errorf("illegal transition: action %q not allowed in status %q", action, status)
}

// RuleTo 按目标状态反查出边。PATCH /status 这类接口收到的是目标
// 状态而不是动作名，服务端用它校验流转合法性。
func (g Graph[S]) RuleTo(from, to S) (Rule[S], bool) {
	for _, r := range g[from] {
		if r.To == to {
			return r, true
		}
	}
	return Rule[S]{}, false
}

// Terminal 判断状态是否无出边。
func (g Graph[S]) Terminal(status S) bool {
	return len(g[status]) == 0
}

// Orders 订单状态图。delivered/cancelled/refunded 为终态；
// shipped 之后不可取消，只能确认送达。
var Orders = Graph[model.OrderStatus]{
	model.OrderPending: {
		{Action: ActionConfirm, To: model.OrderConfirmed},
		{Action: ActionCancel, To: model.OrderCancelled},
	},
	model.OrderConfirmed: {
		{Action: ActionProcess, To: model.OrderProcessing},
		{Action: ActionShip, To: model.OrderShipped},
		{Action: ActionCancel, To: model.OrderCancelled},
	},
	model.OrderProcessing: {
		{Action: ActionShip, To: model.OrderShipped},
		{Action: ActionCancel, To: model.OrderCancelled},
	},
	model.OrderShipped: {
		{Action: ActionDeliver, To: model.OrderDelivered},
	},
}

// Products 商品状态图。pending 只能走审核；审核通过后在
// active/inactive 间切换（注意 enable/disable 不是幂等操作，每次
// 调用翻转一次）。驳回理由必填，通过备注可选。
var Products = Graph[model.ProductStatus]{
	model.ProductPending: {
		{Action: ActionApprove, To: model.ProductApproved},
		{Action: ActionReject, To: model.ProductRejected, NeedsComment: true},
	},
	model.ProductApproved: {
		{Action: ActionEnable, To: model.ProductActive},
		{Action: ActionDisable, To: model.ProductInactive},
	},
	model.ProductActive: {
		{Action: ActionDisable, To: model.ProductInactive},
	},
	model.ProductInactive: {
		{Action: ActionEnable, To: model.ProductActive},
	},
}

// Suppliers 供应商认证图。没有终态：verified 仍可驳回，rejected 仍可
// 重新通过。对 verified 再次 approve 是允许的空操作（幂等）。
// suspended 与 pending 同样按「未认证」处理。
var Suppliers = Graph[model.VerificationStatus]{
	model.SupplierPending: {
		{Action: ActionApprove, To: model.SupplierVerified},
		{Action: ActionReject, To: model.SupplierRejected},
	},
	model.SupplierVerified: {
		{Action: ActionApprove, To: model.SupplierVerified},
		{Action: ActionReject, To: model.SupplierRejected},
	},
	model.SupplierRejected: {
		{Action: ActionApprove, To: model.SupplierVerified},
	},
	model.SupplierSuspended: {
		{Action: ActionApprove, To: model.SupplierVerified},
		{Action: ActionReject, To: model.SupplierRejected},
	},
}

// OrderActions 订单行操作集 = 状态图出边，不多不少。
func OrderActions(status model.OrderStatus) []Action {
	return Orders.Actions(status)
}

// ProductActions 商品行操作集：view + 状态图出边；非 pending 状态额外
// 提供 delete（pending 商品先走审核，不直接提供删除入口）。
// delete 发起前要求界面先弹确认。
func ProductActions(status model.ProductStatus) []Action {
	out := []Action{ActionView}
	out = append(out, Products.Actions(status)...)
	if status != model.ProductPending {
		out = append(out, ActionDelete)
	}
	return out
}

// SupplierActions 供应商行操作集 = 状态图出边。
func SupplierActions(status model.VerificationStatus) []Action {
	return Suppliers.Actions(status)
}
