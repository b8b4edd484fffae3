package screen

import (
	"context"
	"fmt"
	"strings"

	"marketplace/internal/workflow"
)

// ModalPhase 审核弹窗所处阶段。
type ModalPhase string

const (
	ModalClosed     ModalPhase = "closed"
	ModalOpen       ModalPhase = "open"
	ModalSubmitting ModalPhase = "submitting"
)

// MutateFunc 弹窗确认后要执行的变更调用。
type MutateFunc func(ctx context.Context) error

// Modal 详情/审核弹窗状态机：
//
//	closed → open(entity, action) → submitting → closed（成功）
//	                              ↘ open + 错误信息（失败）
//	任意时刻 Cancel 回到 closed。
//
// 驳回类动作必须先填非空说明才允许提交；提交中禁止再次提交。
type Modal struct {
	phase        ModalPhase
	entityID     uint
	action       workflow.Action
	needsComment bool
	comment      string
	errMsg       string
}

// NewModal 创建关闭状态的弹窗。
func NewModal() *Modal {
	return &Modal{phase: ModalClosed}
}

// Open 绑定一个实体与动作并打开弹窗。needsComment 来自状态流转表。
func (m *Modal) Open(entityID uint, action workflow.Action, needsComment bool) {
	m.phase = ModalOpen
	m.entityID = entityID
	m.action = action
	m.needsComment = needsComment
	m.comment = ""
	m.errMsg = ""
}

// SetComment 更新说明文本。
func (m *Modal) SetComment(s string) {
	if m.phase == ModalOpen {
		m.comment = s
	}
}

// CanSubmit 确认按钮是否可用：必填说明为空时禁用，提交中禁用。
func (m *Modal) CanSubmit() bool {
	if m.phase != ModalOpen {
		return false
	}
	if m.needsComment && strings.TrimSpace(m.comment) == "" {
		return false
	}
	return true
}

// Submit 执行变更。成功关闭弹窗；失败保持打开并原样展示错误信息，
// 实体展示状态由调用方维持不变（确认成功后才重新拉列表）。
func (m *Modal) Submit(ctx context.Context, mutate MutateFunc) error {
	if !m.CanSubmit() {
		return fmt.Errorf("submit not allowed in phase %q", m.phase)
	}
	m.phase = ModalSubmitting
	err := mutate(ctx)
	if err != nil {
		m.phase = ModalOpen
		m.errMsg = err.Error()
		return err
	}
	m.reset()
	return nil
}

// Cancel 放弃操作，关闭弹窗。
func (m *Modal) Cancel() { m.reset() }

func (m *Modal) reset() {
	m.phase = ModalClosed
	m.entityID = 0
	m.action = ""
	m.needsComment = false
	m.comment = ""
	m.errMsg = ""
}

// Phase / EntityID / Action / Comment / Err 状态读取。
func (m *Modal) Phase() ModalPhase { return m.phase }

func (m *Modal) EntityID() uint { return m.entityID }

func (m *Modal) Action() workflow.Action { return m.action }

func (m *Modal) Comment() string { return m.comment }

func (m *Modal) Err() string { return m.errMsg }
