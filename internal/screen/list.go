// Package screen 实现无界面的屏幕控制器：分页列表与审核弹窗。
// 只管状态与流程，不管像素；终端或任何前端都可以套在外面渲染。
package screen

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"marketplace/internal/client"
	"marketplace/internal/model"
)

// Fetcher 列表数据源，通常绑定 client 的某个 List 方法。
type Fetcher[T any] func(ctx context.Context, p client.ListParams) (model.Envelope[T], error)

// List 分页列表控制器。
//
// 约定：
//   - 页码/过滤条件变更触发重新拉取；搜索词只在已拉取的当前页上过滤，
//     不产生网络请求（搜索范围仅限当前页）。
//   - 每次拉取带自增代号，慢的旧响应回来时直接丢弃，不会覆盖新状态。
//   - 拉取失败时展示错误并保留上次状态；配置了占位数据源才会填占位。
type List[T any] struct {
	fetch      Fetcher[T]
	fallback   func() []T
	searchText func(T) []string
	log        *logrus.Entry

	gen atomic.Uint64

	mu            sync.Mutex
	page          int
	limit         int
	filters       map[string]string
	searchTerm    string
	items         []T
	total         int64
	totalPages    int
	loading       bool
	errMsg        string
	usingFallback bool
}

// ListOption 控制器可选配置。
type ListOption[T any] func(*List[T])

// WithFallback 注入占位数据源（默认没有）。
func WithFallback[T any](fn func() []T) ListOption[T] {
	return func(l *List[T]) { l.fallback = fn }
}

// WithSearchFields 指定参与本页搜索的文本字段。
func WithSearchFields[T any](fn func(T) []string) ListOption[T] {
	return func(l *List[T]) { l.searchText = fn }
}

// NewList 创建列表控制器，初始在第 1 页。
func NewList[T any](fetch Fetcher[T], limit int, opts ...ListOption[T]) *List[T] {
	l := &List[T]{
		fetch:   fetch,
		page:    1,
		limit:   limit,
		filters: map[string]string{},
		log:     logrus.WithField("component", "screen.list"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Mount 首次挂载，拉第一页。
func (l *List[T]) Mount(ctx context.Context) { l.refetch(ctx) }

// Refresh 用当前页码与过滤条件重新拉取（变更成功后调用）。
func (l *List[T]) Refresh(ctx context.Context) { l.refetch(ctx) }

// Retry 错误横幅上的手动重试。没有自动重试。
func (l *List[T]) Retry(ctx context.Context) { l.refetch(ctx) }

// SetPage 跳页。已知总页数时先收敛到合法区间，避免请求不存在的页。
func (l *List[T]) SetPage(ctx context.Context, page int) {
	l.mu.Lock()
	if l.totalPages > 0 {
		page = model.ClampPage(page, l.totalPages)
	} else if page < 1 {
		page = 1
	}
	if page == l.page {
		l.mu.Unlock()
		return
	}
	l.page = page
	l.mu.Unlock()
	l.refetch(ctx)
}

// NextPage / PrevPage 翻页，越界时不动作。
func (l *List[T]) NextPage(ctx context.Context) {
	if l.CanNext() {
		l.SetPage(ctx, l.Page()+1)
	}
}

func (l *List[T]) PrevPage(ctx context.Context) {
	if l.CanPrev() {
		l.SetPage(ctx, l.Page()-1)
	}
}

// SetFilter 变更过滤条件并回到第 1 页重新拉取。
// 空值或 "all" 表示去掉该条件；条件没有实际变化时不发请求。
func (l *List[T]) SetFilter(ctx context.Context, key, value string) {
	l.mu.Lock()
	changed := false
	if value == "" || strings.EqualFold(value, "all") {
		if _, ok := l.filters[key]; ok {
			delete(l.filters, key)
			changed = true
		}
	} else if l.filters[key] != value {
		l.filters[key] = value
		changed = true
	}
	if !changed {
		l.mu.Unlock()
		return
	}
	l.page = 1
	l.mu.Unlock()
	l.refetch(ctx)
}

// SetSearch 设置搜索词。只影响 VisibleItems，不触发网络请求。
func (l *List[T]) SetSearch(term string) {
	l.mu.Lock()
	l.searchTerm = term
	l.mu.Unlock()
}

func (l *List[T]) refetch(ctx context.Context) {
	gen := l.gen.Add(1)

	l.mu.Lock()
	l.loading = true
	p := client.ListParams{Page: l.page, Limit: l.limit, Filters: cloneFilters(l.filters)}
	l.mu.Unlock()

	env, err := l.fetch(ctx, p)

	l.mu.Lock()
	defer l.mu.Unlock()
	// 代号对不上说明期间又发起过新的拉取，这份响应已经过期。
	// 检查必须与写入在同一把锁里：拿锁前检查的话，检查通过到写入
	// 之间仍可能被更新的响应插队，旧数据会反过来覆盖新数据。
	if gen != l.gen.Load() {
		l.log.WithField("gen", gen).Debug("discard stale response")
		return
	}
	l.loading = false
	if err != nil {
		l.errMsg = err.Error()
		if l.fallback != nil {
			l.items = l.fallback()
			l.usingFallback = true
			l.total = 0
			l.totalPages = 1
		}
		return
	}
	l.errMsg = ""
	l.usingFallback = false
	l.items = env.Items
	l.total = env.Total
	l.totalPages = env.TotalPages
	if l.totalPages < 1 {
		l.totalPages = 1
	}
	if l.page > l.totalPages {
		l.page = l.totalPages
	}
}

// VisibleItems 返回应展示的行：对当前页做大小写不敏感的子串匹配。
func (l *List[T]) VisibleItems() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	term := strings.ToLower(strings.TrimSpace(l.searchTerm))
	if term == "" || l.searchText == nil {
		out := make([]T, len(l.items))
		copy(out, l.items)
		return out
	}
	var out []T
	for _, it := range l.items {
		for _, field := range l.searchText(it) {
			if strings.Contains(strings.ToLower(field), term) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// ShowPager 仅当 total_pages > 1 才渲染分页控件。
func (l *List[T]) ShowPager() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalPages > 1
}

// CanPrev / CanNext 翻页按钮的可用态。
func (l *List[T]) CanPrev() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page > 1
}

func (l *List[T]) CanNext() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page < l.totalPages
}

// RangeText 分页范围文案："((page-1)*limit)+1 - min(page*limit,total) of total"。
func (l *List[T]) RangeText() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.total == 0 {
		return "0 of 0"
	}
	from := int64(l.page-1)*int64(l.limit) + 1
	to := int64(l.page) * int64(l.limit)
	if to > l.total {
		to = l.total
	}
	return fmt.Sprintf("%d-%d of %d", from, to, l.total)
}

// Filter 返回某个过滤条件的当前取值，未设置时为空串。
func (l *List[T]) Filter(key string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filters[key]
}

// Page / TotalPages / Total / Loading / Err / UsingFallback 状态读取。
func (l *List[T]) Page() int { l.mu.Lock(); defer l.mu.Unlock(); return l.page }

func (l *List[T]) TotalPages() int { l.mu.Lock(); defer l.mu.Unlock(); return l.totalPages }

func (l *List[T]) Total() int64 { l.mu.Lock(); defer l.mu.Unlock(); return l.total }

func (l *List[T]) Loading() bool { l.mu.Lock(); defer l.mu.Unlock(); return l.loading }

func (l *List[T]) Err() string { l.mu.Lock(); defer l.mu.Unlock(); return l.errMsg }

func (l *List[T]) UsingFallback() bool { l.mu.Lock(); defer l.mu.Unlock(); return l.usingFallback }

func cloneFilters(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
