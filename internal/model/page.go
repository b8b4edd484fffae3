package model

// Pagination 列表分页状态。Page 从 1 开始。
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PageCount 计算总页数 ceil(total/limit)。limit<=0 时按 1 页处理。
func PageCount(total int64, limit int) int {
	if limit <= 0 {
		return 1
	}
	n := int((total + int64(limit) - 1) / int64(limit))
	if n < 1 {
		n = 1
	}
	return n
}

// ClampPage 把页码收敛到 [1, max(totalPages,1)]。
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Envelope 列表接口统一返回的信封：{items, total, total_pages}。
type Envelope[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}
