// internal/pkg/pagination/pagination.go
package pagination

// Pagination 是列表查询的分页元信息。
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// Normalize 把请求中的分页参数收敛到合法范围。
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// New 计算分页元信息，pages = ceil(total/limit)。
func New(page, limit int, total int64) Pagination {
	pages := (total + int64(limit) - 1) / int64(limit)
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Offset 返回该页的记录偏移量。
func Offset(page, limit int) int {
	return (page - 1) * limit
}
