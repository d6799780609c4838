package repositories

// ===========================================================================
// Repository Base Types
// Các struct dùng chung cho tất cả repositories
// ===========================================================================

// FindOptions tùy chọn query cho các method Find
type FindOptions struct {
	// Offset vị trí bắt đầu (cho phân trang)
	Offset int

	// Limit số lượng records tối đa
	Limit int

	// OrderBy cột để sắp xếp
	OrderBy string

	// OrderDir hướng sắp xếp: "asc" hoặc "desc"
	OrderDir string

	// Filters các điều kiện filter
	Filters map[string]interface{}
}

// SetDefaults thiết lập giá trị mặc định cho FindOptions
func (o *FindOptions) SetDefaults() {
	if o.Limit == 0 {
		o.Limit = 20
	}
	if o.OrderBy == "" {
		o.OrderBy = "created_at"
	}
	if o.OrderDir == "" {
		o.OrderDir = "desc"
	}
}

// GetOrderClause trả về chuỗi ORDER BY
func (o *FindOptions) GetOrderClause() string {
	return o.OrderBy + " " + o.OrderDir
}
