package dto

// ===========================================================================
// Request DTOs
// ===========================================================================

// ListQuery holds pagination query parameters for list endpoints
type ListQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// SetDefaults fills in sane pagination defaults
func (q *ListQuery) SetDefaults() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
}
