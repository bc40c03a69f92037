package dto

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// PagedResponse is the list envelope used by every paginated endpoint.
type PagedResponse struct {
	TotalItems  int64       `json:"total_items"`
	Items       interface{} `json:"items"`
	CurrentPage int         `json:"current_page"`
	TotalPages  int         `json:"total_pages"`
}

func NewPagedResponse(items interface{}, total int64, page, limit int) PagedResponse {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PagedResponse{
		TotalItems:  total,
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
	}
}
