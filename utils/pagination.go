package utils

import "strconv"

// PostsPerPage is the page size of every listing page.
const PostsPerPage = 10

// Page describes one page of a paginated listing, handed to the
// presentation layer as page_obj.
type Page struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_previous"`
}

// ParsePage interprets the raw page query parameter. Anything that is
// not a positive integer means the first page.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate clamps the requested page into range and returns page
// metadata plus the query offset. A page beyond the end resolves to
// the last page, and an empty result set still has one (empty) page;
// out-of-range input is never an error.
func Paginate(total int64, page, size int) (Page, int) {
	if size < 1 {
		size = PostsPerPage
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Page{
		Number:     page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, (page - 1) * size
}
