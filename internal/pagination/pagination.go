// Package pagination computes page windows and navigation metadata for
// list endpoints.
package pagination

// Meta describes the navigation state of a page window. PrevPage and
// NextPage are nil when there is no page in that direction.
type Meta struct {
	FirstPage   int  `json:"firstPage"`
	LastPage    int  `json:"lastPage"`
	PageSize    int  `json:"pageSize"`
	PrevPage    *int `json:"prevPage"`
	NextPage    *int `json:"nextPage"`
	CurrentPage int  `json:"currentPage"`
}

// Compute returns the navigation metadata for currentPage. There is always
// at least one page, even with zero rows. A currentPage beyond the last
// page is not an error: NextPage is nil and PrevPage still points to
// currentPage-1, so out-of-range requests yield an empty result set.
func Compute(currentPage, pageSize int, totalRows int64) Meta {
	lastPage := int((totalRows + int64(pageSize) - 1) / int64(pageSize))
	if lastPage < 1 {
		lastPage = 1
	}
	meta := Meta{
		FirstPage:   1,
		LastPage:    lastPage,
		PageSize:    pageSize,
		CurrentPage: currentPage,
	}
	if currentPage > meta.FirstPage {
		prev := currentPage - 1
		meta.PrevPage = &prev
	}
	if currentPage < lastPage {
		next := currentPage + 1
		meta.NextPage = &next
	}
	return meta
}

// Offset returns the number of rows to skip for currentPage.
func Offset(currentPage, pageSize int) int {
	return pageSize * (currentPage - 1)
}
