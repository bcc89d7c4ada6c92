package search

// MaxResults is the number of results the search API serves for any query.
const MaxResults = 1000

// Ellipsis marks a gap in the slice returned by PageNumbers.
const Ellipsis = -1

// pageWindow is how many pages either side of the current one are listed.
const pageWindow = 2

// TotalPages is the number of pages a client can request for total results
// at perPage results per page.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	pages := (total + perPage - 1) / perPage
	return min(pages, MaxResults/perPage)
}

// ClampPage limits page to [1, totalPages]. With no pages it returns 1.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	return max(1, min(page, totalPages))
}

// PageNumbers lists the page buttons to show: the first and last pages,
// the pages within two of current, and Ellipsis where pages are skipped.
// It returns nil when there is at most one page.
//
//	PageNumbers(7, 20) == [1 -1 5 6 7 8 9 -1 20]
func PageNumbers(current, totalPages int) []int {
	if totalPages <= 1 {
		return nil
	}

	pages := []int{1}
	if current-pageWindow > 2 {
		pages = append(pages, Ellipsis)
	}
	for i := max(2, current-pageWindow); i <= min(totalPages-1, current+pageWindow); i++ {
		pages = append(pages, i)
	}
	if current+pageWindow < totalPages-1 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, totalPages)
}
