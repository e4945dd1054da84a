package explore

// Page is the pagination state: a 1-based page number and a positive page
// size.
type Page struct {
	Number int
	Size   int
}

// TotalPages returns ceil(total/size), but at least 1 so an empty collection
// still has a "page 1" for the presentation layer to stand on.
func TotalPages(total, size int) int {
	if size <= 0 {
		return 1
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces a page number into [1, TotalPages(total, size)].
func ClampPage(number, total, size int) int {
	if number < 1 {
		return 1
	}
	if max := TotalPages(total, size); number > max {
		return max
	}
	return number
}

// Paginate slices one page out of the ordered collection. A page number past
// the available range yields an empty slice rather than panicking; keeping
// the number in range is the state machine's job, not the slicer's.
func Paginate[E any](items []E, number, size int) []E {
	if size <= 0 || number < 1 {
		return nil
	}
	start := (number - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
