package kernel

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationOptions is the requested page (1-indexed) and page size
type PaginationOptions struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"page_size" query:"page_size"`
}

// Page describes where a slice sits in the full collection
type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// HasNext reports whether a following page exists
func (p Page) HasNext() bool { return p.Number < p.Pages }

// HasPrev reports whether a preceding page exists
func (p Page) HasPrev() bool { return p.Number > 1 }

// Paginated is one page of items
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// Normalize fills in defaults and bounds the page size. The page is only
// lower-bounded here; the upper bound depends on the collection.
func (o PaginationOptions) Normalize(defaultSize int) PaginationOptions {
	if defaultSize < 1 {
		defaultSize = DefaultPageSize
	}
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize < 1 {
		o.PageSize = defaultSize
	}
	if o.PageSize > MaxPageSize {
		o.PageSize = MaxPageSize
	}
	return o
}

// TotalPages is ceil(total/size)
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate slices items into the requested page. Pages past the end are
// clamped to the last page, so the result is never an out-of-range slice.
func Paginate[T any](items []T, opts PaginationOptions) Paginated[T] {
	opts = opts.Normalize(DefaultPageSize)
	total := len(items)
	pages := TotalPages(total, opts.PageSize)

	page := opts.Page
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}

	start := min((page-1)*opts.PageSize, total)
	end := min(start+opts.PageSize, total)

	out := make([]T, end-start)
	copy(out, items[start:end])

	return Paginated[T]{
		Items: out,
		Page: Page{
			Number: page,
			Size:   opts.PageSize,
			Total:  total,
			Pages:  pages,
		},
		Empty: len(out) == 0,
	}
}

// MapPaginated converts the items of a page, keeping its metadata
func MapPaginated[T, U any](p Paginated[T], fn func(T) U) Paginated[U] {
	items := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, fn(it))
	}
	return Paginated[U]{Items: items, Page: p.Page, Empty: p.Empty}
}
