package domain

// Default pagination values used when a request omits qn/qs.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
)

// Page selects one page of a listing: Number is 1-indexed, Size is the
// number of items per page.
type Page struct {
	Number int `json:"qn"`
	Size   int `json:"qs"`
}

// DefaultPage returns the first page with the default size.
func DefaultPage() Page {
	return Page{Number: DefaultPageNumber, Size: DefaultPageSize}
}

// Validate rejects non-positive page numbers and sizes.
func (p Page) Validate() error {
	if p.Number < 1 || p.Size < 1 {
		return ErrInvalidPage
	}
	return nil
}

// Limit returns the SQL LIMIT for the page.
func (p Page) Limit() int {
	return p.Size
}

// Offset returns the SQL OFFSET for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Next returns the following page with the same size.
func (p Page) Next() Page {
	return Page{Number: p.Number + 1, Size: p.Size}
}
