package views

// Paginator keeps a cursor inside a scrolling window over a list
type Paginator struct {
	pageSize   int
	pageOffset int
	cursor     int
	totalItems int
}

// NewPaginator creates a new paginator with the given page size
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Paginator{pageSize: pageSize}
}

// SetPageSize changes the window height, keeping the cursor visible
func (p *Paginator) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	p.pageSize = size
	p.scrollToCursor()
}

// SetTotal sets the total number of items
func (p *Paginator) SetTotal(total int) {
	p.totalItems = total
	if p.cursor >= total {
		p.cursor = max(total-1, 0)
	}
	if p.pageOffset > p.cursor {
		p.pageOffset = p.cursor
	}
	p.scrollToCursor()
}

// Cursor returns the current cursor position (absolute index)
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor, clamped to the list
func (p *Paginator) SetCursor(pos int) {
	p.cursor = max(0, min(pos, p.totalItems-1))
	p.scrollToCursor()
}

// CursorUp moves the cursor up by one
func (p *Paginator) CursorUp() bool {
	if p.cursor > 0 {
		p.cursor--
		p.scrollToCursor()
		return true
	}
	return false
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor < p.totalItems-1 {
		p.cursor++
		p.scrollToCursor()
		return true
	}
	return false
}

// VisibleRange returns the start and end indices of the window
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.pageOffset
	end = min(p.pageOffset+p.pageSize, p.totalItems)
	return
}

// NextPage moves the window down one page
func (p *Paginator) NextPage() {
	p.SetCursor(p.cursor + p.pageSize)
}

// PrevPage moves the window up one page
func (p *Paginator) PrevPage() {
	p.SetCursor(p.cursor - p.pageSize)
}

// scrollToCursor scrolls by the minimum amount that shows the cursor
func (p *Paginator) scrollToCursor() {
	if p.cursor < p.pageOffset {
		p.pageOffset = p.cursor
	} else if p.cursor >= p.pageOffset+p.pageSize {
		p.pageOffset = p.cursor - p.pageSize + 1
	}
	if p.pageOffset < 0 {
		p.pageOffset = 0
	}
}
