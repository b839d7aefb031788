package listing

// LoadMore is a growing visible-prefix cursor over a list. It holds only the
// cursor; callers pass the current items on every read.
type LoadMore struct {
	initial   int
	increment int
	loaded    int
	total     int
}

// NewLoadMore constructs a window showing initial items and growing by
// increment. Non-positive values fall back to 1.
func NewLoadMore(initial, increment int) *LoadMore {
	if initial < 1 {
		initial = 1
	}
	if increment < 1 {
		increment = 1
	}
	return &LoadMore{initial: initial, increment: increment, loaded: initial}
}

// Observe records the current item count so later LoadMore calls can clamp
// against it. Visible and HasMore call it implicitly.
func (w *LoadMore) Observe(total int) {
	if total < 0 {
		total = 0
	}
	w.total = total
}

// LoadMore advances the cursor by the increment, clamped to the last observed
// total. Once exhausted further calls are no-ops.
func (w *LoadMore) LoadMore() int {
	next := w.loaded + w.increment
	if next > w.total {
		next = w.total
	}
	if next > w.loaded {
		w.loaded = next
	}
	return w.Loaded()
}

// Reset restores the cursor to its initial value.
func (w *LoadMore) Reset() {
	w.loaded = w.initial
}

// Loaded returns the number of items currently exposed.
func (w *LoadMore) Loaded() int {
	if w.loaded > w.total {
		return w.total
	}
	return w.loaded
}

// Initial returns the configured initial count.
func (w *LoadMore) Initial() int { return w.initial }

// HasMore reports whether items beyond the window exist.
func (w *LoadMore) HasMore(total int) bool {
	w.Observe(total)
	return w.Loaded() < w.total
}

// Window returns the first Loaded() items of items.
func Window[T any](w *LoadMore, items []T) []T {
	w.Observe(len(items))
	return items[:w.Loaded()]
}

// Pager is a fixed-size page cursor addressed by 1-based page number.
type Pager struct {
	perPage int
	current int
	total   int
}

// NewPager constructs a pager starting on page 1.
func NewPager(perPage int) *Pager {
	if perPage < 1 {
		perPage = 1
	}
	return &Pager{perPage: perPage, current: 1}
}

// Observe records the current item count used to clamp navigation.
func (p *Pager) Observe(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	if p.current > p.TotalPages() {
		p.current = p.TotalPages()
	}
}

// PerPage returns the configured page size.
func (p *Pager) PerPage() int { return p.perPage }

// TotalPages is ceil(total/perPage) with a minimum of 1.
func (p *Pager) TotalPages() int {
	pages := (p.total + p.perPage - 1) / p.perPage
	if pages < 1 {
		return 1
	}
	return pages
}

// Current returns the current page number.
func (p *Pager) Current() int { return p.current }

// GoTo moves to page n clamped to [1, TotalPages].
func (p *Pager) GoTo(n int) int {
	switch {
	case n < 1:
		n = 1
	case n > p.TotalPages():
		n = p.TotalPages()
	}
	p.current = n
	return p.current
}

// Next advances one page; no-op on the last page.
func (p *Pager) Next() int {
	if p.current < p.TotalPages() {
		p.current++
	}
	return p.current
}

// Prev goes back one page; no-op on the first page.
func (p *Pager) Prev() int {
	if p.current > 1 {
		p.current--
	}
	return p.current
}

// Reset returns to page 1.
func (p *Pager) Reset() {
	p.current = 1
}

// HasNext reports whether a later page exists.
func (p *Pager) HasNext() bool { return p.current < p.TotalPages() }

// HasPrev reports whether an earlier page exists.
func (p *Pager) HasPrev() bool { return p.current > 1 }

// Page returns the slice of items on the current page.
func Page[T any](p *Pager, items []T) []T {
	p.Observe(len(items))
	start := (p.current - 1) * p.perPage
	if start >= len(items) {
		return items[:0]
	}
	end := start + p.perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
