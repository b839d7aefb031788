package listing

// BoundLoadMore ties a load-more window to the key of the filter that
// produced its items. Syncing with a different key resets the cursor, so a
// changed filter can never show a stale prefix.
type BoundLoadMore struct {
	window *LoadMore
	key    string
}

// NewBoundLoadMore constructs a window bound to key.
func NewBoundLoadMore(initial, increment int, key string) *BoundLoadMore {
	return &BoundLoadMore{window: NewLoadMore(initial, increment), key: key}
}

// Sync rebinds the window to key, resetting it when the key changed.
// It reports whether a reset happened.
func (b *BoundLoadMore) Sync(key string) bool {
	if key == b.key {
		return false
	}
	b.key = key
	b.window.Reset()
	return true
}

// Key returns the bound filter key.
func (b *BoundLoadMore) Key() string { return b.key }

// Window exposes the underlying cursor for LoadMore and Reset calls.
func (b *BoundLoadMore) Window() *LoadMore { return b.window }

// BoundPager ties a pager to a filter key the same way.
type BoundPager struct {
	pager *Pager
	key   string
}

// NewBoundPager constructs a pager bound to key.
func NewBoundPager(perPage int, key string) *BoundPager {
	return &BoundPager{pager: NewPager(perPage), key: key}
}

// Sync rebinds the pager to key, returning to page 1 when the key changed.
func (b *BoundPager) Sync(key string) bool {
	if key == b.key {
		return false
	}
	b.key = key
	b.pager.Reset()
	return true
}

// Key returns the bound filter key.
func (b *BoundPager) Key() string { return b.key }

// Pager exposes the underlying cursor.
func (b *BoundPager) Pager() *Pager { return b.pager }

// Slice is one read of a windowed listing.
type Slice[T any] struct {
	Items   []T
	Total   int
	Loaded  int
	HasMore bool
	Page    int
	Pages   int
}

// LoadMoreView filters items with criteria, syncs the window to the criteria
// key and returns the visible prefix.
func LoadMoreView[T Item](b *BoundLoadMore, criteria Criteria, items []T) Slice[T] {
	filtered := Apply(items, Predicates[T](criteria)...)
	b.Sync(criteria.Key())
	visible := Window(b.window, filtered)
	return Slice[T]{
		Items:   visible,
		Total:   len(filtered),
		Loaded:  len(visible),
		HasMore: b.window.HasMore(len(filtered)),
	}
}

// PageView filters items with criteria, syncs the pager to the criteria key
// and returns the current page.
func PageView[T Item](b *BoundPager, criteria Criteria, items []T) Slice[T] {
	filtered := Apply(items, Predicates[T](criteria)...)
	b.Sync(criteria.Key())
	visible := Page(b.pager, filtered)
	return Slice[T]{
		Items:   visible,
		Total:   len(filtered),
		Loaded:  len(visible),
		HasMore: b.pager.HasNext(),
		Page:    b.pager.Current(),
		Pages:   b.pager.TotalPages(),
	}
}
