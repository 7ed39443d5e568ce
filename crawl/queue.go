package crawl

// Queue is a FIFO of chapter URLs that drops anything already seen.
type Queue struct {
	items []string
	seen  map[string]struct{}
	next  int
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{seen: make(map[string]struct{})}
}

// Add enqueues a URL and reports whether it was new.
func (q *Queue) Add(url string) bool {
	if _, ok := q.seen[url]; ok {
		return false
	}
	q.seen[url] = struct{}{}
	q.items = append(q.items, url)
	return true
}

// HasNext returns true if there are unprocessed URLs.
func (q *Queue) HasNext() bool {
	return q.next < len(q.items)
}

// Next returns the next unprocessed URL and advances the pointer.
func (q *Queue) Next() string {
	url := q.items[q.next]
	q.next++
	return url
}

// Visited returns the total number of unique URLs seen.
func (q *Queue) Visited() int {
	return len(q.seen)
}

// All returns every discovered URL in discovery order.
func (q *Queue) All() []string {
	return append([]string(nil), q.items...)
}
