package crawl

// frontier is a FIFO of page URLs that admits each URL once.
type frontier struct {
	items []string
	seen  map[string]struct{}
	next  int
}

func newFrontier() *frontier {
	return &frontier{seen: make(map[string]struct{})}
}

// push enqueues u unless it was seen before and reports whether it was added.
func (f *frontier) push(u string) bool {
	if _, ok := f.seen[u]; ok {
		return false
	}
	f.seen[u] = struct{}{}
	f.items = append(f.items, u)
	return true
}

func (f *frontier) pending() bool { return f.next < len(f.items) }

func (f *frontier) pop() string {
	u := f.items[f.next]
	f.next++
	return u
}

// size counts every URL ever admitted.
func (f *frontier) size() int { return len(f.items) }

// urls returns the admitted URLs in discovery order.
func (f *frontier) urls() []string { return f.items }
