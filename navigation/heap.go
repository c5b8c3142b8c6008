package navigation

// node is one grid cell tracked by the planner
type node struct {
	x, y      int
	g, h      int
	parent    *node
	heapIndex int // Position in the open heap, -1 when not queued
}

func (n *node) f() int { return n.g + n.h }

// openHeap is a binary min-heap ordered by f, then h
// Nodes carry their own index so decreaseKey is O(log n)
type openHeap []*node

func (h openHeap) less(i, j int) bool {
	fi, fj := h[i].f(), h[j].f()
	if fi != fj {
		return fi < fj
	}
	return h[i].h < h[j].h
}

func (h openHeap) swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *openHeap) push(n *node) {
	n.heapIndex = len(*h)
	*h = append(*h, n)
	h.up(n.heapIndex)
}

func (h *openHeap) pop() *node {
	old := *h
	last := len(old) - 1
	old.swap(0, last)
	n := old[last]
	old[last] = nil
	*h = old[:last]
	if last > 0 {
		h.down(0)
	}
	n.heapIndex = -1
	return n
}

// decrease restores order after n.g was lowered
func (h *openHeap) decrease(n *node) {
	h.up(n.heapIndex)
}

func (h openHeap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h openHeap) down(i int) {
	n := len(h)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && h.less(right, left) {
			smallest = right
		}
		if !h.less(smallest, i) {
			break
		}
		h.swap(i, smallest)
		i = smallest
	}
}
