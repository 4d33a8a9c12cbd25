package history

// Navigator walks the log from the live line toward older entries and back.
// The live line is saved on the first step and restored when walking past
// the newest entry.
type Navigator struct {
	store    Store
	index    int
	snapshot string
	active   bool
}

// NewNavigator starts at the live line.
func NewNavigator(store Store) *Navigator {
	return &Navigator{store: store, index: store.Len()}
}

// Active reports whether a recalled entry is being shown.
func (n *Navigator) Active() bool { return n.active }

// Index returns the position of the shown entry.
func (n *Navigator) Index() int { return n.index }

func (n *Navigator) begin(current string) {
	if n.active {
		return
	}
	n.active = true
	n.snapshot = current
	n.index = n.store.Len()
}

// Older returns the previous entry. At the oldest entry it returns false and
// nothing changes.
func (n *Navigator) Older(current string) (string, bool) {
	if n.store.Len() == 0 || (n.active && n.index == 0) {
		return "", false
	}
	n.begin(current)
	n.index--
	return n.store.At(n.index), true
}

// Newer returns the next entry, or the saved live line after the newest one.
func (n *Navigator) Newer() (string, bool) {
	if !n.active {
		return "", false
	}
	if n.index+1 < n.store.Len() {
		n.index++
		return n.store.At(n.index), true
	}
	return n.Last()
}

// First jumps to the oldest entry.
func (n *Navigator) First(current string) (string, bool) {
	if n.store.Len() == 0 {
		return "", false
	}
	n.begin(current)
	n.index = 0
	return n.store.At(0), true
}

// Last leaves navigation and returns the saved live line.
func (n *Navigator) Last() (string, bool) {
	if !n.active {
		return "", false
	}
	text := n.snapshot
	n.Reset()
	return text, true
}

// Reset forgets the snapshot and returns to the live line.
func (n *Navigator) Reset() {
	n.active = false
	n.snapshot = ""
	n.index = n.store.Len()
}
