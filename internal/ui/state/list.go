package state

// List is an ordered collection with an optional selected index and a focus flag.
// It backs the namespace, command and tag columns.
type List[T any] struct {
	Items    []T
	Focused  bool
	selected int // -1 when nothing is selected
}

// NewList creates a list with no selection and no focus
func NewList[T any](items []T) *List[T] {
	if items == nil {
		items = []T{}
	}
	return &List[T]{Items: items, selected: -1}
}

// Len returns the number of items
func (l *List[T]) Len() int {
	return len(l.Items)
}

// IsEmpty reports whether the list has no items
func (l *List[T]) IsEmpty() bool {
	return len(l.Items) == 0
}

// Selected returns the selected index and whether there is a selection
func (l *List[T]) Selected() (int, bool) {
	if l.selected < 0 || l.selected >= len(l.Items) {
		return 0, false
	}
	return l.selected, true
}

// HasSelection reports whether an item is selected
func (l *List[T]) HasSelection() bool {
	_, ok := l.Selected()
	return ok
}

// Next selects the following item, wrapping to the start.
// With no selection the first item is selected. Empty lists are left untouched.
func (l *List[T]) Next() {
	if i, ok := l.NextIndex(); ok {
		l.selected = i
	}
}

// Previous selects the preceding item, wrapping to the end.
// With no selection the first item is selected. Empty lists are left untouched.
func (l *List[T]) Previous() {
	if i, ok := l.PreviousIndex(); ok {
		l.selected = i
	}
}

// NextIndex returns the index Next would select without moving
func (l *List[T]) NextIndex() (int, bool) {
	n := len(l.Items)
	if n == 0 {
		return 0, false
	}
	i, ok := l.Selected()
	if !ok {
		return 0, true
	}
	return (i + 1) % n, true
}

// PreviousIndex returns the index Previous would select without moving
func (l *List[T]) PreviousIndex() (int, bool) {
	n := len(l.Items)
	if n == 0 {
		return 0, false
	}
	i, ok := l.Selected()
	if !ok {
		return 0, true
	}
	return (i + n - 1) % n, true
}

// Select selects index i. Out of range indices clear the selection,
// so selecting 0 on an empty list leaves it unselected.
func (l *List[T]) Select(i int) {
	if i < 0 || i >= len(l.Items) {
		l.selected = -1
		return
	}
	l.selected = i
}

// ClearSelection drops the selection
func (l *List[T]) ClearSelection() {
	l.selected = -1
}

// CurrentIndex returns the selected index, or 0 when nothing is selected.
// Callers must check emptiness before using it to index Items.
func (l *List[T]) CurrentIndex() int {
	i, ok := l.Selected()
	if !ok {
		return 0
	}
	return i
}

// CurrentItem returns the item at CurrentIndex. It panics on an empty list.
func (l *List[T]) CurrentItem() T {
	if len(l.Items) == 0 {
		panic("state: CurrentItem called on an empty list")
	}
	return l.Items[l.CurrentIndex()]
}

// IndexOf returns the first index for which match returns true, or -1
func (l *List[T]) IndexOf(match func(T) bool) int {
	for i, item := range l.Items {
		if match(item) {
			return i
		}
	}
	return -1
}
