package logic

// Window is the part of a list column that fits on screen
type Window struct {
	Start     int
	End       int // exclusive
	MoreAbove bool
	MoreBelow bool
}

// VisibleWindow scrolls the smallest amount needed to keep selected on screen.
// Each scroll indicator takes one of the height lines while it is shown.
func VisibleWindow(selected, total, height int) Window {
	if height < 1 {
		height = 1
	}
	if total <= height {
		return Window{Start: 0, End: total}
	}
	if selected < 0 {
		selected = 0
	}
	for start := 0; ; start++ {
		effective := height
		above := start > 0
		if above {
			effective--
		}
		if start+effective < total {
			effective--
		}
		// Ensure we have at least 1 line for content
		if effective < 1 {
			effective = 1
		}
		end := start + effective
		if end > total {
			end = total
		}
		if selected < end || end == total {
			return Window{Start: start, End: end, MoreAbove: above, MoreBelow: end < total}
		}
	}
}
