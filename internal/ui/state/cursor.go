package state

// TextCursor tracks where the next glyph goes while text is typed into a fixed-width
// field. Each rendered line holds FieldWidth-1 characters; a field of width 0 or 1 has no
// horizontal room, so every character starts a new line.
//
// Positions are computed from the rune count of the buffer, not the display width of the
// runes. Wide glyphs (CJK, emoji) will drift the cursor right of the rendered text.
type TextCursor struct {
	AnchorX    int
	AnchorY    int
	X          int
	Y          int
	FieldWidth int

	buffer []rune
}

// NewTextCursor creates an empty cursor anchored at the top-left of the input field
func NewTextCursor(anchorX, anchorY, fieldWidth int) *TextCursor {
	if fieldWidth < 0 {
		fieldWidth = 0
	}
	return &TextCursor{
		AnchorX:    anchorX,
		AnchorY:    anchorY,
		X:          anchorX,
		Y:          anchorY,
		FieldWidth: fieldWidth,
	}
}

// lineLen is the number of characters that fit on one rendered line
func (c *TextCursor) lineLen() int {
	if c.FieldWidth <= 1 {
		return 1
	}
	return c.FieldWidth - 1
}

// Push appends r and advances the cursor, wrapping to the next line when the line is full
func (c *TextCursor) Push(r rune) {
	c.buffer = append(c.buffer, r)
	if c.FieldWidth > 1 && len(c.buffer)%c.lineLen() != 0 {
		c.X++
		return
	}
	c.X = c.AnchorX
	c.Y++
}

// Pop removes the last character and moves the cursor back to where it was before that
// character was pushed. Popping an empty buffer is a no-op.
func (c *TextCursor) Pop() {
	if len(c.buffer) == 0 {
		c.X = c.AnchorX
		return
	}
	c.buffer = c.buffer[:len(c.buffer)-1]
	c.X, c.Y = c.positionFor(len(c.buffer))
}

// positionFor returns the cursor position after n characters have been pushed
func (c *TextCursor) positionFor(n int) (int, int) {
	if c.FieldWidth <= 1 {
		return c.AnchorX, c.AnchorY + n
	}
	w := c.lineLen()
	return c.AnchorX + n%w, c.AnchorY + n/w
}

// Text returns the buffered text
func (c *TextCursor) Text() string {
	return string(c.buffer)
}

// Len returns the number of buffered characters
func (c *TextCursor) Len() int {
	return len(c.buffer)
}

// Lines splits the buffer the same way the cursor wraps it
func (c *TextCursor) Lines() []string {
	w := c.lineLen()
	lines := []string{}
	for start := 0; start < len(c.buffer); start += w {
		end := start + w
		if end > len(c.buffer) {
			end = len(c.buffer)
		}
		lines = append(lines, string(c.buffer[start:end]))
	}
	if len(c.buffer)%w == 0 {
		// cursor sits at the start of a fresh line
		lines = append(lines, "")
	}
	return lines
}

// Offset returns the cursor position relative to the anchor
func (c *TextCursor) Offset() (int, int) {
	return c.X - c.AnchorX, c.Y - c.AnchorY
}
