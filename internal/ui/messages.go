package ui

import "cm/internal/domain"

// statsMsg carries the store summary shown on the Store tab
type statsMsg struct {
	stats domain.Stats
	err   error
}

// copiedMsg reports the result of copying a command to the clipboard
type copiedMsg struct {
	command string
	err     error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
