package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"cm/internal/keymap"
	"cm/internal/ui/input/modes"
	"cm/internal/ui/input/types"
	"cm/internal/ui/state"
)

// Handler routes key messages to the handler of the session's current mode
type Handler struct {
	modes map[state.Mode]types.ModeHandler
}

func New(keys keymap.KeyMap) *Handler {
	h := &Handler{
		modes: make(map[state.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[state.ModeNormal] = modes.NewNormalMode(keys)
	h.modes[state.ModeAdd] = modes.NewAddMode(keys)
	h.modes[state.ModeDelete] = modes.NewDeleteMode(keys)

	return h
}

// HandleKey returns the actions a key produces in the current mode
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	handler := h.modes[ctx.Mode()]
	if handler == nil {
		return nil
	}
	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed {
		return nil
	}
	return actions
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName(ctx types.Context) string {
	if handler := h.modes[ctx.Mode()]; handler != nil {
		return handler.Name()
	}
	return ""
}
