package handlers

import (
	"fmt"
	"io"

	"github.com/dshills/keywarden/internal/dispatch"
	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/logging"
	"github.com/dshills/keywarden/internal/report"
)

// Inspector writes the JSON inspection report on Ctrl+F12.
type Inspector struct {
	builder report.Builder
	out     io.Writer
	logger  *logging.Logger
}

// NewInspector creates the Ctrl+F12 inspector handler writing to out.
func NewInspector(builder report.Builder, out io.Writer, logger *logging.Logger) *Inspector {
	if logger == nil {
		logger = logging.Null
	}
	return &Inspector{builder: builder, out: out, logger: logger}
}

// ID implements dispatch.Handler.
func (h *Inspector) ID() string { return IDInputInspector }

// Description implements dispatch.Handler.
func (h *Inspector) Description() string { return "dump input and security inspection report" }

// Priority implements dispatch.Handler.
func (h *Inspector) Priority() int { return dispatch.PriorityDebug }

// Context implements dispatch.Handler.
func (h *Inspector) Context() dispatch.Context { return dispatch.ContextDebug }

// HandledKeys implements dispatch.Handler.
func (h *Inspector) HandledKeys() []key.Chord {
	return []key.Chord{key.Of(key.KeyF12).With(key.ModCtrl)}
}

// Handle implements dispatch.Handler.
func (h *Inspector) Handle(key.Event) bool {
	doc, err := h.builder.Build()
	if err != nil {
		h.logger.Error("inspection report failed: %v", err)
		return true
	}
	if _, err := fmt.Fprintln(h.out, doc); err != nil {
		h.logger.Error("inspection report write failed: %v", err)
	}
	return true
}
