package handlers

import (
	"github.com/dshills/keywarden/internal/dispatch"
	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/logging"
	"github.com/dshills/keywarden/internal/security"
)

// AdminToggle flips the admin authorization session on the backtick
// key. In release builds the escalation request is still made but the
// build-mode ceiling keeps the granted level at user, so the toggle is
// effectively inert there.
type AdminToggle struct {
	ctx    *security.Context
	logger *logging.Logger
}

// NewAdminToggle creates the backtick admin toggle handler.
func NewAdminToggle(ctx *security.Context, logger *logging.Logger) *AdminToggle {
	if logger == nil {
		logger = logging.Null
	}
	return &AdminToggle{ctx: ctx, logger: logger}
}

// ID implements dispatch.Handler.
func (h *AdminToggle) ID() string { return IDAdminToggle }

// Description implements dispatch.Handler.
func (h *AdminToggle) Description() string { return "toggle admin authorization session" }

// Priority implements dispatch.Handler.
func (h *AdminToggle) Priority() int { return dispatch.PriorityCritical }

// Context implements dispatch.Handler. The toggle is a system handler:
// it must stay reachable when the user is not yet authorized, so it
// cannot sit behind the guard it exists to satisfy.
func (h *AdminToggle) Context() dispatch.Context { return dispatch.ContextSystem }

// HandledKeys implements dispatch.Handler.
func (h *AdminToggle) HandledKeys() []key.Chord {
	return []key.Chord{key.OfRune('`')}
}

// Handle implements dispatch.Handler.
func (h *AdminToggle) Handle(key.Event) bool {
	if h.ctx.Level() >= security.LevelAdmin {
		h.ctx.Revoke()
		h.logger.Info("admin session closed")
		return true
	}

	granted := h.ctx.Authorize(security.LevelAdmin)
	if granted >= security.LevelAdmin {
		h.logger.Info("admin session opened for %s", h.ctx.SessionRemaining())
	} else {
		h.logger.Warn("admin session unavailable in %s build", h.ctx.BuildMode())
	}
	return true
}
