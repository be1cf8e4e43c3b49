package handlers

import (
	"github.com/dshills/keywarden/internal/dispatch"
	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/logging"
	"github.com/dshills/keywarden/internal/security"
)

// Status returns the F12 handler logging the security status line and
// the audit summary. It is a system handler so the status stays
// visible even without authorization.
func Status(ctx *security.Context, flags *security.Flags, logger *logging.Logger) dispatch.Handler {
	return dispatch.NewFunc(IDSecurityStatus, "log security status and audit summary",
		dispatch.PriorityLow, dispatch.ContextSystem,
		[]key.Chord{key.Of(key.KeyF12)},
		func(key.Event) bool {
			logger.Info("security: %s", ctx.Status())
			if flags != nil {
				logger.Info("%s", security.Audit(ctx, flags).Summary())
			}
			return true
		})
}
