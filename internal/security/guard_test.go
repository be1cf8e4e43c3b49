package security_test

import (
	"testing"
	"time"

	"github.com/dshills/keywarden/internal/dispatch"
	"github.com/dshills/keywarden/internal/security"
)

func TestGuardLevelByContext(t *testing.T) {
	ctx := security.NewContext(security.Development, time.Hour)
	g := security.NewDispatchGuard(ctx, nil, nil)

	if !g.Allow("pause", dispatch.ContextSystem) {
		t.Error("system context should never be denied")
	}
	if !g.Allow("grid", dispatch.ContextGame) {
		t.Error("game context should never be denied")
	}
	if g.Allow("viz", dispatch.ContextDebug) {
		t.Error("debug context should require developer level")
	}
	if g.Allow("cheats", dispatch.ContextAdmin) {
		t.Error("admin context should require admin level")
	}

	ctx.Authorize(security.LevelDeveloper)
	if !g.Allow("viz", dispatch.ContextDebug) {
		t.Error("developer level should unlock debug context")
	}
	if g.Allow("cheats", dispatch.ContextAdmin) {
		t.Error("developer level must not unlock admin context")
	}

	ctx.Authorize(security.LevelAdmin)
	if !g.Allow("cheats", dispatch.ContextAdmin) {
		t.Error("admin level should unlock admin context")
	}
}

func TestGuardReleaseDeniesPrivileged(t *testing.T) {
	ctx := security.NewContext(security.Release, time.Hour)
	ctx.Authorize(security.LevelAdmin)
	g := security.NewDispatchGuard(ctx, nil, nil)

	if g.Allow("viz", dispatch.ContextDebug) {
		t.Error("release builds must deny debug handlers regardless of requests")
	}
	if g.Allow("cheats", dispatch.ContextAdmin) {
		t.Error("release builds must deny admin handlers regardless of requests")
	}
	if !g.Allow("grid", dispatch.ContextGame) {
		t.Error("release builds still run unprivileged handlers")
	}
}

func TestGuardFlagBinding(t *testing.T) {
	ctx := security.NewContext(security.Development, time.Hour)
	ctx.Authorize(security.LevelAdmin)
	flags := security.NewFlags(nil, nil)
	flags.Define(security.FlagDebugVisualization, false, security.LevelDeveloper)

	g := security.NewDispatchGuard(ctx, flags, nil)
	g.BindFlag("debug_visualization", security.FlagDebugVisualization)

	if g.Allow("debug_visualization", dispatch.ContextDebug) {
		t.Error("handler bound to a disabled flag should be denied")
	}
	if !g.Allow("unbound_debug", dispatch.ContextDebug) {
		t.Error("unbound handlers only face the level check")
	}

	if _, err := flags.Set(security.FlagDebugVisualization, true, security.LevelAdmin); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !g.Allow("debug_visualization", dispatch.ContextDebug) {
		t.Error("enabling the flag should unblock the handler")
	}
}

func TestGuardExpiredSessionDenies(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	ctx := security.NewContext(security.Development, 30*time.Minute, security.WithClock(clock))
	ctx.Authorize(security.LevelDeveloper)
	g := security.NewDispatchGuard(ctx, nil, nil)

	if !g.Allow("viz", dispatch.ContextDebug) {
		t.Fatal("fresh session should allow debug handlers")
	}

	now = now.Add(31 * time.Minute)
	if g.Allow("viz", dispatch.ContextDebug) {
		t.Error("expired session should deny debug handlers")
	}
}
