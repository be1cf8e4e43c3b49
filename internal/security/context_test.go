package security_test

import (
	"testing"
	"time"

	"github.com/dshills/keywarden/internal/event"
	"github.com/dshills/keywarden/internal/security"
)

func TestAuthorizeDevelopment(t *testing.T) {
	ctx := security.NewContext(security.Development, time.Hour)

	if got := ctx.Authorize(security.LevelAdmin); got != security.LevelAdmin {
		t.Errorf("Authorize(admin) = %s, want admin", got)
	}
	if got := ctx.Level(); got != security.LevelAdmin {
		t.Errorf("Level() = %s, want admin", got)
	}
}

func TestAuthorizeReleaseCapsAtUser(t *testing.T) {
	ctx := security.NewContext(security.Release, time.Hour)

	if got := ctx.Authorize(security.LevelAdmin); got != security.LevelUser {
		t.Errorf("Authorize(admin) = %s, want user", got)
	}

	// Repeated escalation attempts change nothing.
	ctx.Authorize(security.LevelDeveloper)
	ctx.Authorize(security.LevelAdmin)
	if got := ctx.Level(); got != security.LevelUser {
		t.Errorf("Level() = %s, want user after escalation attempts", got)
	}
}

func TestAuthorizeDowngrade(t *testing.T) {
	ctx := security.NewContext(security.Development, time.Hour)

	ctx.Authorize(security.LevelAdmin)
	if got := ctx.Authorize(security.LevelUser); got != security.LevelUser {
		t.Errorf("Authorize(user) = %s, want user", got)
	}
	if got := ctx.Level(); got != security.LevelUser {
		t.Errorf("Level() = %s, want user", got)
	}
}

func TestRevoke(t *testing.T) {
	ctx := security.NewContext(security.Development, time.Hour)

	ctx.Authorize(security.LevelDeveloper)
	ctx.Revoke()

	if got := ctx.Level(); got != security.LevelUser {
		t.Errorf("Level() = %s, want user after revoke", got)
	}
}

func TestSessionExpiryDowngrades(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	bus := event.NewBus()
	var expired []event.Event
	bus.Subscribe(event.TypeSessionExpired, func(ev event.Event) {
		expired = append(expired, ev)
	})

	ctx := security.NewContext(security.Development, time.Hour,
		security.WithClock(clock), security.WithBus(bus))
	ctx.Authorize(security.LevelAdmin)

	// Session start was now; advance two hours past a one hour maximum.
	now = now.Add(2 * time.Hour)

	if !ctx.CheckSession() {
		t.Fatal("expected CheckSession to report a downgrade")
	}
	if got := ctx.Level(); got != security.LevelUser {
		t.Errorf("Level() = %s, want user after expiry", got)
	}
	if len(expired) != 1 {
		t.Fatalf("expected 1 expiry event, got %d", len(expired))
	}
	payload, ok := expired[0].Payload.(security.ExpiredPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", expired[0].Payload)
	}
	if payload.PreviousLevel != security.LevelAdmin {
		t.Errorf("payload.PreviousLevel = %s, want admin", payload.PreviousLevel)
	}

	// A second check is a no-op; no duplicate event.
	if ctx.CheckSession() {
		t.Error("expected second CheckSession to be a no-op")
	}
	if len(expired) != 1 {
		t.Errorf("expected no duplicate expiry event, got %d", len(expired))
	}
}

func TestExpiryDetectedLazilyOnQuery(t *testing.T) {
	now := time.Now()
	ctx := security.NewContext(security.Development, time.Hour,
		security.WithClock(func() time.Time { return now }))

	ctx.Authorize(security.LevelDeveloper)
	now = now.Add(61 * time.Minute)

	// No explicit CheckSession: a plain Permits query must detect expiry.
	if ctx.Permits(security.LevelDeveloper) {
		t.Error("expected Permits(developer) to fail after expiry")
	}
	if !ctx.Permits(security.LevelUser) {
		t.Error("expected Permits(user) to hold")
	}
}

func TestEscalationRestartsSessionClock(t *testing.T) {
	now := time.Now()
	ctx := security.NewContext(security.Development, time.Hour,
		security.WithClock(func() time.Time { return now }))

	now = now.Add(50 * time.Minute)
	ctx.Authorize(security.LevelAdmin)

	// 50 minutes after escalation the session is still valid because the
	// clock restarted at escalation time.
	now = now.Add(50 * time.Minute)
	if !ctx.Permits(security.LevelAdmin) {
		t.Error("expected session to be valid 50m after escalation")
	}

	now = now.Add(11 * time.Minute)
	if ctx.Permits(security.LevelAdmin) {
		t.Error("expected session expired 61m after escalation")
	}
}

func TestSessionRemaining(t *testing.T) {
	now := time.Now()
	ctx := security.NewContext(security.Development, time.Hour,
		security.WithClock(func() time.Time { return now }))

	now = now.Add(40 * time.Minute)
	if got := ctx.SessionRemaining(); got != 20*time.Minute {
		t.Errorf("SessionRemaining() = %s, want 20m", got)
	}

	now = now.Add(30 * time.Minute)
	if got := ctx.SessionRemaining(); got != 0 {
		t.Errorf("SessionRemaining() = %s, want 0", got)
	}
}

func TestBuildModeImmutable(t *testing.T) {
	ctx := security.NewContext(security.Release, time.Hour)
	ctx.Authorize(security.LevelAdmin)
	ctx.CheckSession()
	ctx.Revoke()

	if got := ctx.BuildMode(); got != security.Release {
		t.Errorf("BuildMode() = %s, want release", got)
	}
}
