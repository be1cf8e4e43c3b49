// Package report renders the inspection report shown by the input
// inspector: the current binding table, dispatch counters, and
// security state as one JSON document.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/tidwall/sjson"

	"github.com/dshills/keywarden/internal/dispatch"
	"github.com/dshills/keywarden/internal/security"
)

// Builder collects the subsystems the report draws from. Any field may
// be nil; the corresponding section is omitted.
type Builder struct {
	Registry *dispatch.Registry
	Metrics  *dispatch.Metrics
	Security *security.Context
	Flags    *security.Flags
}

// Build renders the report as indented JSON.
func (b Builder) Build() (string, error) {
	doc := "{}"
	var err error

	doc, err = sjson.Set(doc, "generated_at", time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("report: %w", err)
	}

	if b.Registry != nil {
		if doc, err = b.setRegistry(doc); err != nil {
			return "", err
		}
	}
	if b.Metrics != nil {
		if doc, err = b.setMetrics(doc); err != nil {
			return "", err
		}
	}
	if b.Security != nil {
		if doc, err = b.setSecurity(doc); err != nil {
			return "", err
		}
	}
	return doc, nil
}

func (b Builder) setRegistry(doc string) (string, error) {
	st := b.Registry.Stats()
	var err error

	set := func(path string, value interface{}) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("registry.handlers", st.TotalHandlers)
	set("registry.keys", st.TotalKeys)
	set("registry.conflicts", st.TotalConflicts)
	for ctx, n := range st.ByContext {
		set("registry.by_context."+ctx.String(), n)
	}

	summary := b.Registry.Summary()
	chords := make([]string, 0, len(summary))
	for chord := range summary {
		chords = append(chords, chord)
	}
	sort.Strings(chords)
	for i, chord := range chords {
		set(fmt.Sprintf("registry.bindings.%d.key", i), chord)
		set(fmt.Sprintf("registry.bindings.%d.handlers", i), summary[chord])
	}

	for i, c := range b.Registry.ConflictLog() {
		set(fmt.Sprintf("registry.conflict_log.%d.key", i), c.Key.String())
		for j, cl := range c.Claims {
			set(fmt.Sprintf("registry.conflict_log.%d.claims.%d.id", i, j), cl.ID)
			set(fmt.Sprintf("registry.conflict_log.%d.claims.%d.priority", i, j), cl.Priority)
		}
	}

	if err != nil {
		return "", fmt.Errorf("report: %w", err)
	}
	return doc, nil
}

func (b Builder) setMetrics(doc string) (string, error) {
	snap := b.Metrics.Snapshot()
	var err error

	set := func(path string, value interface{}) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("metrics.dispatches", snap.TotalDispatches)
	set("metrics.consumed", snap.TotalConsumed)
	set("metrics.unhandled", snap.TotalUnhandled)
	set("metrics.denied", snap.TotalDenied)
	set("metrics.keys", snap.KeyCount)

	if err != nil {
		return "", fmt.Errorf("report: %w", err)
	}
	return doc, nil
}

func (b Builder) setSecurity(doc string) (string, error) {
	var err error

	set := func(path string, value interface{}) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("security.mode", b.Security.BuildMode().String())
	set("security.level", b.Security.Level().String())
	set("security.session_remaining", b.Security.SessionRemaining().Round(time.Second).String())

	if b.Flags != nil {
		for i, name := range b.Flags.Names() {
			set(fmt.Sprintf("security.flags.%d.name", i), name)
			set(fmt.Sprintf("security.flags.%d.enabled", i), b.Flags.IsEnabled(name))
		}

		audit := security.Audit(b.Security, b.Flags)
		set("security.audit.secure", audit.IsSecure())
		set("security.audit.violations", audit.Violations)
		set("security.audit.warnings", audit.Warnings)
	}

	if err != nil {
		return "", fmt.Errorf("report: %w", err)
	}
	return doc, nil
}
