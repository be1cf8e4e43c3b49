package security

import "fmt"

// AuditResult holds the outcome of a security configuration audit.
type AuditResult struct {
	// Violations are conditions that must be fixed.
	Violations []string

	// Warnings should be reviewed but do not fail the audit.
	Warnings []string

	// FeaturesEnabled is true if any debug flag is enabled.
	FeaturesEnabled bool

	// SessionValid is true if the elevated session has time remaining.
	SessionValid bool
}

// Audit checks the context and flag store for inconsistent or unsafe
// configuration. It never mutates state beyond the context's own lazy
// session check.
func Audit(ctx *Context, flags *Flags) AuditResult {
	var result AuditResult

	anyEnabled := flags.AnyEnabled()
	result.FeaturesEnabled = anyEnabled
	result.SessionValid = ctx.SessionRemaining() > 0

	if ctx.BuildMode() == Release && anyEnabled {
		result.Violations = append(result.Violations, "debug features enabled in release build")
	}

	level := ctx.Level()
	if level > LevelUser && !result.SessionValid {
		result.Violations = append(result.Violations, "elevated authorization with expired session")
	}

	if flags.IsEnabled(FlagCheatMenu) && level < LevelAdmin {
		result.Warnings = append(result.Warnings, "cheat menu enabled without admin authorization")
	}

	return result
}

// IsSecure reports whether the audit found no violations.
func (r AuditResult) IsSecure() bool {
	return len(r.Violations) == 0
}

// Summary returns a one-line audit summary.
func (r AuditResult) Summary() string {
	if r.IsSecure() {
		return fmt.Sprintf("security audit passed: %d warnings, features=%t, session_valid=%t",
			len(r.Warnings), r.FeaturesEnabled, r.SessionValid)
	}
	return fmt.Sprintf("security audit failed: %d violations, %d warnings",
		len(r.Violations), len(r.Warnings))
}
