package security

import (
	"fmt"
	"strings"
)

// BuildMode distinguishes development from release processes.
type BuildMode int

const (
	// Development builds allow elevated authorization.
	Development BuildMode = iota

	// Release builds cap authorization at LevelUser unconditionally.
	Release
)

// String returns the build mode name.
func (m BuildMode) String() string {
	switch m {
	case Development:
		return "development"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("BuildMode(%d)", m)
	}
}

// ParseBuildMode parses a build mode name.
func ParseBuildMode(s string) (BuildMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev", "debug":
		return Development, nil
	case "release", "prod", "production":
		return Release, nil
	default:
		return Release, fmt.Errorf("unknown build mode %q", s)
	}
}

// Level is an authorization level. Higher levels include lower ones.
type Level int

const (
	// LevelUser is the unprivileged default.
	LevelUser Level = iota

	// LevelDeveloper unlocks debug features in development builds.
	LevelDeveloper

	// LevelAdmin additionally unlocks cheat and admin features.
	LevelAdmin
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelUser:
		return "user"
	case LevelDeveloper:
		return "developer"
	case LevelAdmin:
		return "admin"
	default:
		return fmt.Sprintf("Level(%d)", l)
	}
}

// ParseLevel parses an authorization level name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return LevelUser, nil
	case "developer", "dev":
		return LevelDeveloper, nil
	case "admin":
		return LevelAdmin, nil
	default:
		return LevelUser, fmt.Errorf("unknown authorization level %q", s)
	}
}

func minLevel(a, b Level) Level {
	if a < b {
		return a
	}
	return b
}
