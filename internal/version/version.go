// Package version provides build-time metadata for the gateway.
// These variables are populated via -ldflags at build time.
package version

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

var (
	// Version is the semantic version or git describe output (e.g., "v1.0.0" or "a1b2c3d").
	// Set via: -ldflags "-X github.com/killallgit/podcast-gateway/internal/version.Version=..."
	Version = "dev"

	// BuildDate is the ISO 8601 UTC timestamp when the binary was built.
	BuildDate = "unknown"

	// GitCommit is the git commit SHA of the source code.
	GitCommit = "unknown"
)

// Info holds all build metadata and runtime information.
type Info struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit"`
	BuildDate  string `json:"build_date"`
	InstanceID string `json:"instance_id"`
	Hostname   string `json:"hostname"`
}

var (
	once sync.Once
	info Info
)

// GetInfo returns build metadata and runtime information.
// Instance ID and hostname are computed once on first call and cached.
func GetInfo() Info {
	once.Do(func() {
		info = Info{
			Version:    Normalize(Version),
			GitCommit:  GitCommit,
			BuildDate:  BuildDate,
			InstanceID: uuid.New().String(),
			Hostname:   getHostname(),
		}
	})
	return info
}

// Normalize returns v in canonical semver form ("v1.2.0" -> "1.2.0",
// "1.2" -> "1.2.0"). Values that are not versions, such as a bare commit
// hash or "dev", are returned unchanged.
func Normalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "dev"
	}
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return v
	}
	return parsed.String()
}

// IsRelease reports whether the build carries a stable semantic version.
func (i Info) IsRelease() bool {
	parsed, err := semver.NewVersion(i.Version)
	if err != nil {
		return false
	}
	return parsed.Prerelease() == ""
}

// String formats version info for CLI display.
func (i Info) String() string {
	return fmt.Sprintf("podcast-gateway version %s (commit: %s, built: %s)", i.Version, i.GitCommit, i.BuildDate)
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
