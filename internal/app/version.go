package app

import "fmt"

// Version, Commit, and BuildTime are stamped by the release build:
//
//	go build -ldflags "-X github.com/resilientme/backend/internal/app.Version=1.0.0"
//
// Local builds keep the zero values below.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the single version string used by startup logs and /health.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
