// Package version holds gateway build metadata injected via ldflags.
package version

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build identity for startup logs.
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
