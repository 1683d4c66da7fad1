// Package build exposes build-time metadata injected via ldflags.
package build

// Version, Commit, and Branch are set at build time by:
//
//	-ldflags "-X github.com/joestump/leetdeck/internal/build.Version=... ..."
var (
	Version = "dev"
	Commit  = "unknown"
	Branch  = "unknown"
)

// UserAgent identifies leetdeck in outgoing requests.
func UserAgent() string {
	return "leetdeck/" + Version
}
