package version

import "runtime"

// These variables are overridden at build time using -ldflags, e.g.
// -X github.com/ericogr/genesis-combat/internal/version.Commit=abc123
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// Info is the build metadata reported by the service.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Dirty   bool   `json:"dirty"`
	Go      string `json:"go"`
}

func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, Dirty: Dirty == "true", Go: runtime.Version()}
}

// String renders a one-line banner for logs.
func (i Info) String() string {
	s := i.Version + " (" + i.Commit
	if i.Dirty {
		s += "-dirty"
	}
	return s + ")"
}
