// Package buildinfo carries version metadata stamped at build time.
package buildinfo

import "fmt"

// Stamped via -ldflags, e.g.
//
//	-X github.com/guleriaakshit/open-lens/pkg/buildinfo.Version=v1.0.0
//
// with matching Commit and Date keys. Release builds set all three; a
// plain `go build` leaves the dev placeholders.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the stamped metadata one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template for the root command.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
