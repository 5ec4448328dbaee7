package heirloom

import "fmt"

// Release of this build. Suffix is empty for tagged releases.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is set at link time with
//   -ldflags "-X github.com/iov-one/heirloom.GitCommit=<sha>"
var GitCommit = ""

// Version returns the release, followed by the commit when known.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit == "" {
		return v
	}
	return v + " " + GitCommit
}
