// Package version holds build information injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/aristath/advisor/internal/version.Version=$(git rev-parse --short HEAD)"
package version

var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)
