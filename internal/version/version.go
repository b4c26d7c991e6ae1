// Package version holds the application version, overridden at build time with
//
//	go build -ldflags "-X github.com/ndewijer/investment-goal-tracker/internal/version.Version=1.2.0"
package version

// Version is the running application version.
var Version = "0.1.0-dev"
