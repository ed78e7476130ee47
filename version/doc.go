// Package version reports the rxfetch build.
//
// Version, commit and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/rxfetch/version.Version=1.2.0" ./cmd/rxfetch
//
// Unset values fall back to the VCS stamp in the binary's build info.
package version
