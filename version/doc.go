// Package version reports build information for the todoapi binary.
//
// Values are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/todoapi/version.Version=1.2.0"
//
// When unset, the VCS stamp embedded by the Go toolchain is used.
package version
