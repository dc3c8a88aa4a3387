// Package build holds build-time information for the taskspec binary.
package build

// Version is the application version reported by `taskspec version`.
// It defaults to "dev" and is set with -ldflags "-X go.trai.ch/taskspec/internal/build.Version=...".
var Version = "dev"
