// Package bgap holds build metadata shared by the bgap command line
// application.
package bgap

// Version and Build are set during compilation with ldflags.
var (
	Version = "v0.0.0+dev"
	Build   = "n/a"
)
