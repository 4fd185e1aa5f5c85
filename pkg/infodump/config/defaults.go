package config

import "os"

// Default values for configuration options.
const (
	// DefaultLargest is the number of largest files to report.
	DefaultLargest = 3

	// DefaultCPU is the number of top CPU processes to report.
	DefaultCPU = 3

	// DefaultPingTarget is the address used for the outbound probe.
	DefaultPingTarget = "1.1.1.1"
)

// DefaultExclusions are paths that should never be scanned for large
// files. Pseudo-filesystems report misleading sizes and stall traversal.
var DefaultExclusions = []string{
	"/proc",
	"/sys",
	"/dev",
}

// DefaultPath returns the default root for the largest-files scan:
// the user's home directory, or the current directory if it is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
