// Values in this file are overridden at link time through -ldflags "-X ...".
// Keep the variable names stable: the build scripts reference them.

package bininfo

var (
	// Version is the SemVer version of the binary, with the git commit appended after a plus sign [+] when known.
	Version = "v0.0.0"

	// BuildTime is the time at which the binary was built.
	BuildTime = "1970-01-01T00:00:00Z"
)
