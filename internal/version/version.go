// Package version pins the versions advertised to clients over HTTP and mDNS.
package version

const (
	// Server is the release version of this server binary.
	Server = "1.0.0"

	// API is the versioned path prefix clients should target.
	API = "v1"
)
