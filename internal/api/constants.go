package api

// Cache-Control header values.
//
// Swatches and avatars are pure functions of (id, seed), so responses
// for an explicit seed can be cached forever. Responses that depend on
// this instance's default seed get a shorter lifetime since operators
// can redeploy with a different seed.
const (
	CacheImmutable = "public, max-age=31536000, immutable"
	CacheOneDay    = "public, max-age=86400"
	CacheNoStore   = "no-cache"
)
