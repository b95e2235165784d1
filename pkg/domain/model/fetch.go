package model

import "time"

// Protocol selects the transport used for the first download attempt.
// The other transport is tried when the first fails.
type Protocol string

const (
	ProtocolHTTP Protocol = "http"
	ProtocolFTP  Protocol = "ftp"
)

// DefaultTimeout matches the 30 minute download budget the Census
// Bureau's larger archives (blocks, ZCTAs) can require.
const DefaultTimeout = 30 * time.Minute

// FetchOptions control a single retrieval through the download/cache
// pipeline.
type FetchOptions struct {
	Cache    bool
	Protocol Protocol
	Timeout  time.Duration
	Subset   *Subset
}

// EffectiveTimeout returns Timeout, or DefaultTimeout when unset.
func (o FetchOptions) EffectiveTimeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

// FetchResult describes a completed retrieval into the local cache.
type FetchResult struct {
	URL       string // Remote resource identifier
	Path      string // Local cache path ("" when caching is disabled)
	Size      int64  // Downloaded size in bytes (0 on cache hit)
	FromCache bool   // True when the cached copy was reused
}
