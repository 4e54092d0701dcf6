package constants

import "time"

// Only event reads are cached. Account records carry the disabled and admin
// flags, so the authorizer must re-read them from the database on every
// request; they never enter the cache.
const (
	CacheKeyEventInfo = "cocleanup:event:info:%s"
)

const (
	CacheExpireEventInfo = 1 * time.Hour
)
