// File: utils/constants.go
package utils

import "time"

// SessionCachePrefix is the prefix used for Redis dialogue session keys.
const SessionCachePrefix = "dialogue:sess:"

// DefaultSessionTTL is the fallback time-to-live for dialogue sessions.
const DefaultSessionTTL = 30 * time.Minute
