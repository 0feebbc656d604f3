package cache

import "strings"

const (
	GlobalKeyPrefix = "quizforge"
)

// GenerateCacheKey generates a cache key for a given service, object type,
// and identifier. If paramsKey are provided, they are joined by "_" and
// appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// SnapshotKey is the cache key for a public quiz snapshot.
func SnapshotKey(quizID string) string {
	return GenerateCacheKey("share", "snapshot", quizID)
}

// SessionKey is the cache key for an in-progress session's resume state.
func SessionKey(sessionID string) string {
	return GenerateCacheKey("assessment", "session", sessionID)
}
