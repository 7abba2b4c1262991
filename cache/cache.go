// Package cache provides analysis result caching implementations.
package cache

// AnalysisCache is the interface for analysis result caching.
// Values are serialized analysis results.
type AnalysisCache interface {
	// Get retrieves a cached value. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a value in the cache.
	Set(key string, value string) error
}
