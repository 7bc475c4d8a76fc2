package source

// Config holds configuration for record sources.
type Config struct {
	// CacheTTLSeconds is how long downloaded storage objects are reused. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// MaxRecords bounds the size of each loaded collection. Zero means unlimited.
	MaxRecords int `mapstructure:"max_records" default:"0"`
}
