package config

const (
	defaultDataDir  = "~/.local/share/authorlink"
	defaultCacheDir = "~/.local/share/authorlink/cache"
	defaultLogDir   = "~/.local/share/authorlink/logs"

	defaultAuthorityBaseURL = "https://viaf.org"
	// Authority records change rarely; the upstream default is six months.
	defaultMaxAgeDays            = 180
	defaultRequestTimeoutSeconds = 30

	defaultBatchProgressEvery = 100

	defaultLogFormat = "text"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		Authority: Authority{
			BaseURL:        defaultAuthorityBaseURL,
			MaxAgeDays:     defaultMaxAgeDays,
			RequestTimeout: defaultRequestTimeoutSeconds,
		},
		Batch: Batch{
			ProgressEvery: defaultBatchProgressEvery,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
