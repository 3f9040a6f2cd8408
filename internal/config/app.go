package config

import "time"

// AppConfig groups the runtime settings read at startup.
type AppConfig struct {
	Port        string
	CORSOrigins []string

	LogLevel  string
	LogFormat string
	Fluent    FluentConfig

	HistoryEnabled bool
	DB             DBConfig

	RateCacheBackend string
	Redis            RedisConfig
	Rates            RatesConfig

	RateTablePath string

	JWTSecret         string
	AdminPasswordHash string
	AdminTokenTTL     time.Duration
}

// FluentConfig enables log forwarding to a fluentd/fluent-bit collector.
type FluentConfig struct {
	Enabled bool
	Host    string
	Port    int
	Tag     string
}

// DBConfig holds the PostgreSQL connection and pool settings.
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RatesConfig controls exchange rate retrieval.
type RatesConfig struct {
	APIURL          string
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
}

// Load reads AppConfig from the environment, applying defaults.
func Load() AppConfig {
	return AppConfig{
		Port:        GetEnv("PORT", "3000"),
		CORSOrigins: GetListEnv("CORS_ORIGINS", []string{"http://localhost:5173"}),

		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogFormat: GetEnv("LOG_FORMAT", "text"),
		Fluent: FluentConfig{
			Enabled: GetBoolEnv("FLUENT_ENABLED", false),
			Host:    GetEnv("FLUENT_HOST", "localhost"),
			Port:    GetIntEnv("FLUENT_PORT", 24224),
			Tag:     GetEnv("FLUENT_TAG", "casacalc"),
		},

		HistoryEnabled: GetBoolEnv("HISTORY_ENABLED", false),
		DB: DBConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "casacalc"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},

		RateCacheBackend: GetEnv("RATE_CACHE_BACKEND", "memory"),
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},
		Rates: RatesConfig{
			APIURL:          GetEnv("RATES_API_URL", "https://api.frankfurter.app"),
			RefreshInterval: GetDurationEnv("RATES_REFRESH_INTERVAL", 15*time.Minute),
			FetchTimeout:    GetDurationEnv("RATES_FETCH_TIMEOUT", 10*time.Second),
		},

		RateTablePath: GetEnv("RATE_TABLE_PATH", ""),

		JWTSecret:         GetEnv("JWT_SECRET", ""),
		AdminPasswordHash: GetEnv("ADMIN_PASSWORD_HASH", ""),
		AdminTokenTTL:     GetDurationEnv("ADMIN_TOKEN_TTL", 15*time.Minute),
	}
}
