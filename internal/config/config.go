package config

import (
	"time"

	pkgconfig "github.com/Onlynfk/podground-backend-sub001/pkg/config"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Search      SearchConfig
	ListenNotes ListenNotesConfig `mapstructure:"listennotes"`
	Storage     StorageConfig
	Profile     ProfileConfig
	Auth        AuthConfig
	Kafka       KafkaConfig
	Log         LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	FilePath        string `mapstructure:"file_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Backend       string        `mapstructure:"backend"`
	Prefix        string        `mapstructure:"prefix"`
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type SearchConfig struct {
	LimitPerCategory int            `mapstructure:"limit_per_category"`
	MaxLimit         int            `mapstructure:"max_limit"`
	MinScore         MinScoreConfig `mapstructure:"min_score"`
}

// MinScoreConfig holds the per-category relevance floor. Podcast and
// episode results are gated strictly; the rest default to a permissive
// floor that operators can raise per category.
type MinScoreConfig struct {
	Podcast  float64
	Episode  float64
	Post     float64
	Comment  float64
	Message  float64
	Event    float64
	Resource float64
	User     float64
	Partner  float64
	Expert   float64
}

type ListenNotesConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	Bucket          string        `mapstructure:"bucket"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UsePathStyle    bool          `mapstructure:"use_path_style"`
	PublicURL       string        `mapstructure:"public_url"`
	SignTTL         time.Duration `mapstructure:"sign_ttl"`
	URLCacheTTL     time.Duration `mapstructure:"url_cache_ttl"`
	URLCacheMaxSize int           `mapstructure:"url_cache_max_size"`
}

type ProfileConfig struct {
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	CacheMaxSize int           `mapstructure:"cache_max_size"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type KafkaConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Brokers      string `mapstructure:"brokers"`
	GroupID      string `mapstructure:"group_id"`
	ProfileTopic string `mapstructure:"profile_topic"`
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8096)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "podground")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.file_path", "./data/search.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.prefix", "search")
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.sweep_interval", "10m")
	v.SetDefault("search.limit_per_category", 10)
	v.SetDefault("search.max_limit", 50)
	v.SetDefault("search.min_score.podcast", 0.8)
	v.SetDefault("search.min_score.episode", 0.8)
	v.SetDefault("search.min_score.post", 0.3)
	v.SetDefault("search.min_score.comment", 0.3)
	v.SetDefault("search.min_score.message", 0.3)
	v.SetDefault("search.min_score.event", 0.3)
	v.SetDefault("search.min_score.resource", 0.3)
	v.SetDefault("search.min_score.user", 0.3)
	v.SetDefault("search.min_score.partner", 0.3)
	v.SetDefault("search.min_score.expert", 0.3)
	v.SetDefault("listennotes.api_key", "")
	v.SetDefault("listennotes.base_url", "https://listen-api.listennotes.com/api/v2")
	v.SetDefault("listennotes.timeout", "5s")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.bucket", "podground-media")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.use_path_style", false)
	v.SetDefault("storage.public_url", "")
	v.SetDefault("storage.sign_ttl", "1h")
	v.SetDefault("storage.url_cache_ttl", "1h")
	v.SetDefault("storage.url_cache_max_size", 10000)
	v.SetDefault("profile.cache_ttl", "1h")
	v.SetDefault("profile.cache_max_size", 5000)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.group_id", "search-service")
	v.SetDefault("kafka.profile_topic", "user-profile-updated")
	v.SetDefault("log.level", "info")

	// Bind environment variables
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.sslmode", "DB_SSLMODE")
	v.BindEnv("database.file_path", "DB_FILE_PATH")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("cache.backend", "SEARCH_CACHE_BACKEND")
	v.BindEnv("cache.ttl", "SEARCH_CACHE_TTL")
	v.BindEnv("search.limit_per_category", "SEARCH_LIMIT_PER_CATEGORY")
	v.BindEnv("search.max_limit", "SEARCH_MAX_LIMIT")
	v.BindEnv("search.min_score.podcast", "PODCAST_MIN_RELEVANCE_SCORE")
	v.BindEnv("search.min_score.episode", "EPISODE_MIN_RELEVANCE_SCORE")
	v.BindEnv("search.min_score.post", "POST_MIN_RELEVANCE_SCORE")
	v.BindEnv("search.min_score.comment", "COMMENT_MIN_RELEVANCE_SCORE")
	v.BindEnv("search.min_score.message", "MESSAGE_MIN_RELEVANCE_SCORE")
	v.BindEnv("search.min_score.event", "EVENT_MIN_RELEVANCE_SCORE")
	v.BindEnv("search.min_score.resource", "RESOURCE_MIN_RELEVANCE_SCORE")
	v.BindEnv("search.min_score.user", "USER_MIN_RELEVANCE_SCORE")
	v.BindEnv("search.min_score.partner", "PARTNER_MIN_RELEVANCE_SCORE")
	v.BindEnv("search.min_score.expert", "EXPERT_MIN_RELEVANCE_SCORE")
	v.BindEnv("listennotes.api_key", "LISTENNOTES_API_KEY")
	v.BindEnv("storage.endpoint", "R2_ENDPOINT")
	v.BindEnv("storage.bucket", "R2_BUCKET")
	v.BindEnv("storage.access_key_id", "R2_ACCESS_KEY_ID")
	v.BindEnv("storage.secret_access_key", "R2_SECRET_ACCESS_KEY")
	v.BindEnv("storage.public_url", "R2_PUBLIC_URL")
	v.BindEnv("profile.cache_ttl", "USER_PROFILE_CACHE_TTL")
	v.BindEnv("profile.cache_max_size", "USER_PROFILE_CACHE_MAX_SIZE")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET_KEY")
	v.BindEnv("kafka.enabled", "KAFKA_ENABLED")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
