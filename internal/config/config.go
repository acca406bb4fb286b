package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Overpass OverpassConfig
	Query    QueryConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	GeoJSONCacheTTL time.Duration
	StatsCacheTTL   time.Duration
}

type LogConfig struct {
	Level string
}

// OverpassConfig - настройки клиента Overpass API
type OverpassConfig struct {
	Endpoints      []string
	RequestTimeout int // seconds, also sent as the server-side [timeout:N]
	UserAgent      string
	MaxDataLag     time.Duration
}

// QueryConfig - регионы и наборы значений тегов для запроса
type QueryConfig struct {
	Regions            []int64
	TourismValue       string
	LeisureValues      []string
	AttractionValues   []string
	SportValuePrefixes []string
}

type WorkerConfig struct {
	Enabled         bool
	RefreshInterval time.Duration
	RetryRounds     int
	RetryDelay      time.Duration
	DropThreshold   float64 // percent
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			GeoJSONCacheTTL: time.Duration(viper.GetInt("GEOJSON_CACHE_TTL")) * time.Second,
			StatsCacheTTL:   time.Duration(viper.GetInt("STATS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Overpass: OverpassConfig{
			Endpoints:      parseStringList(viper.GetString("OVERPASS_ENDPOINTS")),
			RequestTimeout: viper.GetInt("OVERPASS_TIMEOUT"),
			UserAgent:      viper.GetString("FUNMAP_USER_AGENT"),
			MaxDataLag:     time.Duration(viper.GetInt("FUNMAP_MAX_DATA_LAG_HOURS")) * time.Hour,
		},
		Query: QueryConfig{
			Regions:            parseRegionIDs(viper.GetString("QUERY_REGIONS")),
			TourismValue:       viper.GetString("QUERY_TOURISM_VALUE"),
			LeisureValues:      parseStringList(viper.GetString("QUERY_LEISURE_VALUES")),
			AttractionValues:   parseStringList(viper.GetString("QUERY_ATTRACTION_VALUES")),
			SportValuePrefixes: parseStringList(viper.GetString("QUERY_SPORT_PREFIXES")),
		},
		Worker: WorkerConfig{
			Enabled:         viper.GetBool("WORKER_ENABLED"),
			RefreshInterval: time.Duration(viper.GetInt("WORKER_REFRESH_INTERVAL")) * time.Second,
			RetryRounds:     viper.GetInt("WORKER_RETRY_ROUNDS"),
			RetryDelay:      time.Duration(viper.GetInt("WORKER_RETRY_DELAY")) * time.Second,
			DropThreshold:   viper.GetFloat64("FUNMAP_DROP_THRESHOLD"),
		},
	}

	// Set default values if not provided
	if len(cfg.Overpass.Endpoints) == 0 {
		cfg.Overpass.Endpoints = []string{
			"https://overpass-api.de/api/interpreter",
			"https://overpass.kumi.systems/api/interpreter",
			"https://maps.mail.ru/osm/tools/overpass/api/interpreter",
			"https://overpass.private.coffee/api/interpreter",
		}
	}
	if cfg.Overpass.RequestTimeout == 0 {
		cfg.Overpass.RequestTimeout = 180
	}
	if cfg.Overpass.UserAgent == "" {
		cfg.Overpass.UserAgent = "funmap-service/1.0"
	}
	if cfg.Overpass.MaxDataLag == 0 {
		cfg.Overpass.MaxDataLag = 48 * time.Hour
	}
	if len(cfg.Query.Regions) == 0 {
		cfg.Query.Regions = []int64{1633325, 2534201}
	}
	if cfg.Query.TourismValue == "" {
		cfg.Query.TourismValue = "zoo"
	}
	if len(cfg.Query.LeisureValues) == 0 {
		cfg.Query.LeisureValues = []string{
			"water_park", "amusement_arcade", "trampoline_park",
			"miniature_golf", "bowling_alley", "escape_game", "ice_rink",
		}
	}
	if len(cfg.Query.AttractionValues) == 0 {
		cfg.Query.AttractionValues = []string{
			"carousel", "roller_coaster", "big_wheel",
			"bumper_car", "water_slide", "maze", "train",
		}
	}
	if len(cfg.Query.SportValuePrefixes) == 0 {
		cfg.Query.SportValuePrefixes = []string{"climbing", "skateboard", "karting"}
	}
	if cfg.Worker.RefreshInterval == 0 {
		cfg.Worker.RefreshInterval = 24 * time.Hour
	}
	if cfg.Worker.RetryRounds == 0 {
		cfg.Worker.RetryRounds = 2
	}
	if cfg.Worker.RetryDelay == 0 {
		cfg.Worker.RetryDelay = 60 * time.Minute
	}
	if cfg.Worker.DropThreshold == 0 {
		cfg.Worker.DropThreshold = 50
	}
	if cfg.Cache.GeoJSONCacheTTL == 0 {
		cfg.Cache.GeoJSONCacheTTL = time.Hour
	}
	if cfg.Cache.StatsCacheTTL == 0 {
		cfg.Cache.StatsCacheTTL = 5 * time.Minute
	}

	return cfg, nil
}

func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func parseRegionIDs(s string) []int64 {
	ids := make([]int64, 0)
	for _, p := range parseStringList(s) {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
