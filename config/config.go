package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 애플리케이션 전역 설정
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"db"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Holiday  HolidayConfig  `mapstructure:"holiday"`
	Studio   StudioConfig   `mapstructure:"studio"`
	Board    BoardConfig    `mapstructure:"board"`
	Import   ImportConfig   `mapstructure:"import"`
}

// ServerConfig HTTP 서버 설정
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig 교차 출처 설정
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// StoreConfig 예약 저장소 선택
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "postgres" | "mongo"
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

// DatabaseConfig PostgreSQL 설정
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // 분
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // 분
}

// DSN PostgreSQL 접속 문자열
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// MongoConfig MongoDB 설정 (store.driver=mongo 일 때만 사용)
type MongoConfig struct {
	URI        string        `mapstructure:"uri"`
	Database   string        `mapstructure:"database"`
	Collection string        `mapstructure:"collection"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// RedisConfig Redis 설정
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 인증 설정
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	LoginRateLimit  int           `mapstructure:"login_rate_limit"`  // 창 내 최대 시도 횟수
	LoginRateWindow time.Duration `mapstructure:"login_rate_window"` // 제한 창 길이
}

// LogConfig 로그 설정
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// HolidayConfig 공휴일 API 설정
type HolidayConfig struct {
	APIURL     string        `mapstructure:"api_url"`
	ServiceKey string        `mapstructure:"service_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

// StudioConfig 스튜디오 운영 설정
type StudioConfig struct {
	Names         []string `mapstructure:"names"`          // 표시 순서
	DailyCapacity int      `mapstructure:"daily_capacity"` // 하루 운영 시간
}

// BoardConfig 대시보드 갱신 설정
type BoardConfig struct {
	RefreshSpec string        `mapstructure:"refresh_spec"` // cron 표현식
	Debounce    time.Duration `mapstructure:"debounce"`
}

// ImportConfig 가져오기 설정
type ImportConfig struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

// Load 설정 파일과 환경 변수에서 설정을 읽는다
// 우선순위: 환경 변수 > 설정 파일 > 기본값
func Load(path string) (*Config, error) {
	// .env 파일이 있으면 먼저 환경 변수로 올린다
	_ = godotenv.Load()

	v := viper.New()

	// ── 기본값 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("store.driver", StoreDriverPostgres)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "slive")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Seoul")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "slive")
	v.SetDefault("mongo.collection", "schedules")
	v.SetDefault("mongo.timeout", "10s")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "30m")
	v.SetDefault("auth.refresh_token_ttl", "168h")
	v.SetDefault("auth.login_rate_limit", 10)
	v.SetDefault("auth.login_rate_window", "1m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("holiday.api_url", "https://apis.data.go.kr/B090041/openapi/service/SpcdeInfoService/getRestDeInfo")
	v.SetDefault("holiday.service_key", "")
	v.SetDefault("holiday.timeout", "5s")
	v.SetDefault("holiday.cache_ttl", "24h")

	v.SetDefault("studio.names", []string{"스튜디오 메인", "스튜디오 키친", "스튜디오 소형"})
	v.SetDefault("studio.daily_capacity", 12)

	v.SetDefault("board.refresh_spec", "@every 10m")
	v.SetDefault("board.debounce", "300ms")

	v.SetDefault("import.max_upload_bytes", 10<<20)

	// ── 설정 파일 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 환경 변수 ──
	v.SetEnvPrefix("SLIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("설정 파일 읽기 실패: %w", err)
		}
		// 설정 파일이 없으면 기본값과 환경 변수만 사용
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("설정 파싱 실패: %w", err)
	}

	// ── 필수 설정 검증 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 필수 설정 항목 검증
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("설정 검증 실패: auth.jwt_secret 값이 비어 있습니다")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("설정 검증 실패: auth.jwt_secret 은 16자 이상이어야 합니다")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("설정 검증 실패: server.port 는 1-65535 범위여야 합니다")
	}
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMongo:
	default:
		return fmt.Errorf("설정 검증 실패: store.driver 는 postgres 또는 mongo 여야 합니다 (현재 %q)", c.Store.Driver)
	}
	if len(c.Studio.Names) == 0 {
		return fmt.Errorf("설정 검증 실패: studio.names 가 비어 있습니다")
	}
	if c.Studio.DailyCapacity <= 0 || c.Studio.DailyCapacity > 24 {
		return fmt.Errorf("설정 검증 실패: studio.daily_capacity 는 1-24 범위여야 합니다")
	}
	return nil
}
