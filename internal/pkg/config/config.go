package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets, admin credentials)
// - default: Values common across all environments (timezone, timeouts, backends), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Admin     AdminConfig
	Mail      MailConfig
	Notify    NotifyConfig
	Kafka     KafkaConfig
	Redis     RedisConfig
	Reminder  ReminderConfig
	RateLimit RateLimitConfig
	Booking   BookingConfig
	Activity  ActivityConfig
}

type ServerConfig struct {
	Port               string `envconfig:"PORT" required:"true"`
	BaseURL            string `envconfig:"BASE_URL" default:"http://localhost:3000"`
	AdminDashboardPath string `envconfig:"ADMIN_DASHBOARD_PATH" default:"/admin/settings"`
}

const (
	StoreBackendJSON     = "json"
	StoreBackendPostgres = "postgres"
)

type StoreConfig struct {
	DataDir  string `envconfig:"DATA_DIR" default:"data"`
	Backend  string `envconfig:"STORE_BACKEND" default:"json"`
	SeedFile string `envconfig:"SEED_FILE" default:""`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:""`
	Password string `envconfig:"DB_PASSWORD" default:""`
	DBName   string `envconfig:"DB_NAME" default:"aura_inn"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5.5*60*60
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"720h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAMESITE" default:"Lax"`
}

type AdminConfig struct {
	Username     string `envconfig:"ADMIN_USERNAME" default:"admin"`
	PasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`
}

type MailConfig struct {
	Host              string        `envconfig:"SMTP_HOST" default:"smtp.googlemail.com"`
	Port              int           `envconfig:"SMTP_PORT" default:"587"`
	Username          string        `envconfig:"GMAIL_USER" default:""`
	Password          string        `envconfig:"GMAIL_APP_PASSWORD" default:""`
	FromName          string        `envconfig:"MAIL_FROM_NAME" default:"The Aura Inn"`
	InsecureTLS       bool          `envconfig:"SMTP_TLS_INSECURE" default:"false"`
	ConnectionTimeout time.Duration `envconfig:"SMTP_CONNECTION_TIMEOUT" default:"30s"`
	GreetingTimeout   time.Duration `envconfig:"SMTP_GREETING_TIMEOUT" default:"20s"`
	SocketTimeout     time.Duration `envconfig:"SMTP_SOCKET_TIMEOUT" default:"30s"`
	LocationURL       string        `envconfig:"HOTEL_LOCATION_URL" default:"https://maps.google.com"`
}

// Enabled reports whether real SMTP delivery is configured.
func (m MailConfig) Enabled() bool {
	return m.Username != "" && m.Password != ""
}

const (
	QueueBackendMemory = "memory"
	QueueBackendKafka  = "kafka"
)

type NotifyConfig struct {
	Queue        string        `envconfig:"NOTIFY_QUEUE" default:"memory"`
	Workers      int           `envconfig:"NOTIFY_WORKERS" default:"2"`
	Buffer       int           `envconfig:"NOTIFY_BUFFER" default:"256"`
	MaxAttempts  int           `envconfig:"NOTIFY_MAX_ATTEMPTS" default:"3"`
	RetryBackoff time.Duration `envconfig:"NOTIFY_RETRY_BACKOFF" default:"30s"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"aura-inn.notifications"`
	GroupID string   `envconfig:"KAFKA_GROUP_ID" default:"aura-inn-notifier"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

const (
	SweepStateFile  = "file"
	SweepStateRedis = "redis"
)

type ReminderConfig struct {
	Schedule      string        `envconfig:"REMINDER_SCHEDULE" default:"0 9 * * *"`
	HotelTimeZone string        `envconfig:"HOTEL_TIMEZONE" default:"Asia/Kolkata"`
	StateBackend  string        `envconfig:"SWEEP_STATE_BACKEND" default:"file"`
	LockTTL       time.Duration `envconfig:"SWEEP_LOCK_TTL" default:"10m"`
	RunAtStartup  bool          `envconfig:"REMINDER_CATCH_UP" default:"true"`
}

// Location falls back to UTC when the configured zone is unknown.
func (r ReminderConfig) Location() *time.Location {
	loc, err := time.LoadLocation(r.HotelTimeZone)
	if err != nil {
		slog.Warn("unknown hotel timezone, using UTC", "timezone", r.HotelTimeZone, "error", err)
		return time.UTC
	}
	return loc
}

type RateLimitConfig struct {
	PerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"30"`
	Burst     int `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

type BookingConfig struct {
	StrictValidation bool `envconfig:"BOOKING_STRICT_VALIDATION" default:"false"`
}

type ActivityConfig struct {
	Size int `envconfig:"ACTIVITY_LOG_SIZE" default:"200"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env not loaded; continuing with process environment", "error", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case StoreBackendJSON, StoreBackendPostgres:
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.Store.Backend)
	}
	switch c.Notify.Queue {
	case QueueBackendMemory, QueueBackendKafka:
	default:
		return fmt.Errorf("unsupported NOTIFY_QUEUE %q", c.Notify.Queue)
	}
	switch c.Reminder.StateBackend {
	case SweepStateFile, SweepStateRedis:
	default:
		return fmt.Errorf("unsupported SWEEP_STATE_BACKEND %q", c.Reminder.StateBackend)
	}
	if c.Notify.MaxAttempts < 1 {
		return fmt.Errorf("NOTIFY_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

const TestAdminPassword = "admin123"

func testPasswordHash(plain string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		panic("failed to hash test admin password: " + err.Error())
	}
	return string(hash)
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:               "8889", // Test port
			BaseURL:            "http://localhost:8889",
			AdminDashboardPath: "/admin/settings",
		},
		Store: StoreConfig{
			DataDir: "testdata",
			Backend: StoreBackendJSON,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Kolkata",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Kolkata",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
		},
		Cookie: CookieConfig{SameSite: "Lax"},
		Admin: AdminConfig{
			Username:     "admin",
			PasswordHash: testPasswordHash(TestAdminPassword),
		},
		Mail: MailConfig{
			Host:              "localhost",
			Port:              2525,
			FromName:          "The Aura Inn",
			ConnectionTimeout: time.Second,
			GreetingTimeout:   time.Second,
			SocketTimeout:     time.Second,
			LocationURL:       "https://maps.google.com",
		},
		Notify: NotifyConfig{
			Queue:        QueueBackendMemory,
			Workers:      1,
			Buffer:       16,
			MaxAttempts:  3,
			RetryBackoff: 10 * time.Millisecond,
		},
		Reminder: ReminderConfig{
			Schedule:      "0 9 * * *",
			HotelTimeZone: "Asia/Kolkata",
			StateBackend:  SweepStateFile,
			LockTTL:       time.Minute,
		},
		RateLimit: RateLimitConfig{PerMinute: 6000, Burst: 1000},
		Activity:  ActivityConfig{Size: 50},
	}
}
