package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"3000"`

	// Store selects the booking database: memory, mongo or postgres
	Store       string        `envconfig:"STORE" default:"memory"`
	MongoURI    string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017/"`
	MongoDB     string        `envconfig:"MONGO_DB" default:"residence"`
	MongoUser   string        `envconfig:"MONGO_USER"`
	MongoPass   string        `envconfig:"MONGO_PASS"`
	PostgresDSN string        `envconfig:"POSTGRES_DSN"`
	DBTimeout   time.Duration `envconfig:"DB_TIMEOUT" default:"10s"`

	// codes are kept in memory unless RedisAddr is set
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	EmailUser    string `envconfig:"EMAIL_USER"`
	EmailPass    string `envconfig:"EMAIL_PASS"`
	AdminEmail   string `envconfig:"ADMIN_EMAIL"`
	AdminURL     string `envconfig:"ADMIN_URL"`
	ContactPhone string `envconfig:"CONTACT_PHONE"`
	HotelName    string `envconfig:"HOTEL_NAME" default:"Sultana Residence"`

	JWTKey       string        `envconfig:"JWT_KEY"`
	AccessTTL    time.Duration `envconfig:"ACCESS_TTL" default:"15m"`
	OTPTTL       time.Duration `envconfig:"OTP_TTL" default:"5m"`
	RoomCacheTTL time.Duration `envconfig:"ROOM_CACHE_TTL" default:"5m"`
	// zero disables the periodic sweep of expired in-memory codes
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"5m"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`
	StaticDir   string   `envconfig:"STATIC_DIR" default:"public"`
}

// LoadConfig reads .env, when there is one, and then the environment.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("err when loading %s: %w", f, err)
		}
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("err when reading config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case "memory", "mongo":
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORE=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE %q, expected memory, mongo or postgres", c.Store)
	}
	return nil
}

// InboxEmail is where booking and contact notifications go.
func (c *Config) InboxEmail() string {
	if c.AdminEmail != "" {
		return c.AdminEmail
	}
	return c.EmailUser
}
