package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnrollmentPolicyReject = "reject"
	EnrollmentPolicyAllow  = "allow"
)

type Config struct {
	HTTPPort string `mapstructure:"HTTP_PORT"`
	GRPCPort string `mapstructure:"GRPC_PORT"`

	DBDriver   string `mapstructure:"DB_DRIVER"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`

	RedisAddr string `mapstructure:"REDIS_ADDR"`

	AccessSecret  string `mapstructure:"ACCESS_SECRET"`
	RefreshSecret string `mapstructure:"REFRESH_SECRET"`
	AuthEnabled   bool   `mapstructure:"AUTH_ENABLED"`

	EnrollmentPolicy string `mapstructure:"ENROLLMENT_POLICY"`
	AllowedOrigins   string `mapstructure:"ALLOWED_ORIGINS"`
	SeedData         bool   `mapstructure:"SEED_DATA"`
}

var envKeys = []string{
	"HTTP_PORT", "GRPC_PORT",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "SQLITE_PATH",
	"REDIS_ADDR",
	"ACCESS_SECRET", "REFRESH_SECRET", "AUTH_ENABLED",
	"ENROLLMENT_POLICY", "ALLOWED_ORIGINS", "SEED_DATA",
}

// LoadConfig reads app.env from path when present and lets the environment
// override every key.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("HTTP_PORT", ":8080")
	v.SetDefault("GRPC_PORT", ":9090")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("SQLITE_PATH", "lms.db")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("ENROLLMENT_POLICY", EnrollmentPolicyReject)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("SEED_DATA", true)

	v.AutomaticEnv()

	// Bind explicitly so Unmarshal sees env vars even without a config file.
	for _, key := range envKeys {
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	err = config.validate()
	return
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.EnrollmentPolicy {
	case EnrollmentPolicyReject, EnrollmentPolicyAllow:
	default:
		return fmt.Errorf("config: unsupported ENROLLMENT_POLICY %q", c.EnrollmentPolicy)
	}
	if c.AuthEnabled && (c.AccessSecret == "" || c.RefreshSecret == "") {
		return fmt.Errorf("config: AUTH_ENABLED requires ACCESS_SECRET and REFRESH_SECRET")
	}
	return nil
}

// PostgresDSN builds the connection string for gorm's postgres driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
