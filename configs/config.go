package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver  string        `mapstructure:"db_driver"`
	DBSource  string        `mapstructure:"db_source"`
	Port      string        `mapstructure:"port"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTTTL    time.Duration `mapstructure:"jwt_ttl"`

	// DemoMode fills missing menu fields with seed values. Never enable it
	// against real data.
	DemoMode bool   `mapstructure:"demo_mode"`
	LogLevel string `mapstructure:"log_level"`
	Timezone string `mapstructure:"timezone"`

	RulesKey          string        `mapstructure:"rules_key"`
	StrictRulesEditor bool          `mapstructure:"strict_rules_editor"`
	RefreshInterval   time.Duration `mapstructure:"refresh_interval"`

	AdminEmail    string   `mapstructure:"admin_email"`
	AdminPassword string   `mapstructure:"admin_password"`
	CORSOrigins   []string `mapstructure:"cors_origins"`
}

// DefaultJWTSecret signs tokens when JWT_SECRET is not set. It is public, so
// serve only accepts it in demo mode.
const DefaultJWTSecret = "changeme"

var defaults = map[string]any{
	"db_driver":           "sqlite",
	"db_source":           "catering.db",
	"port":                "8000",
	"jwt_secret":          DefaultJWTSecret,
	"jwt_ttl":             24 * time.Hour,
	"demo_mode":           false,
	"log_level":           "info",
	"timezone":            "UTC",
	"rules_key":           "businessRules",
	"strict_rules_editor": false,
	"refresh_interval":    time.Minute,
	"admin_email":         "",
	"admin_password":      "",
	"cors_origins":        []string{},
}

// LoadConfig reads .env (when present), the optional config file and the
// environment, in increasing precedence.
func LoadConfig(cfgFile string) (*Config, error) {
	return Load(viper.New(), cfgFile)
}

// Load is LoadConfig on a caller-supplied viper instance, so command-line
// flags bound to it take part.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.RefreshInterval <= 0 {
		return errors.New("REFRESH_INTERVAL must be positive")
	}
	return nil
}

// CheckSecret refuses the built-in JWT secret outside demo mode and warns
// when demo mode runs with it.
func (c *Config) CheckSecret(log zerolog.Logger) error {
	if c.JWTSecret != DefaultJWTSecret {
		return nil
	}
	if !c.DemoMode {
		return errors.New("JWT_SECRET is not set; refusing to sign tokens with the default secret")
	}
	log.Warn().Msg("JWT_SECRET is not set; tokens are signed with the default secret")
	return nil
}

// Location is the zone business hours are evaluated in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
