package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Port    int
	WebPort int
}

type DBConfig struct {
	URL string
}

type CORSConfig struct {
	FrontendURL string
	VercelURL   string
}

type FirebaseConfig struct {
	CredentialsBase64 string
	CredentialsFile   string
	Topic             string
}

type KeepaliveConfig struct {
	Interval time.Duration
}

type Config struct {
	Environment      string
	HTTP             HTTPConfig
	DB               DBConfig
	CORS             CORSConfig
	Firebase         FirebaseConfig
	Keepalive        KeepaliveConfig
	GoogleMapsAPIKey string
	// EnvFileLoaded is false when no .env file was found.
	EnvFileLoaded bool
}

func Load() (*Config, error) {
	envLoaded := godotenv.Load() == nil

	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", 8000)
	v.SetDefault("WEB_PORT", 5500)
	v.SetDefault("FCM_TOPIC", "bin-reports")
	v.SetDefault("KEEPALIVE_INTERVAL", "336h")

	_ = v.ReadInConfig()

	interval, err := time.ParseDuration(v.GetString("KEEPALIVE_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid KEEPALIVE_INTERVAL: %w", err)
	}

	cfg := &Config{
		Environment: strings.TrimSpace(v.GetString("APP_ENV")),
		HTTP: HTTPConfig{
			Port:    v.GetInt("PORT"),
			WebPort: v.GetInt("WEB_PORT"),
		},
		DB: DBConfig{
			URL: strings.TrimSpace(v.GetString("DATABASE_URL")),
		},
		CORS: CORSConfig{
			FrontendURL: strings.TrimSpace(v.GetString("FRONTEND_URL")),
			VercelURL:   strings.TrimSpace(v.GetString("VERCEL_URL")),
		},
		Firebase: FirebaseConfig{
			CredentialsBase64: strings.TrimSpace(v.GetString("FIREBASE_CREDENTIALS_BASE64")),
			CredentialsFile:   strings.TrimSpace(v.GetString("FIREBASE_CREDENTIALS_FILE")),
			Topic:             strings.TrimSpace(v.GetString("FCM_TOPIC")),
		},
		Keepalive: KeepaliveConfig{
			Interval: interval,
		},
		GoogleMapsAPIKey: strings.TrimSpace(v.GetString("GOOGLE_MAPS_API_KEY")),
		EnvFileLoaded:    envLoaded,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequireDatabase fails when DATABASE_URL is unset. Only the backend and the
// migrate tool need a database; the web client does not.
func (c *Config) RequireDatabase() error {
	if c.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return nil
}

// AllowedOrigins is the CORS allow-list for the backend.
func (c *Config) AllowedOrigins() []string {
	origins := []string{
		"https://dumptrac-hml5.vercel.app",
		"https://dumptrac.vercel.app",
		"http://127.0.0.1:5500",
		"http://localhost:5500",
	}
	if c.CORS.VercelURL != "" {
		origins = append(origins, "https://"+c.CORS.VercelURL)
	}
	if c.CORS.FrontendURL != "" {
		origins = append(origins, c.CORS.FrontendURL)
	}
	return origins
}

func validate(cfg *Config) error {
	if cfg.HTTP.Port <= 0 {
		return fmt.Errorf("PORT must be positive")
	}
	if cfg.HTTP.WebPort <= 0 {
		return fmt.Errorf("WEB_PORT must be positive")
	}
	if cfg.Keepalive.Interval <= 0 {
		return fmt.Errorf("KEEPALIVE_INTERVAL must be positive")
	}
	return nil
}
