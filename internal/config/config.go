package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Settings struct {
		// Key used to encrypt sensitive setting values (bot token) at rest.
		EncryptionKey string `mapstructure:"encryption_key"`
	} `mapstructure:"settings"`

	Uploads struct {
		// Driver is "local" or "s3".
		Driver   string `mapstructure:"driver"`
		Dir      string `mapstructure:"dir"`
		S3Bucket string `mapstructure:"s3_bucket"`
		// Endpoint allows S3-compatible stores (Cloudflare R2, MinIO).
		S3Endpoint  string `mapstructure:"s3_endpoint"`
		S3Region    string `mapstructure:"s3_region"`
		S3AccessKey string `mapstructure:"s3_access_key"`
		S3SecretKey string `mapstructure:"s3_secret_key"`
		S3BaseURL   string `mapstructure:"s3_base_url"`
	} `mapstructure:"uploads"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 1234)
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Origin", "Content-Length", "Content-Type", "Authorization"})
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "repair-system")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "repair_system")
	v.SetDefault("uploads.driver", "local")
	v.SetDefault("uploads.dir", "uploads/images")
	v.SetDefault("uploads.s3_region", "auto")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// Override JWT secret from environment if not set
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET not found in config or environment")
		}
	}

	// Override settings encryption key from environment if not set
	if cfg.Settings.EncryptionKey == "" || cfg.Settings.EncryptionKey == "${SETTINGS_ENC_KEY}" {
		cfg.Settings.EncryptionKey = os.Getenv("SETTINGS_ENC_KEY")
		if cfg.Settings.EncryptionKey == "" {
			// Fall back to the JWT secret so a bare deployment still encrypts
			cfg.Settings.EncryptionKey = cfg.JWT.Secret
		}
	}

	// Load upload storage overrides from environment variables
	if driver := os.Getenv("UPLOAD_DRIVER"); driver != "" {
		cfg.Uploads.Driver = driver
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		cfg.Uploads.Dir = dir
	}
	if bucket := os.Getenv("UPLOAD_S3_BUCKET"); bucket != "" {
		cfg.Uploads.S3Bucket = bucket
	}
	if endpoint := os.Getenv("UPLOAD_S3_ENDPOINT"); endpoint != "" {
		cfg.Uploads.S3Endpoint = endpoint
	}
	if key := os.Getenv("UPLOAD_S3_ACCESS_KEY"); key != "" {
		cfg.Uploads.S3AccessKey = key
	}
	if secret := os.Getenv("UPLOAD_S3_SECRET_KEY"); secret != "" {
		cfg.Uploads.S3SecretKey = secret
	}
	if base := os.Getenv("UPLOAD_S3_BASE_URL"); base != "" {
		cfg.Uploads.S3BaseURL = base
	}

	return &cfg
}
