package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	Sheets    SheetsConfig
	AI        AIConfig
}

type AppConfig struct {
	Port         string
	Env          string
	CookieSecure bool
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type AdminConfig struct {
	// BootstrapKey gates admin creation. Empty disables the endpoint.
	BootstrapKey string
}

type RateLimitConfig struct {
	// Auth is a ulule formatted rate ("20-M"). Empty disables limiting.
	Auth string
}

type StorageConfig struct {
	Driver      string
	UploadDir   string
	S3Region    string
	S3Endpoint  string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsJSON string
	CredentialsFile string
	Cron            string
}

type AIConfig struct {
	APIKey string
	Model  string
}

var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET and REFRESH_TOKEN_SECRET must be set")
	ErrSameJWTSecret    = errors.New("JWT_SECRET and REFRESH_TOKEN_SECRET must differ")
)

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = time.Hour
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 24 * time.Hour
	}

	env := viper.GetString("APP_ENV")

	config := &Config{
		App: AppConfig{
			Port:         viper.GetString("APP_PORT"),
			Env:          env,
			CookieSecure: viper.GetBool("COOKIE_SECURE") || env == "production",
		},
		DB: DBConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASSWORD"),
			Name:        viper.GetString("DB_NAME"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:  viper.GetString("JWT_SECRET"),
			RefreshSecret: viper.GetString("REFRESH_TOKEN_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Admin: AdminConfig{
			BootstrapKey: viper.GetString("ADMIN_BOOTSTRAP_KEY"),
		},
		RateLimit: RateLimitConfig{
			Auth: viper.GetString("RATE_LIMIT_AUTH"),
		},
		Storage: StorageConfig{
			Driver:      viper.GetString("STORAGE_DRIVER"),
			UploadDir:   viper.GetString("UPLOAD_DIR"),
			S3Region:    viper.GetString("S3_REGION"),
			S3Endpoint:  viper.GetString("S3_ENDPOINT"),
			S3Bucket:    viper.GetString("S3_BUCKET"),
			S3AccessKey: viper.GetString("S3_ACCESS_KEY"),
			S3SecretKey: viper.GetString("S3_SECRET_KEY"),
			S3PublicURL: viper.GetString("S3_PUBLIC_URL"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   viper.GetString("SPREADSHEET_ID"),
			CredentialsJSON: viper.GetString("GOOGLE_CREDENTIALS_JSON"),
			CredentialsFile: viper.GetString("GOOGLE_CREDENTIALS_FILE"),
			Cron:            viper.GetString("SHEET_SYNC_CRON"),
		},
		AI: AIConfig{
			APIKey: viper.GetString("AI_API_KEY"),
			Model:  viper.GetString("AI_MODEL"),
		},
	}

	if err := config.JWT.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects empty secrets and a refresh secret equal to the access one.
func (c JWTConfig) Validate() error {
	if c.AccessSecret == "" || c.RefreshSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.AccessSecret == c.RefreshSecret {
		return ErrSameJWTSecret
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "3000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("JWT_ACCESS_EXPIRY", "1h")
	viper.SetDefault("JWT_REFRESH_EXPIRY", "24h")
	viper.SetDefault("RATE_LIMIT_AUTH", "20-M")
	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("UPLOAD_DIR", "public/uploads")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials/google-credentials.json")
	viper.SetDefault("SHEET_SYNC_CRON", "*/5 * * * *")
	viper.SetDefault("AI_MODEL", "gemini-2.0-flash")
}
