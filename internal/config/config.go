package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConf struct {
	Env             string `mapstructure:"env"`
	Port            int    `mapstructure:"port"`
	URL             string `mapstructure:"url"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_seconds"`
	IdleTimeoutSec  int    `mapstructure:"idle_timeout_seconds"`
	ShutdownSec     int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type JWTConf struct {
	Secret  string `mapstructure:"secret"`
	TTLDays int    `mapstructure:"ttl_days"`
}

type TwilioConf struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	From       string `mapstructure:"from"`
}

type BrevoConf struct {
	APIKey      string `mapstructure:"api_key"`
	SenderEmail string `mapstructure:"sender_email"`
	SenderName  string `mapstructure:"sender_name"`
}

type SecurityConf struct {
	OTPTTLMinutes    int `mapstructure:"otp_ttl_minutes"`
	PasswordHashCost int `mapstructure:"password_hash_cost"`
	NotifyTimeoutSec int `mapstructure:"notify_timeout_seconds"`
}

type StorageConf struct {
	Driver     string `mapstructure:"driver"` // "local" or "s3"
	UploadDir  string `mapstructure:"upload_dir"`
	AWSRegion  string `mapstructure:"aws_region"`
	Bucket     string `mapstructure:"bucket"`
	PublicRead bool   `mapstructure:"public_read"`
}

type Config struct {
	App      AppConf      `mapstructure:"app"`
	Mongo    MongoConf    `mapstructure:"mongodb"`
	JWT      JWTConf      `mapstructure:"jwt"`
	Twilio   TwilioConf   `mapstructure:"twilio"`
	Brevo    BrevoConf    `mapstructure:"brevo"`
	Security SecurityConf `mapstructure:"security"`
	Storage  StorageConf  `mapstructure:"storage"`

	// derived
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	NotifyTimeout   time.Duration
	TokenTTL        time.Duration
	OTPTTL          time.Duration
}

// Load reads the YAML config at path and applies environment overrides.
// A .env file is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	bind := func(key, env string) { _ = v.BindEnv(key, env) }
	bind("app.env", "APP_ENV")
	bind("app.port", "APP_PORT")
	bind("app.url", "APP_URL")
	bind("mongodb.uri", "MONGO_URI")
	bind("mongodb.database", "MONGO_DB")
	bind("jwt.secret", "JWT_SECRET")
	bind("jwt.ttl_days", "JWT_TTL_DAYS")
	bind("twilio.account_sid", "TWILIO_ACCOUNT_SID")
	bind("twilio.auth_token", "TWILIO_AUTH_TOKEN")
	bind("twilio.from", "TWILIO_PHONE_NUMBER")
	bind("brevo.api_key", "BREVO_API_KEY")
	bind("brevo.sender_email", "BREVO_SENDER_EMAIL")
	bind("brevo.sender_name", "BREVO_SENDER_NAME")
	bind("security.otp_ttl_minutes", "OTP_TTL_MINUTES")
	bind("security.password_hash_cost", "PASSWORD_HASH_COST")
	bind("storage.driver", "STORAGE_DRIVER")
	bind("storage.bucket", "STORAGE_BUCKET")
	bind("storage.aws_region", "AWS_REGION")
	bind("storage.public_read", "STORAGE_PUBLIC_READ")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if cfg.Mongo.URI == "" {
		return nil, errors.New("mongodb.uri is required (MONGO_URI)")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt.secret is required (JWT_SECRET)")
	}

	cfg.ReadTimeout = time.Duration(cfg.App.ReadTimeoutSec) * time.Second
	cfg.WriteTimeout = time.Duration(cfg.App.WriteTimeoutSec) * time.Second
	cfg.IdleTimeout = time.Duration(cfg.App.IdleTimeoutSec) * time.Second
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSec) * time.Second
	cfg.NotifyTimeout = time.Duration(cfg.Security.NotifyTimeoutSec) * time.Second
	cfg.TokenTTL = time.Duration(cfg.JWT.TTLDays) * 24 * time.Hour
	cfg.OTPTTL = time.Duration(cfg.Security.OTPTTLMinutes) * time.Minute
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == 0 {
		cfg.App.Port = 5000
	}
	if cfg.App.URL == "" {
		cfg.App.URL = "http://localhost:5000"
	}
	if cfg.App.ReadTimeoutSec == 0 {
		cfg.App.ReadTimeoutSec = 30
	}
	if cfg.App.WriteTimeoutSec == 0 {
		cfg.App.WriteTimeoutSec = 30
	}
	if cfg.App.IdleTimeoutSec == 0 {
		cfg.App.IdleTimeoutSec = 60
	}
	if cfg.App.ShutdownSec == 0 {
		cfg.App.ShutdownSec = 10
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "auth_system"
	}
	if cfg.Mongo.Collection == "" {
		cfg.Mongo.Collection = "users"
	}
	if cfg.JWT.TTLDays == 0 {
		cfg.JWT.TTLDays = 7
	}
	if cfg.Security.OTPTTLMinutes == 0 {
		cfg.Security.OTPTTLMinutes = 10
	}
	if cfg.Security.PasswordHashCost == 0 {
		cfg.Security.PasswordHashCost = 10
	}
	if cfg.Security.NotifyTimeoutSec == 0 {
		cfg.Security.NotifyTimeoutSec = 5
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "local"
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "uploads/profile-pictures"
	}
}

// IsDevelopment reports whether the service runs in development mode. The
// dev-only OTP echo in API responses is gated on this.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}
