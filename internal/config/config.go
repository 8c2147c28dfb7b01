package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Admin     AdminConfig     `yaml:"admin"`
	Uploads   UploadsConfig   `yaml:"uploads"`
	Notify    NotifyConfig    `yaml:"notify"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	Mailgun   MailgunConfig   `yaml:"mailgun"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"SERVER_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"DATABASE_PATH" env-default:"najdi.sqlite3"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	File  string `yaml:"file"  env:"LOG_FILE"`
}

// AdminConfig names the account created on first run.
type AdminConfig struct {
	Username string `yaml:"username" env:"ADMIN_USERNAME" env-default:"Admin"`
}

// UploadsConfig selects where item images are stored.
type UploadsConfig struct {
	Backend string   `yaml:"backend" env:"UPLOADS_BACKEND" env-default:"db"`
	S3      S3Config `yaml:"s3"`
}

// S3Config holds S3-compatible object storage settings.
type S3Config struct {
	Bucket    string `yaml:"bucket"     env:"S3_BUCKET"`
	Region    string `yaml:"region"     env:"S3_REGION"`
	Endpoint  string `yaml:"endpoint"   env:"S3_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
}

// NotifyConfig holds owner notification settings.
type NotifyConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"NOTIFY_TIMEOUT" env-default:"10s"`
}

// TwilioConfig holds SMS credentials. Leaving all fields empty disables SMS.
type TwilioConfig struct {
	AccountSID string `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `yaml:"auth_token"  env:"TWILIO_AUTH_TOKEN"`
	From       string `yaml:"from"        env:"TWILIO_PHONE_NUMBER"`
}

// Enabled reports whether SMS delivery is configured.
func (c TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != ""
}

// MailgunConfig holds email credentials. Leaving all fields empty disables email.
type MailgunConfig struct {
	Domain      string `yaml:"domain"       env:"MAILGUN_DOMAIN"`
	APIKey      string `yaml:"api_key"      env:"MAILGUN_API_KEY"`
	SenderEmail string `yaml:"sender_email" env:"MAILGUN_SENDER_EMAIL"`
	SenderName  string `yaml:"sender_name"  env:"MAILGUN_SENDER_NAME" env-default:"Najdi"`
}

// Enabled reports whether email delivery is configured.
func (c MailgunConfig) Enabled() bool {
	return c.Domain != "" && c.APIKey != "" && c.SenderEmail != ""
}

// RateLimitConfig limits the public search, message and report endpoints
// per client IP.
type RateLimitConfig struct {
	Rate  float64 `yaml:"rate"  env:"RATE_LIMIT_RATE"  env-default:"1"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"10"`
}
