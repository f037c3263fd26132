package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// Config 保存应用程序配置。
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Security SecurityConfig
	Email    EmailConfig
	SMS      SMSConfig
	Storage  StorageConfig
	Sentry   SentryConfig
}

// AppConfig 应用程序基础配置。
type AppConfig struct {
	Port               string
	GinMode            string
	LogLevel           string
	Domain             string // 公网访问地址，用于拼接验证链接
	ReportBanThreshold int    // 举报数达到该值后帖子被屏蔽
}

type DatabaseConfig struct {
	DSN string
}

// SecurityConfig 安全相关配置。
type SecurityConfig struct {
	JWTSecret string
	JWTTTL    time.Duration // 0 表示签发的 token 不过期
}

// EmailConfig 邮件发送配置。
type EmailConfig struct {
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromEmail string
}

// SMSConfig 短信网关配置。
type SMSConfig struct {
	APIURL string
	APIKey string
	From   string
}

// StorageConfig S3 兼容对象存储配置。
type StorageConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string // 图片对外访问前缀
}

type SentryConfig struct {
	DSN         string
	Environment string
}

// Load reads an optional .env file, then resolves every setting from the
// environment with defaults applied.
func Load(envFiles ...string) (*Config, error) {
	// .env 不存在时直接使用系统环境变量
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Port:               v.GetString("port"),
			GinMode:            v.GetString("gin_mode"),
			LogLevel:           v.GetString("log_level"),
			Domain:             strings.TrimRight(v.GetString("watog_domain"), "/"),
			ReportBanThreshold: v.GetInt("report_ban_threshold"),
		},
		Database: DatabaseConfig{
			DSN: v.GetString("database_url"),
		},
		Security: SecurityConfig{
			JWTSecret: v.GetString("jwt_secret"),
			JWTTTL:    v.GetDuration("jwt_ttl"),
		},
		Email: EmailConfig{
			SMTPHost:  v.GetString("smtp_host"),
			SMTPPort:  v.GetInt("smtp_port"),
			SMTPUser:  v.GetString("smtp_user"),
			SMTPPass:  v.GetString("smtp_pass"),
			FromEmail: v.GetString("smtp_from"),
		},
		SMS: SMSConfig{
			APIURL: v.GetString("sms_api_url"),
			APIKey: v.GetString("sms_api_key"),
			From:   v.GetString("sms_from"),
		},
		Storage: StorageConfig{
			Bucket:    v.GetString("s3_bucket"),
			Region:    v.GetString("s3_region"),
			Endpoint:  v.GetString("s3_endpoint"),
			AccessKey: v.GetString("s3_access_key"),
			SecretKey: v.GetString("s3_secret_key"),
			PublicURL: strings.TrimRight(v.GetString("s3_public_url"), "/"),
		},
		Sentry: SentryConfig{
			DSN:         v.GetString("sentry_dsn"),
			Environment: v.GetString("sentry_environment"),
		},
	}

	if strings.TrimSpace(cfg.Security.JWTSecret) == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("watog_domain", "http://localhost:8080")
	v.SetDefault("report_ban_threshold", 10)
	// Fallback for local dev if not set
	v.SetDefault("database_url", "host=localhost user=postgres password=postgres dbname=watog port=5432 sslmode=disable")
	v.SetDefault("jwt_ttl", time.Duration(0))
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_from", "support@watog.com")
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("sentry_environment", "development")
}

// MailEnabled reports whether enough SMTP settings are present to send mail.
func (c EmailConfig) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.FromEmail != ""
}

// Enabled reports whether object storage is configured.
func (c StorageConfig) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}
