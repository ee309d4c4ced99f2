package config

import (
	"github.com/spf13/viper"
)

// Config 运行时配置
// 全部来自环境变量（可选 config.yaml 覆盖默认值）
type Config struct {
	ServerPort string
	Mode       string // debug / release

	DatabaseDSN string

	// 身份令牌（由外部身份服务签发，这里只做校验）
	JWTSecret string

	// Paystack 支付网关
	PaystackSecretKey string
	PaystackBaseURL   string
	AppBaseURL        string

	// 邮件服务（HTTP API）
	EmailAPIURL string
	EmailAPIKey string
	EmailFrom   string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// 行为日志保留天数
	ActivityRetentionDays int
}

// Load 加载配置
// 优先级：环境变量 > config.yaml > 默认值
func Load() *Config {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	// 配置文件可选，不存在直接用环境变量
	_ = v.ReadInConfig()

	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("DATABASE_DSN", "host=localhost user=tradefair password=tradefair dbname=tradefair port=5432 sslmode=disable")
	v.SetDefault("JWT_SECRET", "tradefair-secret-key-change-in-production")
	v.SetDefault("PAYSTACK_BASE_URL", "https://api.paystack.co")
	v.SetDefault("APP_BASE_URL", "http://localhost:3000")
	v.SetDefault("EMAIL_API_URL", "https://api.resend.com/emails")
	v.SetDefault("EMAIL_FROM", "TradeFair <noreply@tradefair.shop>")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("ACTIVITY_RETENTION_DAYS", 180)

	return &Config{
		ServerPort: v.GetString("SERVER_PORT"),
		Mode:       v.GetString("GIN_MODE"),

		DatabaseDSN: v.GetString("DATABASE_DSN"),
		JWTSecret:   v.GetString("JWT_SECRET"),

		PaystackSecretKey: v.GetString("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:   v.GetString("PAYSTACK_BASE_URL"),
		AppBaseURL:        v.GetString("APP_BASE_URL"),

		EmailAPIURL: v.GetString("EMAIL_API_URL"),
		EmailAPIKey: v.GetString("EMAIL_API_KEY"),
		EmailFrom:   v.GetString("EMAIL_FROM"),

		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
		GeminiModel:  v.GetString("GEMINI_MODEL"),

		ActivityRetentionDays: v.GetInt("ACTIVITY_RETENTION_DAYS"),
	}
}
