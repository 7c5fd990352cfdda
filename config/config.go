package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Tracing     TracingConfig
	LLM         LLMConfig
	Email       EmailConfig
	Limits      LimitsConfig
	Environment string
	APIEndpoint string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
	SSL  SSLConfig
}

type SSLConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

// DatabaseConfig points at the Supabase Postgres instance
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// "jaeger", "zipkin", "stackdriver", "datadog", "xray", "none"
	TraceExporter string

	JaegerEndpoint       string
	ZipkinEndpoint       string
	StackdriverProjectID string
	DatadogAgentAddress  string
	DatadogAPIKey        string
	XRayRegion           string

	// comma-separated list of "prometheus", "stackdriver", "datadog"
	MetricsExporter string
	PrometheusPort  int
}

type LLMConfig struct {
	// Provider used for newsletter copy: "openai" or "anthropic".
	// Images always go through OpenAI.
	Provider string

	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIChatModel  string
	OpenAIImageModel string
	Temperature      float64
	MaxTokens        int

	AnthropicAPIKey string
	AnthropicModel  string
}

type EmailConfig struct {
	// "brevo", "ses", "smtp" or "console"
	Provider    string
	SenderEmail string
	SenderName  string

	BrevoAPIKey  string
	BrevoBaseURL string

	SESRegion    string
	SESAccessKey string
	SESSecretKey string

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
}

type LimitsConfig struct {
	// contacts per insert batch
	ImportBatchSize int
	MaxCSVBytes     int64
	// onboarding submissions allowed per client IP per minute
	OnboardingPerMinute int
	SendConcurrency     int
	SendRatePerSecond   float64
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	v.SetDefault("LLM_PROVIDER", "openai")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_CHAT_MODEL", "gpt-4")
	v.SetDefault("OPENAI_IMAGE_MODEL", "dall-e-3")
	v.SetDefault("LLM_TEMPERATURE", 0.7)
	v.SetDefault("LLM_MAX_TOKENS", 1000)
	v.SetDefault("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929")

	v.SetDefault("EMAIL_PROVIDER", "brevo")
	v.SetDefault("BREVO_BASE_URL", "https://api.brevo.com/v3")
	v.SetDefault("BREVO_SENDER_NAME", "Newsletter Generator")
	v.SetDefault("SES_REGION", "us-east-1")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USE_TLS", true)

	v.SetDefault("IMPORT_BATCH_SIZE", 100)
	v.SetDefault("MAX_CSV_BYTES", 5*1024*1024)
	v.SetDefault("ONBOARDING_RATE_LIMIT", 10)
	v.SetDefault("SEND_CONCURRENCY", 10)
	v.SetDefault("SEND_RATE_PER_SECOND", 10.0)

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "newsletter-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_DATADOG_AGENT_ADDRESS", "localhost:8126")
	v.SetDefault("TRACING_XRAY_REGION", "us-west-2")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
			SSL: SSLConfig{
				Enabled:  v.GetBool("SSL_ENABLED"),
				CertFile: v.GetString("SSL_CERT_FILE"),
				KeyFile:  v.GetString("SSL_KEY_FILE"),
			},
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		LLM: LLMConfig{
			Provider:         strings.ToLower(v.GetString("LLM_PROVIDER")),
			OpenAIAPIKey:     v.GetString("OPENAI_API_KEY"),
			OpenAIBaseURL:    strings.TrimRight(v.GetString("OPENAI_BASE_URL"), "/"),
			OpenAIChatModel:  v.GetString("OPENAI_CHAT_MODEL"),
			OpenAIImageModel: v.GetString("OPENAI_IMAGE_MODEL"),
			Temperature:      v.GetFloat64("LLM_TEMPERATURE"),
			MaxTokens:        v.GetInt("LLM_MAX_TOKENS"),
			AnthropicAPIKey:  v.GetString("ANTHROPIC_API_KEY"),
			AnthropicModel:   v.GetString("ANTHROPIC_MODEL"),
		},
		Email: EmailConfig{
			Provider:     strings.ToLower(v.GetString("EMAIL_PROVIDER")),
			SenderEmail:  v.GetString("BREVO_SENDER_EMAIL"),
			SenderName:   v.GetString("BREVO_SENDER_NAME"),
			BrevoAPIKey:  v.GetString("BREVO_API_KEY"),
			BrevoBaseURL: strings.TrimRight(v.GetString("BREVO_BASE_URL"), "/"),
			SESRegion:    v.GetString("SES_REGION"),
			SESAccessKey: v.GetString("SES_ACCESS_KEY"),
			SESSecretKey: v.GetString("SES_SECRET_KEY"),
			SMTP: SMTPConfig{
				Host:     v.GetString("SMTP_HOST"),
				Port:     v.GetInt("SMTP_PORT"),
				Username: v.GetString("SMTP_USERNAME"),
				Password: v.GetString("SMTP_PASSWORD"),
				UseTLS:   v.GetBool("SMTP_USE_TLS"),
			},
		},
		Limits: LimitsConfig{
			ImportBatchSize:     v.GetInt("IMPORT_BATCH_SIZE"),
			MaxCSVBytes:         v.GetInt64("MAX_CSV_BYTES"),
			OnboardingPerMinute: v.GetInt("ONBOARDING_RATE_LIMIT"),
			SendConcurrency:     v.GetInt("SEND_CONCURRENCY"),
			SendRatePerSecond:   v.GetFloat64("SEND_RATE_PER_SECOND"),
		},
		Tracing: TracingConfig{
			Enabled:              v.GetBool("TRACING_ENABLED"),
			ServiceName:          v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability:  v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:        v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:       v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:       v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			StackdriverProjectID: v.GetString("TRACING_STACKDRIVER_PROJECT_ID"),
			DatadogAgentAddress:  v.GetString("TRACING_DATADOG_AGENT_ADDRESS"),
			DatadogAPIKey:        v.GetString("TRACING_DATADOG_API_KEY"),
			XRayRegion:           v.GetString("TRACING_XRAY_REGION"),
			MetricsExporter:      v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:       v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		Environment: v.GetString("ENVIRONMENT"),
		APIEndpoint: v.GetString("API_ENDPOINT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	// SMTP and SES fall back to the same sender settings as Brevo
	if config.Email.SenderEmail == "" {
		config.Email.SenderEmail = v.GetString("SENDER_EMAIL")
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.LLM.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER: %s", c.LLM.Provider)
	}

	switch c.Email.Provider {
	case "brevo", "ses", "smtp", "console":
	default:
		return fmt.Errorf("unsupported EMAIL_PROVIDER: %s", c.Email.Provider)
	}

	if c.Limits.ImportBatchSize <= 0 {
		return fmt.Errorf("IMPORT_BATCH_SIZE must be positive")
	}
	if c.Limits.SendConcurrency <= 0 {
		return fmt.Errorf("SEND_CONCURRENCY must be positive")
	}

	return nil
}

// MissingIntegrations lists the credentials that are not set for the
// configured providers. The server still starts; the affected endpoints
// fail when called.
func (c *Config) MissingIntegrations() []string {
	var missing []string

	if c.Database.Password == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if c.LLM.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.LLM.Provider == "anthropic" && c.LLM.AnthropicAPIKey == "" {
		missing = append(missing, "ANTHROPIC_API_KEY")
	}

	switch c.Email.Provider {
	case "brevo":
		if c.Email.BrevoAPIKey == "" {
			missing = append(missing, "BREVO_API_KEY")
		}
	case "ses":
		if c.Email.SESAccessKey == "" || c.Email.SESSecretKey == "" {
			missing = append(missing, "SES_ACCESS_KEY/SES_SECRET_KEY")
		}
	case "smtp":
		if c.Email.SMTP.Host == "" {
			missing = append(missing, "SMTP_HOST")
		}
	}

	if c.Email.Provider != "console" && c.Email.SenderEmail == "" {
		missing = append(missing, "BREVO_SENDER_EMAIL")
	}
	if c.APIEndpoint == "" {
		missing = append(missing, "API_ENDPOINT")
	}

	return missing
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
