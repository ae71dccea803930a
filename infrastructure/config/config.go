package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported CRM login flows
const (
	AuthFlowPassword = "password"
	AuthFlowJWT      = "jwt"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string
	BasePath      string

	// CRM connection
	CRM CRMConfig

	// Knowledge base
	Knowledge KnowledgeConfig

	// Cases
	Cases CasesConfig

	// Language model
	GeminiAPIKey string
	GeminiModel  string

	// CORS
	AllowedOrigins       []string
	PreviewOriginPattern string

	// Logging
	LogLevel string

	// Feature flags
	EnableMetrics bool
	EnableTracing bool
}

// CRMConfig holds the Salesforce connected-app and service-account settings
type CRMConfig struct {
	LoginURL       string
	APIVersion     string
	AuthFlow       string
	ClientID       string
	ClientSecret   string
	Username       string
	Password       string
	SecurityToken  string
	PrivateKeyPath string
	LoginTimeout   time.Duration
}

// KnowledgeConfig describes the knowledge article object of the target org
type KnowledgeConfig struct {
	ArticleObject string
	CategoryGroup string
	Locale        string
	CategoryDepth int
}

// CasesConfig holds the schema-specific parts of the open-cases query.
// Both differ between orgs and must be confirmed against the target schema.
type CasesConfig struct {
	EmailField     string
	ClosedStatuses []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		BasePath:      strings.TrimSuffix(getEnv("API_BASE_PATH", ""), "/"),

		CRM: CRMConfig{
			LoginURL:       strings.TrimSuffix(getEnv("SF_LOGIN_URL", "https://login.salesforce.com"), "/"),
			APIVersion:     strings.TrimPrefix(getEnv("SF_API_VERSION", "59.0"), "v"),
			AuthFlow:       getEnv("SF_AUTH_FLOW", AuthFlowPassword),
			ClientID:       getEnv("SF_CLIENT_ID", ""),
			ClientSecret:   getEnv("SF_CLIENT_SECRET", ""),
			Username:       getEnv("SF_USERNAME", ""),
			Password:       getEnv("SF_PASSWORD", ""),
			SecurityToken:  getEnv("SF_SECURITY_TOKEN", ""),
			PrivateKeyPath: getEnv("SF_PRIVATE_KEY_PATH", ""),
			LoginTimeout:   time.Duration(getEnvInt("SF_TIMEOUT_SECONDS", 30)) * time.Second,
		},

		Knowledge: KnowledgeConfig{
			ArticleObject: getEnv("KB_ARTICLE_OBJECT", "Knowledge__kav"),
			CategoryGroup: getEnv("KB_CATEGORY_GROUP", "Topics"),
			Locale:        getEnv("KB_LOCALE", "en_US"),
			CategoryDepth: getEnvInt("KB_CATEGORY_DEPTH", 4),
		},

		Cases: CasesConfig{
			EmailField:     getEnv("CASE_EMAIL_FIELD", "ContactEmail"),
			ClosedStatuses: getEnvList("CASE_CLOSED_STATUSES", []string{"Closed"}),
		},

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		AllowedOrigins:       getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		PreviewOriginPattern: getEnv("CORS_PREVIEW_ORIGIN_PATTERN", ""),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present.
// Missing CRM credentials are not an error outside production: the service starts
// and reports itself as not connected.
func (c *Config) Validate() error {
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("API_BASE_PATH must start with '/'")
	}
	if _, err := url.ParseRequestURI(c.CRM.LoginURL); err != nil {
		return fmt.Errorf("SF_LOGIN_URL is invalid: %w", err)
	}

	switch c.CRM.AuthFlow {
	case AuthFlowPassword:
	case AuthFlowJWT:
		if c.CRM.PrivateKeyPath == "" {
			return fmt.Errorf("SF_PRIVATE_KEY_PATH is required for the jwt auth flow")
		}
	default:
		return fmt.Errorf("SF_AUTH_FLOW must be %q or %q, got %q", AuthFlowPassword, AuthFlowJWT, c.CRM.AuthFlow)
	}

	if c.Knowledge.CategoryDepth < 1 {
		return fmt.Errorf("KB_CATEGORY_DEPTH must be at least 1")
	}
	if c.Cases.EmailField == "" {
		return fmt.Errorf("CASE_EMAIL_FIELD is required")
	}

	if c.IsProduction() {
		if c.CRM.ClientID == "" {
			return fmt.Errorf("SF_CLIENT_ID is required in production")
		}
		if c.CRM.Username == "" {
			return fmt.Errorf("SF_USERNAME is required in production")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated environment variable, dropping blanks
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
