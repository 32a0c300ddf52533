package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Storage       StorageConfig
	STT           STTConfig
	LLM           LLMConfig
	Orchestration OrchestrationConfig
	JWT           JWTConfig
	Webhook       WebhookConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration. Persistence is optional:
// when Enabled is false meetings live only in process memory.
type DatabaseConfig struct {
	Enabled  bool   `envconfig:"DB_ENABLED" default:"false"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"meeting_analyzer"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns     int `envconfig:"DB_MAX_CONNS" default:"25"`
	MaxIdleConns int `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	// AutoMigrate applies pending sql-migrate migrations at startup.
	// Production deployments should run scripts/migrate.go instead.
	AutoMigrate bool `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StorageConfig holds object storage configuration for raw audio archival
type StorageConfig struct {
	Enabled         bool   `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-audio"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// STTConfig selects and configures the speech-to-text engine
type STTConfig struct {
	Engine        string        `envconfig:"STT_ENGINE" default:"stub"` // "assemblyai" or "stub"
	AssemblyAIKey string        `envconfig:"ASSEMBLYAI_API_KEY" default:""`
	PollInterval  time.Duration `envconfig:"STT_POLL_INTERVAL" default:"3s"`
	Timeout       time.Duration `envconfig:"STT_TIMEOUT" default:"120s"`
}

// LLMConfig holds the text-generation backend configuration
type LLMConfig struct {
	Provider    string        `envconfig:"LLM_PROVIDER" default:"ollama"` // "ollama" or "groq"
	APIKey      string        `envconfig:"LLM_API_KEY" default:""`
	BaseURL     string        `envconfig:"LLM_BASE_URL" default:"http://localhost:11434"`
	Model       string        `envconfig:"LLM_MODEL" default:"llama3.1"`
	Temperature float64       `envconfig:"LLM_TEMPERATURE" default:"0.2"`
	Timeout     time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
}

// OrchestrationConfig holds analysis pipeline tuning
type OrchestrationConfig struct {
	Workers        int           `envconfig:"ORCH_WORKERS" default:"4"`
	TaskTimeout    time.Duration `envconfig:"ORCH_TASK_TIMEOUT" default:"30s"`
	CacheTTL       time.Duration `envconfig:"ORCH_CACHE_TTL" default:"30m"`
	MinDuration    time.Duration `envconfig:"ORCH_MIN_DURATION" default:"10s"`
	MaxTopicChunks int           `envconfig:"ORCH_MAX_TOPIC_CHUNKS" default:"25"`
}

// JWTConfig holds JWT configuration. Auth is optional and off by default.
type JWTConfig struct {
	Enabled bool          `envconfig:"JWT_ENABLED" default:"false"`
	Secret  string        `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	Expiry  time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`
}

// WebhookConfig holds the analysis-completed webhook configuration.
// Secret, when set, adds an HMAC signature header to delivered events.
type WebhookConfig struct {
	URL     string        `envconfig:"WEBHOOK_URL" default:""`
	Secret  string        `envconfig:"WEBHOOK_SECRET" default:""`
	Timeout time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"2500ms"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.STT.Engine == "assemblyai" && c.STT.AssemblyAIKey == "" {
		return fmt.Errorf("ASSEMBLYAI_API_KEY is required when STT_ENGINE=assemblyai")
	}
	if c.LLM.Provider == "groq" && c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required when LLM_PROVIDER=groq")
	}
	if c.Orchestration.Workers < 1 {
		return fmt.Errorf("ORCH_WORKERS must be at least 1")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
