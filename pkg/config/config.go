package config

import (
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string `env:"SERVER_PORT" envDefault:"8080"`
	Environment    string `env:"ENVIRONMENT" envDefault:"development"`
	ServiceName    string `env:"SERVICE_NAME" envDefault:"truth-prevails-api"`
	ServiceVersion string `env:"SERVICE_VERSION" envDefault:"1.0.0"`

	FirebaseProject            string `env:"FIREBASE_PROJECT_ID"`
	FirebaseServiceAccountJSON string `env:"FIREBASE_SERVICE_ACCOUNT_JSON"`
	FirebaseServiceAccountPath string `env:"FIREBASE_SERVICE_ACCOUNT_PATH"`

	// Used by the local identity provider when Firebase is not configured.
	JWTSecret string `env:"JWT_SECRET" envDefault:"your-secret-key"`
	JWTExpiry int64  `env:"JWT_EXPIRY" envDefault:"86400"`

	StorageProvider string `env:"STORAGE_PROVIDER" envDefault:"gcs"`
	StorageBucket   string `env:"STORAGE_BUCKET"`
	S3Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint      string `env:"S3_ENDPOINT"`
	S3AccessKey     string `env:"S3_ACCESS_KEY"`
	S3SecretKey     string `env:"S3_SECRET_KEY"`

	BlockchainRPCURL string `env:"BLOCKCHAIN_RPC_URL"`
	ContractAddress  string `env:"CONTRACT_ADDRESS"`
	BlockExplorerURL string `env:"BLOCK_EXPLORER_URL" envDefault:"https://sepolia.etherscan.io"`
	RegistryMode     string `env:"REGISTRY_MODE"`

	WalletEncryptionSecret string `env:"WALLET_ENCRYPTION_SECRET"`

	RedisURL string `env:"REDIS_URL"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"120s"`
	BlockchainTimeout time.Duration `env:"BLOCKCHAIN_TIMEOUT" envDefault:"90s"`
	StorageTimeout    time.Duration `env:"STORAGE_TIMEOUT" envDefault:"30s"`

	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// ResolveRegistryMode picks contract, memory or disabled when REGISTRY_MODE is unset.
func (c *Config) ResolveRegistryMode() string {
	switch c.RegistryMode {
	case "contract", "memory", "disabled":
		return c.RegistryMode
	}

	if c.BlockchainRPCURL != "" && c.ContractAddress != "" {
		return "contract"
	}
	if c.IsDevelopment() {
		return "memory"
	}
	return "disabled"
}
