package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	NLU      NLUConfig      `mapstructure:"nlu"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port int    `mapstructure:"port"`
}

// GatewayConfig configures the messaging gateway (Twilio-compatible) API
type GatewayConfig struct {
	BaseURL string `mapstructure:"base_url"`

	// AccountSID identifies the gateway account; part of the API path
	AccountSID string `mapstructure:"account_sid"`

	// AuthToken is used for basic auth and webhook signature checks
	AuthToken string `mapstructure:"auth_token"`

	// FromNumber is the bound business WhatsApp number (whatsapp:+55...)
	FromNumber string `mapstructure:"from_number"`

	// ValidateSignature enables the X-Twilio-Signature check on the
	// inbound message webhook
	ValidateSignature bool `mapstructure:"validate_signature"`
}

// NLUConfig configures the detect-intent endpoint
type NLUConfig struct {
	BaseURL string `mapstructure:"base_url"`

	// ProjectID is the NLU agent project; part of the session path
	ProjectID string `mapstructure:"project_id"`

	// AccessToken is sent as a bearer token on detect-intent calls
	AccessToken string `mapstructure:"access_token"`

	// LanguageCode is fixed per agent (pt-BR for this deployment)
	LanguageCode string `mapstructure:"language_code"`
}

// PaymentConfig configures the checkout, Pix and boleto integrations
type PaymentConfig struct {
	// CheckoutBaseURL hosts the card checkout page ({base}/cart?hash=...)
	CheckoutBaseURL string `mapstructure:"checkout_base_url"`
	PixURL          string `mapstructure:"pix_url"`
	BoletoURL       string `mapstructure:"boleto_url"`

	// Single-product catalog. The storefront sells exactly one product
	// with a fixed price; there is no catalog lookup.
	ProductID    string `mapstructure:"product_id"`
	ProductTitle string `mapstructure:"product_title"`

	// CheckoutUnitPriceCents is the per-unit price embedded in the card
	// checkout cart. PaymentUnitPrice is the per-unit price used for
	// Pix/boleto amounts, in whole reais. They deliberately do NOT share
	// a key: the upstream system used 100000 for the cart and 1000 for
	// Pix and boleto, and unifying them silently would change charged
	// amounts. Pending product-owner clarification.
	CheckoutUnitPriceCents int `mapstructure:"checkout_unit_price_cents"`
	PaymentUnitPrice       int `mapstructure:"payment_unit_price"`

	// Merchant identity sent to the Pix generator
	PixKeyType      string `mapstructure:"pix_key_type"`
	PixKey          string `mapstructure:"pix_key"`
	PixMerchantName string `mapstructure:"pix_merchant_name"`
	PixMerchantCity string `mapstructure:"pix_merchant_city"`

	// Issuer identity sent to the boleto generator
	BoletoBank          string `mapstructure:"boleto_bank"`
	BoletoAgencia       string `mapstructure:"boleto_agencia"`
	BoletoContaCorrente string `mapstructure:"boleto_conta_corrente"`
	BoletoConvenio      string `mapstructure:"boleto_convenio"`
	BoletoCedente       string `mapstructure:"boleto_cedente"`
	BoletoDocCedente    string `mapstructure:"boleto_doc_cedente"`
	BoletoLocalPgto     string `mapstructure:"boleto_local_pagamento"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=America/Sao_Paulo",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Enabled reports whether the audit-log database is configured.
// The bridge runs fully stateless without it.
func (c *DatabaseConfig) Enabled() bool {
	return c.Host != "" && c.Name != ""
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IsProduction checks if app is in production mode
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// IsDevelopment checks if app is in development mode
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Bind environment variables - this allows ENV vars to override config
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Name: getEnvOrDefault("APP_NAME", v.GetString("app.name")),
			Env:  getEnvOrDefault("APP_ENV", v.GetString("app.env")),
			Port: getEnvOrDefaultInt("PORT", v.GetInt("app.port")),
		},
		Gateway: GatewayConfig{
			BaseURL:           getEnvOrDefault("GATEWAY_BASE_URL", v.GetString("gateway.base_url")),
			AccountSID:        getEnvOrDefault("GATEWAY_ACCOUNT_SID", v.GetString("gateway.account_sid")),
			AuthToken:         getEnvOrDefault("GATEWAY_AUTH_TOKEN", v.GetString("gateway.auth_token")),
			FromNumber:        getEnvOrDefault("GATEWAY_FROM_NUMBER", v.GetString("gateway.from_number")),
			ValidateSignature: v.GetBool("gateway.validate_signature"),
		},
		NLU: NLUConfig{
			BaseURL:      getEnvOrDefault("NLU_BASE_URL", v.GetString("nlu.base_url")),
			ProjectID:    getEnvOrDefault("NLU_PROJECT_ID", v.GetString("nlu.project_id")),
			AccessToken:  getEnvOrDefault("NLU_ACCESS_TOKEN", v.GetString("nlu.access_token")),
			LanguageCode: getEnvOrDefault("NLU_LANGUAGE_CODE", v.GetString("nlu.language_code")),
		},
		Payment: PaymentConfig{
			CheckoutBaseURL:        getEnvOrDefault("PAYMENT_CHECKOUT_BASE_URL", v.GetString("payment.checkout_base_url")),
			PixURL:                 getEnvOrDefault("PAYMENT_PIX_URL", v.GetString("payment.pix_url")),
			BoletoURL:              getEnvOrDefault("PAYMENT_BOLETO_URL", v.GetString("payment.boleto_url")),
			ProductID:              getEnvOrDefault("PAYMENT_PRODUCT_ID", v.GetString("payment.product_id")),
			ProductTitle:           getEnvOrDefault("PAYMENT_PRODUCT_TITLE", v.GetString("payment.product_title")),
			CheckoutUnitPriceCents: getEnvOrDefaultInt("PAYMENT_CHECKOUT_UNIT_PRICE_CENTS", v.GetInt("payment.checkout_unit_price_cents")),
			PaymentUnitPrice:       getEnvOrDefaultInt("PAYMENT_UNIT_PRICE", v.GetInt("payment.payment_unit_price")),
			PixKeyType:             v.GetString("payment.pix_key_type"),
			PixKey:                 getEnvOrDefault("PAYMENT_PIX_KEY", v.GetString("payment.pix_key")),
			PixMerchantName:        v.GetString("payment.pix_merchant_name"),
			PixMerchantCity:        v.GetString("payment.pix_merchant_city"),
			BoletoBank:             v.GetString("payment.boleto_bank"),
			BoletoAgencia:          v.GetString("payment.boleto_agencia"),
			BoletoContaCorrente:    v.GetString("payment.boleto_conta_corrente"),
			BoletoConvenio:         v.GetString("payment.boleto_convenio"),
			BoletoCedente:          v.GetString("payment.boleto_cedente"),
			BoletoDocCedente:       v.GetString("payment.boleto_doc_cedente"),
			BoletoLocalPgto:        v.GetString("payment.boleto_local_pagamento"),
		},
		Database: DatabaseConfig{
			Host:            getEnvOrDefault("DB_HOST", v.GetString("database.host")),
			Port:            getEnvOrDefaultInt("DB_PORT", v.GetInt("database.port")),
			User:            getEnvOrDefault("DB_USER", v.GetString("database.user")),
			Password:        getEnvOrDefault("DB_PASSWORD", v.GetString("database.password")),
			Name:            getEnvOrDefault("DB_NAME", v.GetString("database.name")),
			SSLMode:         getEnvOrDefault("DB_SSL_MODE", v.GetString("database.ssl_mode")),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", v.GetString("logging.level")),
			Format: getEnvOrDefault("LOG_FORMAT", v.GetString("logging.format")),
		},
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills in values the config file may omit
func applyDefaults(cfg *Config) {
	if cfg.App.Port == 0 {
		cfg.App.Port = 4000
	}
	if cfg.Gateway.BaseURL == "" {
		cfg.Gateway.BaseURL = "https://api.twilio.com"
	}
	if cfg.NLU.BaseURL == "" {
		cfg.NLU.BaseURL = "https://dialogflow.googleapis.com"
	}
	if cfg.NLU.LanguageCode == "" {
		cfg.NLU.LanguageCode = "pt-BR"
	}
	if cfg.Payment.CheckoutUnitPriceCents == 0 {
		cfg.Payment.CheckoutUnitPriceCents = 100000
	}
	if cfg.Payment.PaymentUnitPrice == 0 {
		cfg.Payment.PaymentUnitPrice = 1000
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 5 * time.Minute
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// getEnvOrDefault returns env value or default
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvOrDefaultInt returns env value as int or default
func getEnvOrDefaultInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		var intVal int
		fmt.Sscanf(val, "%d", &intVal)
		if intVal > 0 {
			return intVal
		}
	}
	return defaultVal
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.App.Port)
	}

	if c.Gateway.AccountSID == "" || c.Gateway.AuthToken == "" {
		return fmt.Errorf("gateway account_sid and auth_token are required")
	}

	if c.NLU.ProjectID == "" {
		return fmt.Errorf("nlu project_id is required")
	}

	return nil
}
