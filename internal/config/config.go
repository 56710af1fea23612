package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"fynix/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Storage StorageConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Email   EmailConfig
	Billing BillingConfig
}

// EmailConfig holds invoice email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StorageConfig selects the repository backend: "postgres" or "memory".
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// JWTConfig holds bearer token verification settings. Tokens are issued by
// the external identity service and only verified here.
type JWTConfig struct {
	Secret   string        `mapstructure:"secret"`
	Issuer   string        `mapstructure:"issuer"`
	Audience string        `mapstructure:"audience"`
	Leeway   time.Duration `mapstructure:"leeway"`
}

// S3Config holds AWS S3 settings for exported invoice documents.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BillingConfig holds the defaults applied to new invoices and KPI estimates.
type BillingConfig struct {
	DefaultTaxMode  domain.TaxMode
	DefaultTaxName  string
	DefaultTaxRate  decimal.Decimal
	CurrencyCode    string
	DueDays         int
	ManualDueDays   int
	ExpenseRatio    decimal.Decimal
	DefaultMemo     string
	DefaultFooter   string
	BrandName       string
	ExportKeyPrefix string
}

// TaxConfig returns the default tax configuration.
func (b *BillingConfig) TaxConfig() domain.TaxConfiguration {
	return domain.TaxConfiguration{Mode: b.DefaultTaxMode, Name: b.DefaultTaxName, Rate: b.DefaultTaxRate}
}

// defaults lists every recognised key with its default. Each key is also
// bound to FYNIX_<KEY> with dots replaced by underscores.
var defaults = []struct {
	key   string
	value interface{}
}{
	{"server.port", ":8080"},
	{"server.read_timeout", "15s"},
	{"server.write_timeout", "30s"},
	{"server.shutdown_timeout", "15s"},
	{"server.environment", "development"},

	{"db.host", "localhost"},
	{"db.port", 5432},
	{"db.user", "fynix"},
	{"db.password", "fynix_secret"},
	{"db.name", "fynix_db"},
	{"db.sslmode", "disable"},
	{"db.max_open", 25},
	{"db.max_idle", 10},

	{"storage.driver", "postgres"},

	{"jwt.secret", "change-me-in-production"},
	{"jwt.issuer", "fynix"},
	{"jwt.audience", "access"},
	{"jwt.leeway", "30s"},

	{"s3.region", "ap-south-1"},
	{"s3.bucket", "fynix-invoices"},
	{"s3.endpoint", ""},
	{"s3.access_key", ""},
	{"s3.secret_key", ""},
	{"s3.presign_expiry", 3600},

	{"log.level", "debug"},
	{"log.format", "console"},

	{"cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173"},

	{"email.provider", "noop"},
	{"email.region", "ap-south-1"},
	{"email.from_address", "billing@fynix.digital"},
	{"email.from_name", "Fynix Billing"},
	{"email.frontend_url", "http://localhost:3000"},

	{"billing.default_tax_mode", string(domain.TaxModeSingle)},
	{"billing.default_tax_name", "IGST"},
	{"billing.default_tax_rate", "18"},
	{"billing.currency_code", "INR"},
	{"billing.due_days", 30},
	{"billing.manual_due_days", 7},
	{"billing.expense_ratio", "0.65"},
	{"billing.default_memo", "Thanks for your business!"},
	{"billing.default_footer", ""},
	{"billing.brand_name", "Fynix Digital"},
	{"billing.export_key_prefix", "invoices"},
}

// Load reads configuration from environment variables with the FYNIX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FYNIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, d := range defaults {
		v.SetDefault(d.key, d.value)
		_ = v.BindEnv(d.key, "FYNIX_"+strings.ToUpper(strings.ReplaceAll(d.key, ".", "_")))
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if FYNIX_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FYNIX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Storage = StorageConfig{Driver: strings.ToLower(v.GetString("storage.driver"))}
	switch cfg.Storage.Driver {
	case "postgres", "memory":
	default:
		return nil, fmt.Errorf("config: unknown storage driver %q", cfg.Storage.Driver)
	}

	cfg.JWT = JWTConfig{
		Secret:   v.GetString("jwt.secret"),
		Issuer:   v.GetString("jwt.issuer"),
		Audience: v.GetString("jwt.audience"),
		Leeway:   v.GetDuration("jwt.leeway"),
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: jwt.secret must not be empty")
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{AllowedOrigins: splitList(v.GetString("cors.allowed_origins"))}

	cfg.Email = EmailConfig{
		Provider:    strings.ToLower(v.GetString("email.provider")),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	switch cfg.Email.Provider {
	case "ses", "noop":
	default:
		return nil, fmt.Errorf("config: unknown email provider %q", cfg.Email.Provider)
	}

	billing, err := loadBilling(v)
	if err != nil {
		return nil, err
	}
	cfg.Billing = billing

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func loadBilling(v *viper.Viper) (BillingConfig, error) {
	rate, err := decimal.NewFromString(v.GetString("billing.default_tax_rate"))
	if err != nil {
		return BillingConfig{}, fmt.Errorf("config: billing.default_tax_rate: %w", err)
	}
	ratio, err := decimal.NewFromString(v.GetString("billing.expense_ratio"))
	if err != nil {
		return BillingConfig{}, fmt.Errorf("config: billing.expense_ratio: %w", err)
	}
	if ratio.IsNegative() || ratio.GreaterThan(decimal.NewFromInt(1)) {
		return BillingConfig{}, fmt.Errorf("config: billing.expense_ratio must be between 0 and 1, got %s", ratio)
	}

	b := BillingConfig{
		DefaultTaxMode:  domain.TaxMode(strings.ToLower(v.GetString("billing.default_tax_mode"))),
		DefaultTaxName:  v.GetString("billing.default_tax_name"),
		DefaultTaxRate:  rate,
		CurrencyCode:    strings.ToUpper(v.GetString("billing.currency_code")),
		DueDays:         v.GetInt("billing.due_days"),
		ManualDueDays:   v.GetInt("billing.manual_due_days"),
		ExpenseRatio:    ratio,
		DefaultMemo:     v.GetString("billing.default_memo"),
		DefaultFooter:   v.GetString("billing.default_footer"),
		BrandName:       v.GetString("billing.brand_name"),
		ExportKeyPrefix: strings.Trim(v.GetString("billing.export_key_prefix"), "/"),
	}
	if err := b.TaxConfig().Validate(); err != nil {
		return BillingConfig{}, fmt.Errorf("config: billing default tax: %w", err)
	}
	return b, nil
}
