package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/minibank-dev/minibank/internal/ledger"
	"github.com/minibank-dev/minibank/internal/statement"
)

// Config represents the top-level minibank.yaml configuration.
type Config struct {
	Bank      BankConfig      `yaml:"bank"`
	Checking  CheckingConfig  `yaml:"checking"`
	Statement StatementConfig `yaml:"statement"`
	Log       LogConfig       `yaml:"log"`
}

// BankConfig identifies the branch accounts are opened under.
type BankConfig struct {
	Branch   string `yaml:"branch"`
	Currency string `yaml:"currency"` // symbol printed before amounts
}

// CheckingConfig sets the limits of new checking accounts.
type CheckingConfig struct {
	WithdrawalCeiling decimal.Decimal `yaml:"withdrawal_ceiling"`
	WithdrawalQuota   int             `yaml:"withdrawal_quota"`

	// QuotaWindow, when non-zero, only counts withdrawals made within the
	// trailing window (e.g. "24h"). Zero counts the account's whole history.
	QuotaWindow time.Duration `yaml:"quota_window"`
}

// StatementConfig controls statement output.
type StatementConfig struct {
	Format          string `yaml:"format"` // "text" or "csv"
	TimestampFormat string `yaml:"timestamp_format"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a minibank.yaml file from disk. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Write encodes cfg as YAML to w.
func Write(w io.Writer, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	limits := ledger.DefaultCheckingLimits()
	return &Config{
		Bank: BankConfig{
			Branch:   ledger.DefaultBranch,
			Currency: statement.DefaultCurrency,
		},
		Checking: CheckingConfig{
			WithdrawalCeiling: limits.Ceiling,
			WithdrawalQuota:   limits.Quota,
			QuotaWindow:       limits.Window,
		},
		Statement: StatementConfig{
			Format:          "text",
			TimestampFormat: statement.DefaultTimestampFormat,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Bank.Branch == "" {
		return fmt.Errorf("bank.branch must not be empty")
	}
	if strings.Contains(c.Bank.Branch, "-") {
		return fmt.Errorf("bank.branch %q must not contain '-'", c.Bank.Branch)
	}
	if !c.Checking.WithdrawalCeiling.IsPositive() {
		return fmt.Errorf("checking.withdrawal_ceiling must be positive, got %s", c.Checking.WithdrawalCeiling)
	}
	if c.Checking.WithdrawalQuota < 0 {
		return fmt.Errorf("checking.withdrawal_quota must not be negative, got %d", c.Checking.WithdrawalQuota)
	}
	if c.Checking.QuotaWindow < 0 {
		return fmt.Errorf("checking.quota_window must not be negative, got %s", c.Checking.QuotaWindow)
	}
	switch c.Statement.Format {
	case "text", "csv":
	default:
		return fmt.Errorf("statement.format must be text or csv, got %q", c.Statement.Format)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// CheckingLimits converts the checking section to ledger limits.
func (c *Config) CheckingLimits() ledger.CheckingLimits {
	return ledger.CheckingLimits{
		Ceiling: c.Checking.WithdrawalCeiling,
		Quota:   c.Checking.WithdrawalQuota,
		Window:  c.Checking.QuotaWindow,
	}
}

// StatementOptions converts the statement settings to render options.
func (c *Config) StatementOptions() statement.Options {
	return statement.Options{
		TimestampFormat: c.Statement.TimestampFormat,
		Currency:        c.Bank.Currency,
	}
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
