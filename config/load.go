package config

import (
	"fmt"

	"lending/core"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/config"
	"github.com/robfig/cron/v3"
)

// Load load config file
func Load(cfgFile string, cfg *core.Config) error {
	config.AutomaticLoadEnv("LENDING")
	if cfgFile != "" {
		if err := config.LoadYaml(cfgFile, cfg); err != nil {
			return err
		}
	}

	defaultConfig(cfg)
	return nil
}

// DefaultTokens ETH and BTC as collateral, dollar and euro stable coins as loan tokens
func DefaultTokens() []core.Token {
	return []core.Token{
		{Symbol: "ETH", Decimals: 18, Kind: core.TokenKindCollateral},
		{Symbol: "BTC", Decimals: 8, Kind: core.TokenKindCollateral},
		{Symbol: "USDC", Decimals: 6, Kind: core.TokenKindLoan},
		{Symbol: "USDT", Decimals: 6, Kind: core.TokenKindLoan},
		{Symbol: "EURT", Decimals: 6, Kind: core.TokenKindLoan},
	}
}

func defaultConfig(cfg *core.Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "lending"
	}

	if cfg.Risk == (core.RiskConfig{}) {
		cfg.Risk = core.DefaultRiskConfig()
	}

	if cfg.Risk.CommonPrecision == 0 {
		cfg.Risk.CommonPrecision = core.DefaultRiskConfig().CommonPrecision
	}

	if len(cfg.Tokens) == 0 {
		cfg.Tokens = DefaultTokens()
	}

	if cfg.PriceOracle.CacheSize == 0 {
		cfg.PriceOracle.CacheSize = 64
	}

	if cfg.Worker.PriceSpec == "" {
		cfg.Worker.PriceSpec = "@every 1m"
	}

	if cfg.Worker.OverdueSpec == "" {
		cfg.Worker.OverdueSpec = "@every 10m"
	}

	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = 4
	}
}

// Validate check the loaded config before anything is built from it
func Validate(cfg *core.Config) error {
	if err := cfg.Risk.Validate(); err != nil {
		return err
	}

	seen := map[core.TokenKind]map[string]bool{
		core.TokenKindCollateral: {},
		core.TokenKindLoan:       {},
	}

	for idx, token := range cfg.Tokens {
		if !govalidator.IsAlphanumeric(token.Symbol) {
			return fmt.Errorf("tokens[%d]: invalid symbol %q", idx, token.Symbol)
		}

		if !govalidator.IsIn(string(token.Kind), string(core.TokenKindCollateral), string(core.TokenKindLoan)) {
			return fmt.Errorf("tokens[%d]: invalid kind %q", idx, token.Kind)
		}

		if token.Decimals < 0 || token.Decimals > 36 {
			return fmt.Errorf("tokens[%d]: invalid decimals %d", idx, token.Decimals)
		}

		symbol := core.NormalizeSymbol(token.Symbol)
		if seen[token.Kind][symbol] {
			return fmt.Errorf("tokens[%d]: duplicated %s token %s", idx, token.Kind, symbol)
		}
		seen[token.Kind][symbol] = true
	}

	if currency := core.NormalizeSymbol(cfg.Risk.MinimumLoanAmount.Currency); !seen[core.TokenKindLoan][currency] {
		return fmt.Errorf("minimum loan currency %s is not a loan token: %w", currency, core.ErrInvalidConfig)
	}

	if endpoint := cfg.PriceOracle.EndPoint; endpoint != "" && !govalidator.IsURL(endpoint) {
		return fmt.Errorf("price_oracle: invalid end_point %q", endpoint)
	}

	if cfg.PriceOracle.MaxQuoteAge < 0 {
		return fmt.Errorf("price_oracle: negative max_quote_age %d", cfg.PriceOracle.MaxQuoteAge)
	}

	for name, spec := range map[string]string{
		"price_spec":   cfg.Worker.PriceSpec,
		"overdue_spec": cfg.Worker.OverdueSpec,
	} {
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("worker: invalid %s %q: %w", name, spec, err)
		}
	}

	return nil
}
