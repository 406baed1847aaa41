package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lending/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg core.Config
	require.Nil(t, Load("", &cfg))

	assert.Equal(t, core.DefaultRiskConfig(), cfg.Risk)
	assert.Len(t, cfg.Tokens, 5)
	assert.Equal(t, "@every 1m", cfg.Worker.PriceSpec)
	assert.Nil(t, Validate(&cfg))
}

func TestLoadYaml(t *testing.T) {
	file := filepath.Join(t.TempDir(), "lending.yaml")
	require.Nil(t, os.WriteFile(file, []byte(`
app:
  name: test
  memory: true
risk:
  max_ltv: 70
  liquidation_threshold: 80
  min_interest_rate: 35
  max_loan_duration_in_days: 90
  minimum_loan_amount:
    amount: "100"
    currency: USDC
  loan_request_fee_percentage: 1
  settlement_fee_percentage: 2
tokens:
  - symbol: ETH
    decimals: 18
    kind: collateral
  - symbol: USDC
    decimals: 6
    kind: loan
price_oracle:
  end_point: https://prices.example.com
  max_quote_age: 300
`), 0o600))

	var cfg core.Config
	require.Nil(t, Load(file, &cfg))

	assert.Equal(t, "test", cfg.App.Name)
	assert.True(t, cfg.App.Memory)
	assert.Equal(t, int64(70), cfg.Risk.MaxLTV)
	assert.Equal(t, "USDC", cfg.Risk.MinimumLoanAmount.Currency)
	assert.Equal(t, int32(18), cfg.Risk.CommonPrecision)
	assert.Len(t, cfg.Tokens, 2)
	assert.Equal(t, int64(300), cfg.PriceOracle.MaxQuoteAge)
	assert.Nil(t, Validate(&cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *core.Config)
		code   error
	}{
		{"threshold below max ltv", func(cfg *core.Config) { cfg.Risk.LiquidationThreshold = 70 }, core.ErrInvalidConfig},
		{"minimum currency not a loan token", func(cfg *core.Config) { cfg.Risk.MinimumLoanAmount.Currency = "ETH" }, core.ErrInvalidConfig},
		{"bad symbol", func(cfg *core.Config) { cfg.Tokens[0].Symbol = "E-TH" }, nil},
		{"bad kind", func(cfg *core.Config) { cfg.Tokens[0].Kind = "stake" }, nil},
		{"duplicated token", func(cfg *core.Config) { cfg.Tokens[1] = cfg.Tokens[0] }, nil},
		{"bad endpoint", func(cfg *core.Config) { cfg.PriceOracle.EndPoint = "not a url" }, nil},
		{"bad spec", func(cfg *core.Config) { cfg.Worker.OverdueSpec = "every minute" }, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var cfg core.Config
			require.Nil(t, Load("", &cfg))
			test.mutate(&cfg)

			err := Validate(&cfg)
			require.NotNil(t, err)
			if test.code != nil {
				assert.True(t, errors.Is(err, test.code))
			}
		})
	}
}
