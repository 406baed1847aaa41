package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config lending engine config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	Risk        RiskConfig  `json:"risk"`
	Tokens      []Token     `json:"tokens"`
	PriceOracle PriceOracle `json:"price_oracle"`
	Worker      Worker      `json:"worker"`
}

// App app config
type App struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	// Memory keep loans and quotes in process memory instead of the db
	Memory bool `json:"memory"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
	// MaxQuoteAge seconds, quotes older than this are rejected; 0 disables the check
	MaxQuoteAge int64 `json:"max_quote_age"`
	// CacheSize lru size of the latest quote cache
	CacheSize int `json:"cache_size"`
}

// Worker worker schedules
type Worker struct {
	PriceSpec   string `json:"price_spec"`
	OverdueSpec string `json:"overdue_spec"`
	// Concurrency max parallel ticker pulls
	Concurrency int64 `json:"concurrency"`
}
