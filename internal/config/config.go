// Package config defines and loads the gatherer configuration.
package config

import "time"

// GathererConfig is the root configuration for a gatherer run.
type GathererConfig struct {
	Fetch     FetchConfig     `yaml:"fetch"`
	Sources   SourcesConfig   `yaml:"sources"`
	Storage   StorageConfig   `yaml:"storage"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// FetchConfig holds outbound HTTP settings.
type FetchConfig struct {
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	// MinBytes is the smallest response considered to contain data; the
	// publishers answer "no data" with a short stub page.
	MinBytes int `yaml:"min_bytes"`
	// Pace is the sleep between successive requests to the same publisher
	// within one day-task.
	Pace time.Duration `yaml:"pace"`
	// TLSVerify re-enables certificate verification; off by default
	// because the over-the-counter publisher serves an incomplete chain.
	TLSVerify bool `yaml:"tls_verify"`
}

// SourcesConfig holds the publisher endpoints.
type SourcesConfig struct {
	TWSE TWSEConfig `yaml:"twse"`
	TPEX TPEXConfig `yaml:"tpex"`
}

// TWSEConfig holds the three exchange-listed export endpoints.
type TWSEConfig struct {
	ForeignURL string `yaml:"foreign_url"`
	TrustURL   string `yaml:"trust_url"`
	DealerURL  string `yaml:"dealer_url"`
}

// TPEXConfig holds the over-the-counter export endpoint.
type TPEXConfig struct {
	URL string `yaml:"url"`
}

// StorageConfig holds filesystem locations.
type StorageConfig struct {
	ListedDir string `yaml:"listed_dir"`
	OTCDir    string `yaml:"otc_dir"`
	StockList string `yaml:"stock_list"`
}

// SchedulerConfig holds the date fan-out settings.
type SchedulerConfig struct {
	// Days is how many trailing calendar days, including today, a run
	// covers by default; the --days flag overrides it.
	Days        int `yaml:"days"`
	Concurrency int `yaml:"concurrency"`
}
